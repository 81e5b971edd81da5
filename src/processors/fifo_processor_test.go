package processors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/acctfolio/src/models"
)

func TestFifoConsumesOldestLotFirst(t *testing.T) {
	p := NewFifoProcessor()

	transactions := []models.Transaction{
		{Symbol: "AAPL", Type: models.TxBuy, Quantity: 10, Price: 10, Date: "2023-01-01"},
		{Symbol: "AAPL", Type: models.TxBuy, Quantity: 10, Price: 20, Date: "2023-02-01"},
		{Symbol: "AAPL", Type: models.TxSell, Quantity: 10, Price: 15, Date: "2023-03-01"},
	}

	results, err := p.Process(transactions)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The whole sell matches the first lot at $10, not the $15 average:
	// profit = (15-10)*10 against a cost basis of 100.
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.InDelta(t, 50, results[0].ProfitPercent, 1e-5)
}

func TestFifoSellStraddlingLotsAggregatesToOneEntry(t *testing.T) {
	p := NewFifoProcessor()

	transactions := []models.Transaction{
		{Symbol: "VTI", Type: models.TxBuy, Quantity: 5, Price: 10, Date: "2023-01-01"},
		{Symbol: "VTI", Type: models.TxBuy, Quantity: 5, Price: 20, Date: "2023-02-01"},
		{Symbol: "VTI", Type: models.TxSell, Quantity: 8, Price: 20, Date: "2023-03-01"},
	}

	results, err := p.Process(transactions)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// costBasis = 5*10 + 3*20 = 110, revenue = 8*20 = 160.
	assert.InDelta(t, 50.0/110.0*100, results[0].ProfitPercent, 1e-5)
}

func TestFifoTracksSymbolsIndependently(t *testing.T) {
	p := NewFifoProcessor()

	transactions := []models.Transaction{
		{Symbol: "AAPL", Type: models.TxBuy, Quantity: 1, Price: 100, Date: "2023-01-01"},
		{Symbol: "MSFT", Type: models.TxBuy, Quantity: 1, Price: 200, Date: "2023-01-02"},
		{Symbol: "AAPL", Type: models.TxSell, Quantity: 1, Price: 110, Date: "2023-02-01"},
		{Symbol: "MSFT", Type: models.TxSell, Quantity: 1, Price: 180, Date: "2023-02-02"},
	}

	results, err := p.Process(transactions)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.InDelta(t, 10, results[0].ProfitPercent, 1e-5)
	assert.Equal(t, "MSFT", results[1].Symbol)
	assert.InDelta(t, -10, results[1].ProfitPercent, 1e-5)
}

func TestFifoOversellRejected(t *testing.T) {
	p := NewFifoProcessor()

	transactions := []models.Transaction{
		{Symbol: "TSLA", Type: models.TxBuy, Quantity: 3, Price: 100, Date: "2023-01-01"},
		{Symbol: "TSLA", Type: models.TxSell, Quantity: 4, Price: 120, Date: "2023-02-01"},
	}

	_, err := p.Process(transactions)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInsufficientInventory))
}

func TestFifoEmptyInput(t *testing.T) {
	p := NewFifoProcessor()

	results, err := p.Process(nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
