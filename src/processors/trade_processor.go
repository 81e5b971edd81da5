package processors

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/utils"
)

// avgCostState is the running weighted-average inventory for one symbol.
// It is shared across the whole grouping pass, not reset per trade, so a
// trade reopened after closure still sells against the true average cost.
type avgCostState struct {
	quantity  decimal.Decimal
	costBasis decimal.Decimal
}

// openTrade accumulates a trade under construction in decimal form.
type openTrade struct {
	trade       *models.Trade
	netQuantity decimal.Decimal
	realized    decimal.Decimal
	commission  decimal.Decimal
}

// tradeProcessorImpl implements the TradeProcessor interface.
type tradeProcessorImpl struct{}

// NewTradeProcessor creates a new instance of TradeProcessor.
func NewTradeProcessor() TradeProcessor {
	return &tradeProcessorImpl{}
}

// Process walks the stream in ascending date order and segments it into
// trades: a trade opens on the first transaction for a symbol with no open
// trade and closes when its net quantity returns to zero (within tolerance).
// The next transaction for that symbol starts a fresh trade.
func (p *tradeProcessorImpl) Process(transactions []models.Transaction) ([]models.Trade, error) {
	sorted := sortTransactionsByDate(transactions)

	open := make(map[string]*openTrade)
	inventory := make(map[string]*avgCostState)
	var all []*openTrade

	for _, tx := range sorted {
		if tx.Type != models.TxBuy && tx.Type != models.TxSell {
			continue
		}

		ot, ok := open[tx.Symbol]
		if !ok {
			ot = &openTrade{
				trade: &models.Trade{
					Symbol:       tx.Symbol,
					Status:       models.TradeOpen,
					StartDate:    tx.Date,
					Transactions: []models.Transaction{},
				},
				netQuantity: decimal.Zero,
				realized:    decimal.Zero,
				commission:  decimal.Zero,
			}
			open[tx.Symbol] = ot
			all = append(all, ot)
		}

		inv, ok := inventory[tx.Symbol]
		if !ok {
			inv = &avgCostState{quantity: decimal.Zero, costBasis: decimal.Zero}
			inventory[tx.Symbol] = inv
		}

		ot.trade.Transactions = append(ot.trade.Transactions, tx)
		commission := decimal.NewFromFloat(tx.Commission)
		ot.commission = ot.commission.Add(commission)
		qty := decimal.NewFromFloat(tx.Quantity)
		price := decimal.NewFromFloat(tx.Price)

		switch tx.Type {
		case models.TxBuy:
			ot.netQuantity = ot.netQuantity.Add(qty)
			inv.quantity = inv.quantity.Add(qty)
			inv.costBasis = inv.costBasis.Add(qty.Mul(price)).Add(commission)

		case models.TxSell:
			if inv.quantity.IsZero() || qty.Sub(inv.quantity).GreaterThan(utils.EpsilonDec) {
				return nil, &models.InsufficientInventoryError{
					Symbol:    tx.Symbol,
					Requested: tx.Quantity,
					Available: inv.quantity.InexactFloat64(),
				}
			}
			ot.netQuantity = ot.netQuantity.Sub(qty)
			if qty.GreaterThan(inv.quantity) {
				qty = inv.quantity
			}
			avgCost := inv.costBasis.Div(inv.quantity)
			costOfSold := avgCost.Mul(qty)
			revenue := qty.Mul(price).Sub(commission)
			ot.realized = ot.realized.Add(revenue.Sub(costOfSold))
			inv.costBasis = inv.costBasis.Sub(costOfSold)
			inv.quantity = inv.quantity.Sub(qty)
			if utils.NearZeroDec(inv.quantity) {
				inv.quantity = decimal.Zero
				inv.costBasis = decimal.Zero
			}
		}

		if utils.NearZeroDec(ot.netQuantity) {
			ot.netQuantity = decimal.Zero
			ot.trade.Status = models.TradeClosed
			ot.trade.EndDate = tx.Date
			delete(open, tx.Symbol)
		}
	}

	trades := make([]models.Trade, 0, len(all))
	for _, ot := range all {
		ot.trade.NetQuantity = ot.netQuantity.InexactFloat64()
		ot.trade.TotalRealizedProfit = ot.realized.InexactFloat64()
		ot.trade.TotalCommission = ot.commission.InexactFloat64()
		trades = append(trades, *ot.trade)
	}

	// Display order: most recently closed or active first.
	sort.SliceStable(trades, func(i, j int) bool {
		return tradeSortDate(trades[i]).After(tradeSortDate(trades[j]))
	})

	return trades, nil
}

// tradeSortDate is the trade's end date, or its last transaction's date while
// it is still open.
func tradeSortDate(trade models.Trade) time.Time {
	dateStr := trade.EndDate
	if dateStr == "" && len(trade.Transactions) > 0 {
		dateStr = trade.Transactions[len(trade.Transactions)-1].Date
	}
	t, _ := utils.ParseDate(dateStr)
	return t
}
