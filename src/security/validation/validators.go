package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/utils"
)

// ErrInvalidInput marks a rejected batch. Invalid transactions are never
// silently skipped: a partial batch would corrupt downstream P&L without
// signal, so the whole request fails.
var ErrInvalidInput = errors.New("invalid input")

var validTransactionTypes = map[string]bool{
	models.TxBuy:      true,
	models.TxSell:     true,
	models.TxDeposit:  true,
	models.TxWithdraw: true,
}

// ValidateTransactions checks every transaction in the batch and reports all
// problems at once.
func ValidateTransactions(transactions []models.Transaction) error {
	var problems []string

	for i, tx := range transactions {
		if !validTransactionTypes[tx.Type] {
			problems = append(problems, fmt.Sprintf("transaction %d: unknown type %q", i, tx.Type))
			continue
		}
		if _, err := utils.ParseDate(tx.Date); err != nil {
			problems = append(problems, fmt.Sprintf("transaction %d: %v", i, err))
		}
		if tx.Commission < 0 {
			problems = append(problems, fmt.Sprintf("transaction %d: commission must not be negative", i))
		}

		switch tx.Type {
		case models.TxBuy, models.TxSell:
			if NormalizeSymbol(tx.Symbol) == "" {
				problems = append(problems, fmt.Sprintf("transaction %d: trade requires a symbol", i))
			}
			if tx.Quantity <= 0 {
				problems = append(problems, fmt.Sprintf("transaction %d: trade quantity must be positive", i))
			}
			if tx.Price <= 0 {
				problems = append(problems, fmt.Sprintf("transaction %d: trade price must be positive", i))
			}
		case models.TxDeposit, models.TxWithdraw:
			if tx.Amount <= 0 {
				problems = append(problems, fmt.Sprintf("transaction %d: cash movement amount must be positive", i))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateSnapshotSeries checks the portfolio value series fed to the TWR
// calculator.
func ValidateSnapshotSeries(series []models.SnapshotPoint) error {
	var problems []string
	for i, point := range series {
		if _, err := utils.ParseDate(point.Date); err != nil {
			problems = append(problems, fmt.Sprintf("point %d: %v", i, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateProjectionInput checks the goal-planning parameters.
func ValidateProjectionInput(input models.ProjectionInput) error {
	var problems []string
	if input.StartingAmount < 0 {
		problems = append(problems, "startingAmount must not be negative")
	}
	if input.MonthlyContribution < 0 {
		problems = append(problems, "monthlyContribution must not be negative")
	}
	if input.AnnualRatePercent <= -100 {
		problems = append(problems, "annualRatePercent must be greater than -100")
	}
	if input.Years < 1 || input.Years > 100 {
		problems = append(problems, "years must be between 1 and 100")
	}
	if _, err := utils.ParseDate(input.StartDate); err != nil {
		problems = append(problems, err.Error())
	}
	if err := ValidateSnapshotSeries(input.ActualSeries); err != nil {
		problems = append(problems, fmt.Sprintf("actualSeries: %v", err))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
