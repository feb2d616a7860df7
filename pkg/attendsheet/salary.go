package attendsheet

import "github.com/shopspring/decimal"

// Pay is the salary owed for a number of attendance days.
type Pay struct {
	Days   float64         `json:"days"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Salary multiplies days by the daily rate.
func Salary(days float64, rate decimal.Decimal) Pay {
	return Pay{
		Days:   days,
		Rate:   rate,
		Amount: decimal.NewFromFloat(days).Mul(rate),
	}
}
