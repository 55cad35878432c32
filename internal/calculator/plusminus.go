package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

// PlusMinus is points scored minus points scored against.
func PlusMinus(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, PlusMinusOf)
}

func PlusMinusOf(t *Totals) decimal.Decimal {
	return t.Points.Sub(t.OpponentPoints)
}
