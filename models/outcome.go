package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OutcomeKind enumerates the results of a purchase attempt.
type OutcomeKind string

const (
	OutcomeBought       OutcomeKind = "bought"
	OutcomeCannotAfford OutcomeKind = "cannot_afford"
	OutcomeNotFound     OutcomeKind = "not_found"
)

// Outcome is the result of a single purchase attempt. None of the kinds is
// an error: cannot-afford and not-found are reportable, processing
// continues.
type Outcome struct {
	Kind    OutcomeKind
	Buyer   string
	Product string
	// Price is the resolved price the decision was made against. Zero for
	// not-found outcomes.
	Price decimal.Decimal
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeBought:
		return fmt.Sprintf("%s bought %s", o.Buyer, o.Product)
	case OutcomeCannotAfford:
		return fmt.Sprintf("%s cannot afford %s", o.Buyer, o.Product)
	default:
		return "Buyer or product not found"
	}
}
