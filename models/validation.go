package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Profile selects the validation rules applied to catalog entries.
// The strict profile is the default; the lenient one matches the rules
// the earliest version of this system shipped with.
type Profile string

const (
	// ProfileLenient: product name non-empty after trim, price may be zero.
	ProfileLenient Profile = "lenient"
	// ProfileStrict: product name at least 3 chars after trim and not
	// digit-only, price strictly positive.
	ProfileStrict Profile = "strict"
)

// ValidationError reports a single rejected field with a human-readable cause.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// validateNotDigits rejects values composed solely of digits.
func validateNotDigits(fl validator.FieldLevel) bool {
	return !digitsOnly.MatchString(fl.Field().String())
}

// Validation applies a profile's rules to entity fields. Name rules go
// through the validator; decimal amounts are checked directly since the
// validator cannot compare decimal.Decimal values.
type Validation struct {
	validate *validator.Validate
	profile  Profile
}

func NewValidation(p Profile) *Validation {
	v := validator.New()
	v.RegisterValidation("notdigits", validateNotDigits)
	return &Validation{validate: v, profile: p}
}

func (v *Validation) Profile() Profile {
	return v.profile
}

// ProductName trims and validates a product name, returning the normalized
// value.
func (v *Validation) ProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := v.validate.Var(name, "required"); err != nil {
		return "", ValidationError{Field: "name", Message: "product name cannot be empty"}
	}
	if v.profile == ProfileStrict {
		if err := v.validate.Var(name, "min=3"); err != nil {
			return "", ValidationError{Field: "name", Message: "product name must be at least 3 characters"}
		}
		if err := v.validate.Var(name, "notdigits"); err != nil {
			return "", ValidationError{Field: "name", Message: "product name cannot consist of digits only"}
		}
	}
	return name, nil
}

// BuyerName trims and validates a buyer name. Buyer rules do not vary by
// profile.
func (v *Validation) BuyerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := v.validate.Var(name, "required"); err != nil {
		return "", ValidationError{Field: "name", Message: "buyer name cannot be empty"}
	}
	if err := v.validate.Var(name, "min=3"); err != nil {
		return "", ValidationError{Field: "name", Message: "buyer name must be at least 3 characters"}
	}
	return name, nil
}

func (v *Validation) Price(price decimal.Decimal) error {
	if v.profile == ProfileStrict {
		if !price.IsPositive() {
			return ValidationError{Field: "price", Message: "price must be positive"}
		}
		return nil
	}
	if price.IsNegative() {
		return ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	return nil
}

func (v *Validation) Discount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return ValidationError{Field: "discount", Message: "discount cannot be negative"}
	}
	return nil
}

func (v *Validation) Money(money decimal.Decimal) error {
	if money.IsNegative() {
		return ValidationError{Field: "money", Message: "money cannot be negative"}
	}
	return nil
}
