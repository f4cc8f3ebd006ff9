package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewProduct(t *testing.T) {
	testCases := []struct {
		name        string
		profile     Profile
		productName string
		price       decimal.Decimal
		expectedErr string
		checkResult func(t *testing.T, p *Product)
	}{
		{
			name:        "Valid product",
			profile:     ProfileStrict,
			productName: "Bread",
			price:       dec("5"),
			checkResult: func(t *testing.T, p *Product) {
				assert.Equal(t, "Bread", p.Name)
				assert.Equal(t, KindPlain, p.Kind)
				assert.True(t, p.Price.Equal(dec("5")))
			},
		},
		{
			name:        "Name is trimmed",
			profile:     ProfileStrict,
			productName: "  Milk  ",
			price:       dec("3.50"),
			checkResult: func(t *testing.T, p *Product) {
				assert.Equal(t, "Milk", p.Name)
			},
		},
		{
			name:        "Empty name",
			profile:     ProfileStrict,
			productName: "",
			price:       dec("5"),
			expectedErr: "name: product name cannot be empty",
		},
		{
			name:        "Whitespace-only name",
			profile:     ProfileLenient,
			productName: "   ",
			price:       dec("5"),
			expectedErr: "name: product name cannot be empty",
		},
		{
			name:        "Short name rejected by strict profile",
			profile:     ProfileStrict,
			productName: "Ry",
			price:       dec("5"),
			expectedErr: "name: product name must be at least 3 characters",
		},
		{
			name:        "Short name accepted by lenient profile",
			profile:     ProfileLenient,
			productName: "Ry",
			price:       dec("5"),
			checkResult: func(t *testing.T, p *Product) {
				assert.Equal(t, "Ry", p.Name)
			},
		},
		{
			name:        "Digit-only name rejected by strict profile",
			profile:     ProfileStrict,
			productName: "12345",
			price:       dec("5"),
			expectedErr: "name: product name cannot consist of digits only",
		},
		{
			name:        "Digit-only name accepted by lenient profile",
			profile:     ProfileLenient,
			productName: "12345",
			price:       dec("5"),
			checkResult: func(t *testing.T, p *Product) {
				assert.Equal(t, "12345", p.Name)
			},
		},
		{
			name:        "Zero price rejected by strict profile",
			profile:     ProfileStrict,
			productName: "Bread",
			price:       decimal.Zero,
			expectedErr: "price: price must be positive",
		},
		{
			name:        "Zero price accepted by lenient profile",
			profile:     ProfileLenient,
			productName: "Bread",
			price:       decimal.Zero,
			checkResult: func(t *testing.T, p *Product) {
				assert.True(t, p.Price.IsZero())
			},
		},
		{
			name:        "Negative price rejected by both profiles",
			profile:     ProfileLenient,
			productName: "Bread",
			price:       dec("-1"),
			expectedErr: "price: price cannot be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProduct(NewValidation(tc.profile), tc.productName, tc.price)

			if tc.expectedErr != "" {
				assert.Nil(t, p)
				var ve ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.EqualError(t, err, tc.expectedErr)
				return
			}

			assert.NoError(t, err)
			if tc.checkResult != nil {
				tc.checkResult(t, p)
			}
		})
	}
}

func TestNewDiscountProduct(t *testing.T) {
	v := NewValidation(ProfileStrict)

	t.Run("Valid discount product", func(t *testing.T) {
		p, err := NewDiscountProduct(v, "Cheese", dec("10"), dec("4"), "31.12.2030")
		assert.NoError(t, err)
		assert.Equal(t, KindDiscounted, p.Kind)
		assert.True(t, p.Discount.Equal(dec("4")))
		assert.Equal(t, "31.12.2030", p.ValidUntil)
	})

	t.Run("Negative discount rejected", func(t *testing.T) {
		p, err := NewDiscountProduct(v, "Cheese", dec("10"), dec("-1"), "31.12.2030")
		assert.Nil(t, p)
		assert.EqualError(t, err, "discount: discount cannot be negative")
	})

	t.Run("Malformed expiry accepted at construction", func(t *testing.T) {
		// Format errors are deferred to price resolution.
		p, err := NewDiscountProduct(v, "Cheese", dec("10"), dec("4"), "not-a-date")
		assert.NoError(t, err)
		assert.Equal(t, "not-a-date", p.ValidUntil)
	})
}

func TestPriceAt(t *testing.T) {
	v := NewValidation(ProfileStrict)
	now := time.Date(2024, time.May, 15, 13, 45, 0, 0, time.UTC)

	newDiscounted := func(price, discount, validUntil string) *Product {
		p, err := NewDiscountProduct(v, "Cheese", dec(price), dec(discount), validUntil)
		assert.NoError(t, err)
		return p
	}

	testCases := []struct {
		name     string
		product  *Product
		expected string
	}{
		{
			name: "Plain product resolves to base price",
			product: func() *Product {
				p, _ := NewProduct(v, "Bread", dec("5"))
				return p
			}(),
			expected: "5",
		},
		{
			name:     "Future expiry applies discount",
			product:  newDiscounted("10", "4", "31.12.2024"),
			expected: "6",
		},
		{
			name:     "Expiry today still applies discount",
			product:  newDiscounted("10", "4", "15.05.2024"),
			expected: "6",
		},
		{
			name:     "Past expiry resolves to base price",
			product:  newDiscounted("10", "4", "14.05.2024"),
			expected: "10",
		},
		{
			name:     "Expiry one year in the past resolves to base price",
			product:  newDiscounted("10", "4", "15.05.2023"),
			expected: "10",
		},
		{
			name:     "Malformed expiry degrades to base price",
			product:  newDiscounted("10", "4", "2024-12-31"),
			expected: "10",
		},
		{
			name:     "Discount larger than price clamps to zero",
			product:  newDiscounted("3", "5", "31.12.2024"),
			expected: "0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.product.PriceAt(now)
			assert.True(t, got.Equal(dec(tc.expected)), "expected %s, got %s", tc.expected, got)
			assert.False(t, got.IsNegative())

			// Resolution is idempotent within the same date.
			again := tc.product.PriceAt(now.Add(2 * time.Hour))
			assert.True(t, got.Equal(again))
		})
	}
}

func TestProductString(t *testing.T) {
	v := NewValidation(ProfileStrict)

	plain, err := NewProduct(v, "Bread", dec("5"))
	assert.NoError(t, err)
	assert.Equal(t, "Bread (Price: 5)", plain.String())

	discounted, err := NewDiscountProduct(v, "Cheese", dec("10"), dec("4"), "31.12.2030")
	assert.NoError(t, err)
	// Renders the base price and the expiry verbatim, not the resolved price.
	assert.Equal(t, "Cheese (Price: 10, Discount: 4, Valid until: 31.12.2030)", discounted.String())
}

func TestProductEqual(t *testing.T) {
	v := NewValidation(ProfileStrict)

	a, _ := NewProduct(v, "Bread", dec("5"))
	b, _ := NewProduct(v, "Bread", dec("5.00"))
	c, _ := NewProduct(v, "Bread", dec("6"))
	d, _ := NewProduct(v, "Milk", dec("5"))

	assert.True(t, a.Equal(b), "equal decimal values must compare equal")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))

	disc, _ := NewDiscountProduct(v, "Bread", dec("5"), dec("1"), "31.12.2030")
	assert.False(t, a.Equal(disc))
}
