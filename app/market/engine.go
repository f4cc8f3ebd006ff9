package market

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketsim/go-market/models"
)

// Store is the optional write-through persistence hook. Registrations and
// successful purchases are mirrored into it; store failures are logged and
// never change the outcome of the in-memory operation.
type Store interface {
	SaveBuyer(*models.Buyer) error
	SaveProduct(*models.Product) error
	RecordPurchase(models.Outcome) error
}

// Engine owns the buyer and product registries and processes purchase
// requests against them. Registries are keyed by trimmed name; duplicate
// registration overwrites the entry in place, so the last registration
// wins while the report keeps the original position.
//
// All exported methods serialize on an internal mutex: balance deduction
// is a read-then-write, so no two purchases for the same buyer may
// interleave.
type Engine struct {
	mu    sync.Mutex
	log   *slog.Logger
	check *models.Validation
	now   func() time.Time
	store Store

	buyers       map[string]*models.Buyer
	buyerOrder   []string
	products     map[string]*models.Product
	productOrder []string
}

type Option func(*Engine)

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the wall clock used for discount expiry checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithStore(s Store) Option {
	return func(e *Engine) { e.store = s }
}

func NewEngine(check *models.Validation, opts ...Option) *Engine {
	e := &Engine{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		check:    check,
		now:      time.Now,
		buyers:   make(map[string]*models.Buyer),
		products: make(map[string]*models.Product),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterBuyer validates and inserts a buyer, overwriting any existing
// buyer with the same name. The registered buyer is returned.
func (e *Engine) RegisterBuyer(name string, money decimal.Decimal) (*models.Buyer, error) {
	b, err := models.NewBuyer(e.check, name, money)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.buyers[b.Name]; !ok {
		e.buyerOrder = append(e.buyerOrder, b.Name)
	}
	e.buyers[b.Name] = b
	e.persistBuyer(b)
	e.log.Debug("registered buyer", "name", b.Name, "money", b.Money)
	return b, nil
}

// RegisterProduct validates and inserts a plain product, overwriting any
// existing product with the same name.
func (e *Engine) RegisterProduct(name string, price decimal.Decimal) (*models.Product, error) {
	p, err := models.NewProduct(e.check, name, price)
	if err != nil {
		return nil, err
	}
	e.insertProduct(p)
	return p, nil
}

// RegisterDiscountProduct validates and inserts a discounted product. The
// expiry string is accepted verbatim; a malformed date only shows up as an
// undiscounted resolved price.
func (e *Engine) RegisterDiscountProduct(name string, price, discount decimal.Decimal, validUntil string) (*models.Product, error) {
	p, err := models.NewDiscountProduct(e.check, name, price, discount, validUntil)
	if err != nil {
		return nil, err
	}
	e.insertProduct(p)
	return p, nil
}

func (e *Engine) insertProduct(p *models.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.products[p.Name]; !ok {
		e.productOrder = append(e.productOrder, p.Name)
	}
	e.products[p.Name] = p
	e.persistProduct(p)
	e.log.Debug("registered product", "name", p.Name, "kind", p.Kind, "price", p.Price)
}

// ProcessPurchase resolves both names and delegates to the buyer's
// purchase operation. An absent buyer or product yields a not-found
// outcome and no state change.
func (e *Engine) ProcessPurchase(buyerName, productName string) models.Outcome {
	buyerName = strings.TrimSpace(buyerName)
	productName = strings.TrimSpace(productName)

	e.mu.Lock()
	defer e.mu.Unlock()

	buyer, buyerOK := e.buyers[buyerName]
	product, productOK := e.products[productName]
	if !buyerOK || !productOK {
		e.log.Info("purchase rejected", "buyer", buyerName, "product", productName, "reason", "not found")
		return models.Outcome{Kind: models.OutcomeNotFound, Buyer: buyerName, Product: productName}
	}

	out := buyer.Buy(product, e.now())
	e.log.Info("purchase processed", "buyer", buyerName, "product", productName, "outcome", out.Kind, "price", out.Price)

	if out.Kind == models.OutcomeBought && e.store != nil {
		if err := e.store.RecordPurchase(out); err != nil {
			e.log.Error("failed to record purchase", "buyer", buyerName, "error", err)
		}
		e.persistBuyer(buyer)
	}
	return out
}

// Report renders every buyer's purchase line in registration order.
func (e *Engine) Report() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]string, len(e.buyerOrder))
	for i, name := range e.buyerOrder {
		lines[i] = e.buyers[name].String()
	}
	return lines
}

// ListProducts serves catalog listings straight from the registry so the
// HTTP catalog can run without a database. Results come back in
// registration order.
func (e *Engine) ListProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var matched []models.Product
	for _, name := range e.productOrder {
		p := e.products[name]
		if filters.Kind != "" && p.Kind != filters.Kind {
			continue
		}
		if filters.PriceLessThan != nil && p.Price.InexactFloat64() >= *filters.PriceLessThan {
			continue
		}
		matched = append(matched, *p)
	}

	total := int64(len(matched))
	start := min(offset, len(matched))
	end := min(offset+limit, len(matched))
	return matched[start:end], total, nil
}

func (e *Engine) GetByName(name string) (*models.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.products[name]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	product := *p
	return &product, nil
}

func (e *Engine) persistBuyer(b *models.Buyer) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveBuyer(b); err != nil {
		e.log.Error("failed to persist buyer", "name", b.Name, "error", err)
	}
}

func (e *Engine) persistProduct(p *models.Product) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveProduct(p); err != nil {
		e.log.Error("failed to persist product", "name", p.Name, "error", err)
	}
}
