package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/marketsim/go-market/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	// Price is the effective price resolved for the current date;
	// BasePrice is the undiscounted catalog price.
	Price      float64 `json:"price"`
	BasePrice  float64 `json:"base_price"`
	Discount   float64 `json:"discount,omitempty"`
	ValidUntil string  `json:"valid_until,omitempty"`
}

type ProductProvider interface {
	ListProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByName(name string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
	now  func() time.Time
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		now:  time.Now,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	kind := models.ProductKind(r.URL.Query().Get("kind"))

	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		Kind:          kind,
		PriceLessThan: priceFilter,
	}

	res, total, err := h.repo.ListProducts(offset, limit, filters)
	if err != nil {
		writeError(w, "failed to get products", http.StatusInternalServerError)
		return
	}

	now := h.now()
	products := make([]Product, len(res))
	for i := range res {
		products[i] = mapProduct(&res[i], now)
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Total:    int(total),
		Products: products,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	product, err := h.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeError(w, "Product not found", http.StatusNotFound)
			return
		}
		writeError(w, "Failed to retrieve product", http.StatusInternalServerError)
		return
	}

	response := mapProduct(product, h.now())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func mapProduct(p *models.Product, now time.Time) Product {
	return Product{
		Name:       p.Name,
		Kind:       string(p.Kind),
		Price:      p.PriceAt(now).InexactFloat64(),
		BasePrice:  p.Price.InexactFloat64(),
		Discount:   p.Discount.InexactFloat64(),
		ValidUntil: p.ValidUntil,
	}
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
