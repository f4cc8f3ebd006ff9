package buyers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/marketsim/go-market/models"
)

// Market is the slice of the purchase engine the handlers drive.
type Market interface {
	RegisterBuyer(name string, money decimal.Decimal) (*models.Buyer, error)
	RegisterProduct(name string, price decimal.Decimal) (*models.Product, error)
	RegisterDiscountProduct(name string, price, discount decimal.Decimal, validUntil string) (*models.Product, error)
	ProcessPurchase(buyerName, productName string) models.Outcome
	Report() []string
}

type PurchaseResponse struct {
	Outcome string          `json:"outcome"`
	Buyer   string          `json:"buyer"`
	Product string          `json:"product"`
	Price   decimal.Decimal `json:"price"`
}

type ReportResponse struct {
	Lines []string `json:"lines"`
}

type BuyersHandler struct {
	market Market
}

func NewBuyersHandler(m Market) *BuyersHandler {
	return &BuyersHandler{market: m}
}

func (h *BuyersHandler) HandleRegisterBuyer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string          `json:"name"`
		Money decimal.Decimal `json:"money"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if _, err := h.market.RegisterBuyer(input.Name, input.Money); err != nil {
		writeRegistrationError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Buyer registered successfully",
	})
}

func (h *BuyersHandler) HandleRegisterProduct(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string           `json:"name"`
		Price      decimal.Decimal  `json:"price"`
		Discount   *decimal.Decimal `json:"discount"`
		ValidUntil string           `json:"valid_until"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	var err error
	if input.Discount != nil || input.ValidUntil != "" {
		discount := decimal.Zero
		if input.Discount != nil {
			discount = *input.Discount
		}
		_, err = h.market.RegisterDiscountProduct(input.Name, input.Price, discount, input.ValidUntil)
	} else {
		_, err = h.market.RegisterProduct(input.Name, input.Price)
	}
	if err != nil {
		writeRegistrationError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Product registered successfully",
	})
}

// HandlePurchase maps every purchase outcome to 200: cannot-afford and
// not-found are reportable results, not request failures.
func (h *BuyersHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Buyer   string `json:"buyer"`
		Product string `json:"product"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	out := h.market.ProcessPurchase(input.Buyer, input.Product)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PurchaseResponse{
		Outcome: string(out.Kind),
		Buyer:   out.Buyer,
		Product: out.Product,
		Price:   out.Price,
	})
}

func (h *BuyersHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	lines := h.market.Report()
	if lines == nil {
		lines = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ReportResponse{Lines: lines}); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeRegistrationError(w http.ResponseWriter, err error) {
	var ve models.ValidationError
	if errors.As(err, &ve) {
		writeError(w, ve.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeError(w, "Registration failed", http.StatusInternalServerError)
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
