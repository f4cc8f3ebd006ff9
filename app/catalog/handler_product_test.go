package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marketsim/go-market/models"
)

func TestHandleGetProduct(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct("Bread", 5.00),
		newTestDiscountProduct("Cheese", 10.00, 4.00, "31.12.2024"),
		newTestDiscountProduct("Wine", 24.99, 5.00, "not-a-date"),
	}

	testCases := []struct {
		name               string
		productName        string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:        "Plain product",
			productName: "Bread",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Product
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "Bread", resp.Name)
				assert.Equal(t, "plain", resp.Kind)
				assert.Equal(t, 5.00, resp.Price)
				assert.Equal(t, 5.00, resp.BasePrice)
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "Bread", repo.lastCalledName)
			},
		},
		{
			name:        "Discounted product with active discount",
			productName: "Cheese",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Product
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "discounted", resp.Kind)
				assert.Equal(t, 6.00, resp.Price)
				assert.Equal(t, 10.00, resp.BasePrice)
				assert.Equal(t, 4.00, resp.Discount)
				assert.Equal(t, "31.12.2024", resp.ValidUntil)
			},
		},
		{
			name:        "Malformed expiry degrades to base price",
			productName: "Wine",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Product
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 24.99, resp.Price)
				assert.Equal(t, "not-a-date", resp.ValidUntil)
			},
		},
		{
			name:        "Product not found",
			productName: "Caviar",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Product not found", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "Caviar", repo.lastCalledName)
			},
		},
		{
			name:        "Repository internal error",
			productName: "Bread",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db connection lost")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to retrieve product", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := newTestHandler(mockRepo)
			req := httptest.NewRequest("GET", "/catalog/"+tc.productName, nil)
			req.SetPathValue("name", tc.productName)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetProduct(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}
