package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, params service.ListParams) (*model.ProductPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductPage), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.ProductView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductView), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.ProductView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductView), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductView, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductView), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) AppendWarranty(ctx context.Context, id int64, documentName string) (*model.ProductView, error) {
	args := m.Called(ctx, id, documentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductView), args.Error(1)
}

func (m *MockProductService) Stats(ctx context.Context, id int64) (*model.ProductStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductStats), args.Error(1)
}

// newProductRouter mounts the handler on its routes so URL parameters
// resolve the way they do in production.
func newProductRouter(svc service.ProductService) http.Handler {
	h := NewProductHandler(svc, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/v1/products/", h.List)
	r.Post("/v1/products/new", h.Create)
	r.Get("/v1/products/{id}/", h.GetByID)
	r.Patch("/v1/products/{id}/", h.Update)
	r.Delete("/v1/products/{id}/", h.Delete)
	r.Post("/v1/products/{id}/warranty", h.AppendWarranty)
	r.Get("/v1/products/{id}/stats", h.Stats)
	return r
}

func TestProductHandler_List(t *testing.T) {
	page := &model.ProductPage{
		Count: 25,
		Result: []model.ProductView{
			{ID: 1, Name: "Backpack", Price: 49.99, CurrentPrice: 49.99},
		},
	}

	t.Run("Success returns count and result only", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("List", mock.Anything, service.ListParams{Limit: 10, Offset: 5}).
			Return(page, nil)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/?limit=10&offset=5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "count")
		assert.Contains(t, body, "result")
		assert.NotContains(t, body, "next")
		assert.NotContains(t, body, "previous")

		mockSvc.AssertExpectations(t)
	})

	t.Run("Filter parameters pass through", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(p service.ListParams) bool {
			return p.ID != nil && *p.ID == 3 && p.Search == "mineral" && p.OnSale == "true"
		})).Return(page, nil)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/?id=3&search=mineral&on_sale=true", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		mockSvc := new(MockProductService)
		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/?limit=ten", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "List")
	})

	t.Run("Service failure", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("GetByID", mock.Anything, int64(1)).
			Return(&model.ProductView{ID: 1, Name: "Backpack", Price: 49.99}, nil)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/1/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var view model.ProductView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Backpack", view.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("GetByID", mock.Anything, int64(42)).Return(nil, model.ErrProductNotFound)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/42/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Non-numeric id", func(t *testing.T) {
		mockSvc := new(MockProductService)
		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/abc/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "GetByID")
	})
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*model.ProductRequest")).
			Return(&model.ProductView{ID: 7, Name: "Backpack", Price: 49.99}, nil)

		router := newProductRouter(mockSvc)

		body := `{"name": "Backpack", "description": "Daily commuter backpack.", "price": 49.99}`
		req := httptest.NewRequest(http.MethodPost, "/v1/products/new", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Validation errors are field-keyed", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, model.ValidationError{"price": "Must be above $0.00"})

		router := newProductRouter(mockSvc)

		body := `{"name": "Backpack", "description": "Daily commuter backpack.", "price": 0}`
		req := httptest.NewRequest(http.MethodPost, "/v1/products/new", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
		assert.Equal(t, map[string]string{"price": "Must be above $0.00"}, fields)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		mockSvc := new(MockProductService)
		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodPost, "/v1/products/new", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "Create")
	})
}

func TestProductHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Update", mock.Anything, int64(1), mock.AnythingOfType("*model.ProductRequest")).
			Return(&model.ProductView{ID: 1, Name: "Backpack", Price: 59.99}, nil)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/1/", strings.NewReader(`{"price": 59.99}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Update", mock.Anything, int64(42), mock.Anything).
			Return(nil, model.ErrProductNotFound)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodPatch, "/v1/products/42/", strings.NewReader(`{"price": 59.99}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("Success returns no content", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodDelete, "/v1/products/1/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Not found", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Delete", mock.Anything, int64(42)).Return(model.ErrProductNotFound)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodDelete, "/v1/products/42/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandler_AppendWarranty(t *testing.T) {
	mockSvc := new(MockProductService)
	mockSvc.On("AppendWarranty", mock.Anything, int64(1), "warranty-standard").
		Return(&model.ProductView{ID: 1, Name: "Backpack", Description: "desc\n\nwarranty text"}, nil)

	router := newProductRouter(mockSvc)

	body := `{"name": "warranty-standard"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/products/1/warranty", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_Stats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Stats", mock.Anything, int64(1)).
			Return(&model.ProductStats{Stats: map[string][]int{"2022-01-01": {5, 10, 15}}}, nil)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/1/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var stats model.ProductStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, []int{5, 10, 15}, stats.Stats["2022-01-01"])
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockSvc := new(MockProductService)
		mockSvc.On("Stats", mock.Anything, int64(42)).Return(nil, model.ErrProductNotFound)

		router := newProductRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/42/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
