package handlers

import (
	"context"

	"github.com/dukani/credit-ledger/internal/model"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

type CatalogService interface {
	AddCustomer(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context, search string) ([]*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	AddProduct(ctx context.Context, p model.ProductCreateRequest) (*model.Product, error)
	ListProducts(ctx context.Context, search string) ([]*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CatalogHandler struct {
	svc CatalogService
}

func RegisterCatalogRoutes(g *xhttp.Group, h *CatalogHandler) {
	g.POST("/customers", h.CreateCustomer)
	g.GET("/customers", h.ListCustomers)
	g.DELETE("/customers/{id}", h.DeleteCustomer)
	g.POST("/products", h.CreateProduct)
	g.GET("/products", h.ListProducts)
	g.DELETE("/products/{id}", h.DeleteProduct)
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type createProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *CatalogHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req createCustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	c, err := h.svc.AddCustomer(ctx, model.CustomerCreateRequest{Name: req.Name, Phone: req.Phone})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, c)
}

func (h *CatalogHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	customers, err := h.svc.ListCustomers(ctx, query(ctx, "search"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customers)
}

func (h *CatalogHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.svc.DeleteCustomer(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogHandler) CreateProduct(ctx *xhttp.RequestCtx) {
	var req createProductRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p, err := h.svc.AddProduct(ctx, model.ProductCreateRequest{Name: req.Name, Price: req.Price})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, p)
}

func (h *CatalogHandler) ListProducts(ctx *xhttp.RequestCtx) {
	products, err := h.svc.ListProducts(ctx, query(ctx, "search"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, products)
}

func (h *CatalogHandler) DeleteProduct(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.svc.DeleteProduct(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}
