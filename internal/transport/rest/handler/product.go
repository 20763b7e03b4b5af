package handler

import (
	"errors"
	"net/http"
	"transparency/internal/model"
	"transparency/internal/service"
	"transparency/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ProductHandler handles product scoring and storage endpoints
type ProductHandler struct {
	productSvc *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productSvc *service.ProductService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc}
}

// Analyze handles POST /v1/products/analyze
func (h *ProductHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.productSvc.Analyze(req.ProductData)
	if err != nil {
		if !writeValidation(w, err) {
			internalError(w, "Failed to analyze product", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Save handles POST /v1/products
func (h *ProductHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.SaveProductRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.productSvc.Save(r.Context(), middleware.GetUserID(r.Context()), req.ProductData)
	if err != nil {
		if !writeValidation(w, err) {
			internalError(w, "Failed to save product", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		internalError(w, "Failed to fetch products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

// Get handles GET /v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productSvc.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if errors.Is(err, service.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		internalError(w, "Failed to fetch product", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}
