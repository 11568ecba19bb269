package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/shop-assistant/internal/adapter/catalog"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

// GET /api/categories?tech={angular|react}
// GET /api/products?tech&categoryId&name&fromPrice&toPrice&sortBy&page&pageSize&batchIds
// GET /api/products/{id}?tech
// GET /api/recommended-products?tech

type CatalogHandler struct {
	provider port.CatalogProvider
}

func RegisterCatalog(mux *http.ServeMux, provider port.CatalogProvider) {
	h := CatalogHandler{provider}
	mux.HandleFunc("/api/categories", allow(h.Categories, http.MethodGet))
	mux.HandleFunc("/api/products", allow(h.Products, http.MethodGet))
	mux.HandleFunc("/api/products/{id}", allow(h.Product, http.MethodGet))
	mux.HandleFunc("/api/recommended-products", allow(h.Recommended, http.MethodGet))
}

func (h CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Categories"

	cs, err := h.provider.Categories(r.Context(), r.URL.Query().Get("tech"))
	if err != nil {
		h.writeProviderErr(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategories(cs))
}

func (h CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Products"

	query := r.URL.Query()
	q := domain.ProductQuery{
		CategoryID: query.Get("categoryId"),
		Name:       query.Get("name"),
		FromPrice:  floatParam(query.Get("fromPrice")),
		ToPrice:    floatParam(query.Get("toPrice")),
		SortBy:     domain.SortOrder(query.Get("sortBy")),
		Page:       intParam(query.Get("page")),
		PageSize:   intParam(query.Get("pageSize")),
	}
	if ids, ok := query["batchIds"]; ok {
		q.BatchIDs = ids
	}

	ps, err := h.provider.Products(r.Context(), query.Get("tech"), q)
	if err != nil {
		h.writeProviderErr(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Product"

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: "Product ID is required",
		})
		return
	}

	p, err := h.provider.Product(r.Context(), r.URL.Query().Get("tech"), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, ErrorResponse{
				Error: "Product not found",
			})
			return
		}
		h.writeProviderErr(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProduct(p))
}

func (h CatalogHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Recommended"

	ps, err := h.provider.Recommended(r.Context(), r.URL.Query().Get("tech"))
	if err != nil {
		h.writeProviderErr(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toProducts(ps))
}

func (h CatalogHandler) writeProviderErr(
	w http.ResponseWriter, op string, err error,
) {
	if errors.Is(err, domain.ErrUnknownVariant) {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: "Invalid or missing tech parameter",
		})
		return
	}
	slog.Error("catalog request failed", "op", op, "err", err)
	writeError(w, http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
	})
}

func floatParam(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func intParam(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
