package book

import (
	"log/slog"
	"net/http"

	"librarian/internal/httpx"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Create handles POST /books/
// @Summary Add a book to the catalog
// @Tags books
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONCreated(w, r, b)
}

// List handles GET /books/
// @Summary List books
// @Tags books
// @Param page query int false "Page number (>= 1)"
// @Param page_size query int false "Page size (>= 1)"
// @Success 200 {object} httpx.SuccessResponse
// @Router /books/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.QueryInt(r, "page", defaultPage)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	pageSize, err := httpx.QueryInt(r, "page_size", defaultPageSize)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	result, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, result, httpx.Meta{
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (result.Total + pageSize - 1) / pageSize,
	})
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	var in Input
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	b, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]string{"message": "Book deleted successfully"}, nil)
}
