package ledger

import (
	"context"
	"log/slog"
	"net/http"

	"librarian/internal/httpx"
	"librarian/internal/user"
)

// UserLookup resolves borrower ids to accounts.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type HTTPHandler struct {
	service *Service
	users   UserLookup
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, users UserLookup, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, users: users, logger: logger}
}

// Borrow handles POST /books/{id}/borrow
// @Summary Borrow a book
// @Tags books
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/borrow [post]
func (h *HTTPHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	bookID, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	receipt, err := h.service.Borrow(r.Context(), bookID, httpx.UserIDFrom(r))
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONCreated(w, r, receipt)
}

// Return handles PUT /books/{id}/return
// @Summary Return a borrowed book
// @Tags books
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id}/return [put]
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	bookID, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	receipt, err := h.service.Return(r.Context(), bookID)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, receipt, nil)
}

// MyBooks handles GET /users/book
// @Summary List the caller's borrowed books, returned or not
// @Tags users
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Router /users/book [get]
func (h *HTTPHandler) MyBooks(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	entries, err := h.service.ListBorrowedBy(r.Context(), userID)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, NewRow(e, u.Name))
	}
	httpx.JSONSuccess(w, r, rows, httpx.Meta{"total": len(rows)})
}
