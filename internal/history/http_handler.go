package history

import (
	"log/slog"
	"net/http"

	"librarian/internal/httpx"
	"librarian/internal/ledger"
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Search handles GET /users/history
// @Summary Search the borrow history
// @Tags users
// @Security Bearer
// @Param email query string false "Borrower email"
// @Param book_title query string false "Exact book title"
// @Param type_ query string false "borrow or return"
// @Param date query string false "Borrow date, YYYY-MM-DD"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /users/history [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := Filter{
		Email:     q.Get("email"),
		BookTitle: q.Get("book_title"),
		Type:      q.Get("type_"),
	}
	if f.Type == "" {
		f.Type = q.Get("type")
	}
	if raw := q.Get("date"); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			httpx.Fail(w, r, h.logger, err)
			return
		}
		f.Date = &d
	}

	entries, err := h.service.Search(r.Context(), f)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	rows := make([]ledger.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ledger.NewRow(e, e.Transaction.BorrowedBy))
	}
	httpx.JSONSuccess(w, r, rows, httpx.Meta{"total": len(rows)})
}
