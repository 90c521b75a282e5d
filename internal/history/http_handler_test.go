package history

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"librarian/internal/book"
	"librarian/internal/httpx"
	"librarian/internal/ledger"
	"librarian/internal/platform/logging"
)

func TestHTTPHandler_Search(t *testing.T) {
	repo := new(mockRepo)
	h := NewHTTPHandler(NewService(repo, new(mockUsers), logging.Discard()), logging.Discard())

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo.On("Search", mock.Anything, mock.MatchedBy(func(f Filter) bool {
		return f.Type == "borrow" && f.Date != nil && f.Date.Equal(day) && f.BookTitle == "Dune"
	})).Return([]ledger.Entry{{
		Book:        &book.Book{ID: 3, Title: "Dune"},
		Transaction: ledger.Transaction{ID: 9, BookID: 3, BorrowedBy: 5, Borrowed: true, BorrowedAt: day.Add(time.Hour)},
	}}, nil)

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/users/history?book_title=Dune&type_=borrow&date=2024-03-01", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"borrowed_by":5`)
	assert.Contains(t, body, `"transaction_id":9`)
	assert.Contains(t, body, `"title":"Dune"`)
}

func TestHTTPHandler_Search_BadDate(t *testing.T) {
	h := NewHTTPHandler(NewService(new(mockRepo), new(mockUsers), logging.Discard()), logging.Discard())

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/users/history?date=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), httpx.CodeValidation)
}
