package ledger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian/internal/book"
	"librarian/internal/httpx"
	"librarian/internal/platform/logging"
	"librarian/internal/testutil"
	"librarian/internal/user"
)

type stubUsers map[int64]user.User

func (s stubUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := s[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func newTestMux(repo *memRepo) *http.ServeMux {
	users := stubUsers{u1: {ID: u1, Name: "ada"}, u2: {ID: u2, Name: "grace"}}
	h := NewHTTPHandler(newTestService(repo), users, logging.Discard())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /books/{id}/borrow", h.Borrow)
	mux.HandleFunc("PUT /books/{id}/return", h.Return)
	mux.HandleFunc("GET /users/book", h.MyBooks)
	return mux
}

func asUser(r *http.Request, id int64) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), id, user.RoleUser))
}

func TestHTTPHandler_BorrowReturnFlow(t *testing.T) {
	repo := newMemRepo(book.Book{ID: 1, Title: "Dune", Author: "Herbert", Count: 1})
	mux := newTestMux(repo)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPost, "/books/1/borrow", nil), u1))
	resp := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Data(), "book")
	assert.Contains(t, resp.Data(), "borrowed_book")

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPost, "/books/1/borrow", nil), u2))
	resp = testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, httpx.CodeUnavailable, resp.ErrorCode())

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPut, "/books/1/return", nil), u2))
	resp = testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, resp.Code)
	borrowed, _ := resp.Data()["borrowed_book"].(map[string]any)
	assert.Equal(t, true, borrowed["returned"])

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPut, "/books/1/return", nil), u2))
	resp = testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, httpx.CodeNotFound, resp.ErrorCode())
}

func TestHTTPHandler_BorrowUnknownBook(t *testing.T) {
	mux := newTestMux(newMemRepo())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPost, "/books/9/borrow", nil), u1))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPHandler_BorrowBadID(t *testing.T) {
	mux := newTestMux(newMemRepo())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPost, "/books/x/borrow", nil), u1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTPHandler_MyBooks(t *testing.T) {
	repo := newMemRepo(book.Book{ID: 1, Title: "Dune", Author: "Herbert", Count: 1})
	mux := newTestMux(repo)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodGet, "/users/book", nil), u1))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodPost, "/books/1/borrow", nil), u1))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, asUser(httptest.NewRequest(http.MethodGet, "/users/book", nil), u1))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"borrowed_by":"ada"`)
	assert.Contains(t, body, `"title":"Dune"`)
	assert.Contains(t, body, `"transaction_id":1`)
}
