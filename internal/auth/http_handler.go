package auth

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"librarian/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login
// @Summary User login
// @Description Accepts JSON {email, password} or an OAuth2 password form (username, password).
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, "Invalid form body", nil)
			return
		}
		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if details := httpx.ValidateStruct(req); len(details) > 0 {
			httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, "Validation failed", details)
			return
		}
	} else if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	tok, err := h.service.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONCreated(w, r, tok)
}

// Logout handles POST /auth/logout
// @Summary Revoke the current access token
// @Tags auth
// @Security Bearer
// @Success 204
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := httpx.BearerToken(r)
	if !ok {
		httpx.Fail(w, r, h.logger, ErrInvalidToken)
		return
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}
