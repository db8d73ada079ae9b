package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknote/backend/api/transport"
	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/internal/middleware"
	"github.com/tasknote/backend/pkg/httpcontext"
	authUC "github.com/tasknote/backend/usecase/auth"
)

const minPasswordLength = 6

// CookieSettings controls how the session cookie is written.
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	baseHandler
	uc     *authUC.UseCase
	cookie CookieSettings
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "sid"
	}
	if cookie.TTL <= 0 {
		cookie.TTL = authUC.DefaultSessionTTL
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookie:      cookie,
	}
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseCredentials(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Register(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session)
	h.respondSuccess(ctx, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"session": session,
	})
}

// @Summary Log in with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseCredentials(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, session, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session)
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"user":    user,
		"session": session,
	})
}

// @Summary End the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	token := middleware.ExtractToken(ctx, h.cookie.Name)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RevokeSession(stdCtx, token); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.clearSessionCookie(ctx)
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// parseCredentials enforces the request-validation preconditions the core
// relies on: a well-formed email and a password of at least six characters.
func (h *AuthHandler) parseCredentials(ctx *fasthttp.RequestCtx) (transport.CredentialsRequest, bool) {
	var req transport.CredentialsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return req, false
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "malformed email", nil))
		return req, false
	}
	if len(req.Password) < minPasswordLength {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "password too short", nil))
		return req, false
	}
	return req, true
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, session *domain.Session) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookie.Name)
	cookie.SetValue(session.ID)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetSecure(h.cookie.Secure)
	cookie.SetMaxAge(int(h.cookie.TTL.Seconds()))
	ctx.Response.Header.SetCookie(cookie)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookie.Name)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetMaxAge(-1)
	ctx.Response.Header.SetCookie(cookie)
}
