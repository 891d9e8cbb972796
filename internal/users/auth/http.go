// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// Handler serves /api/v1/auth.
type Handler struct {
	service      *Service
	secureCookie bool
}

// NewHandler builds the auth [Handler]. secureCookie marks the refresh cookie
// Secure and should only be false for local HTTP.
func NewHandler(service *Service, secureCookie bool) *Handler {
	return &Handler{service: service, secureCookie: secureCookie}
}

// Routes returns the auth router.
//
// # Endpoints
//   - POST /register   : Creates a writer account.
//   - POST /login      : Access token in the body, refresh token in a cookie.
//   - POST /refresh    : Rotates the refresh cookie.
//   - POST /logout     : Revokes the cookie's session.
//   - POST /logout-all : Revokes every session of the caller.
//   - GET  /me         : Current account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.With(middleware.RequireAuth).Get("/me", handler.withUser(handler.me))
	router.With(middleware.RequireAuth).Post("/logout-all", handler.withUser(handler.logoutAll))

	return router
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (input registerRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 50).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > MaxPasswordLength, fmt.Sprintf("Maximum %d bytes", MaxPasswordLength)).
		MaxLen(FieldDisplayName, input.DisplayName, 100)
	return validator.Err()
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (input loginRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password)
	return validator.Err()
}

// tokenBody is the JSON answer of login and refresh.
type tokenBody struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user,omitempty"`
}

func newTokenBody(session *LoginSession) tokenBody {
	return tokenBody{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(AccessTokenTTL / time.Second),
	}
}

/*
POST /api/v1/auth/register

Response:
  - 201: User
  - 400: Validation failure
  - 409: Username or email taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login

Response:
  - 200: tokenBody with the user
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Login:     input.Login,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.refreshCookie(session.RefreshToken, session.RefreshTokenExpiresAt))

	body := newTokenBody(session)
	body.User = session.User
	respond.OK(writer, body)
}

/*
POST /api/v1/auth/refresh

A rejected cookie is cleared so the client stops replaying it.
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	token := refreshTokenOf(request)
	if token == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.service.RefreshSession(request.Context(), token, request.UserAgent(), middleware.RealIP(request))
	if err != nil {
		http.SetCookie(writer, handler.expiredCookie())
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.refreshCookie(session.RefreshToken, session.RefreshTokenExpiresAt))
	respond.OK(writer, newTokenBody(session))
}

// logout answers 204 with or without a cookie.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token := refreshTokenOf(request); token != "" {
		if err := handler.service.Logout(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, handler.expiredCookie())
	respond.NoContent(writer)
}

func (handler *Handler) logoutAll(writer http.ResponseWriter, request *http.Request, userID string) {
	if err := handler.service.LogoutAll(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.expiredCookie())
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request, userID string) {
	user, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// withUser resolves the caller before running next.
func (handler *Handler) withUser(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		next(writer, request, userID)
	}
}

// # Cookies

func refreshTokenOf(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (handler *Handler) refreshCookie(token string, expires time.Time) *http.Cookie {
	cookie := handler.baseCookie()
	cookie.Value = token
	cookie.Expires = expires
	return cookie
}

// expiredCookie tells the browser to drop the refresh cookie.
func (handler *Handler) expiredCookie() *http.Cookie {
	cookie := handler.baseCookie()
	cookie.MaxAge = -1
	return cookie
}

func (handler *Handler) baseCookie() *http.Cookie {
	return &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Path:     constants.RefreshTokenCookiePath,
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
