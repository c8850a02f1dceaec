package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/service"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

const (
	msgLoginOK            = "Login successful"
	msgRegistered         = "User registered successfully!"
	detailBadCredentials  = "Invalid credentials"
	detailRefreshRejected = "Token is invalid or expired"
	codeTokenNotValid     = "token_not_valid"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP handles username/password login.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns an access and a refresh token with the profile fields.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		pollsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	pollsdk.LoginResponse
//	@Failure		400		{object}	pollsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	pollsdk.ErrorResponse	"Invalid credentials"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req pollsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, msgMalformedJSON)
		return
	}

	u, err := h.UserService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Info("login rejected", "username", req.Username)
			writeDetail(w, http.StatusUnauthorized, detailBadCredentials)
			return
		}
		log.Error("failed to authenticate", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	pair, err := h.TokenService.Issue(u)
	if err != nil {
		log.Error("failed to issue tokens", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pollsdk.LoginResponse{
		Message:   msgLoginOK,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  string(u.Role),
		Refresh:   pair.RefreshToken,
		Access:    pair.AccessToken,
	})
}

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles account registration.
//
//	@Summary		Register
//	@Description	Creates an account. user_type defaults to "user". Field problems are returned together.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		pollsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	pollsdk.RegisterResponse
//	@Failure		400		{object}	pollsdk.ErrorResponse	"errors: field -> message"
//	@Router			/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req pollsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, pollsdk.ErrorResponse{
			Errors: map[string]string{"non_field_errors": msgMalformedJSON},
		})
		return
	}

	u, err := h.UserService.Register(ctx, domain.Registration{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.UserType),
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			httpx.WriteJSON(w, http.StatusBadRequest, pollsdk.ErrorResponse{Errors: verr.Fields})
			return
		}
		log.Error("failed to register user", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, pollsdk.RegisterResponse{
		Message: msgRegistered,
		User:    toUser(u),
	})
}

type RefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP exchanges a refresh token for a new access token.
//
//	@Summary		Refresh access token
//	@Description	Returns a new access token. A new refresh token is included when rotation is enabled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		pollsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	pollsdk.RefreshResponse
//	@Failure		400		{object}	pollsdk.ErrorResponse	"Missing refresh token"
//	@Failure		401		{object}	pollsdk.ErrorResponse	"Token is invalid or expired"
//	@Router			/token/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req pollsdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, msgMalformedJSON)
		return
	}
	if req.Refresh == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, pollsdk.ErrorResponse{
			Errors: map[string]string{"refresh": service.MsgFieldRequired},
		})
		return
	}

	pair, err := h.TokenService.Refresh(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			httpx.WriteJSON(w, http.StatusUnauthorized, pollsdk.ErrorResponse{
				Detail: detailRefreshRejected,
				Code:   codeTokenNotValid,
			})
			return
		}
		log.Error("failed to refresh token", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pollsdk.RefreshResponse{
		Access:  pair.AccessToken,
		Refresh: pair.RefreshToken,
	})
}
