package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/dto"
	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/middleware"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/auth"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/metrics"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userUC     *usecase.UserUseCase
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC *usecase.UserUseCase, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// Register creates a new user with their first account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "registration failed", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.UsersRegistered.Inc()
		h.metrics.AccountsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		User:    dto.UserFromDomain(result.User),
		Account: dto.AccountFromDomain(result.Account),
	})
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues("login").Inc()
	}

	result, err := h.userUC.Authenticate(r.Context(), req.Username, req.PIN)
	if err != nil {
		if h.metrics != nil {
			h.metrics.AuthFailures.WithLabelValues("login").Inc()
		}
		writeError(w, mapDomainError(err), "login failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(result.User)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:    token,
		User:     dto.UserFromDomain(result.User),
		Accounts: dto.AccountsFromDomain(result.Accounts),
	})
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	user, err := h.userUC.GetUser(r.Context(), claims.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
