package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/dto"
	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/middleware"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// AccountSearcher resolves an account number to its public projection.
type AccountSearcher interface {
	Search(ctx context.Context, accountNumber string) (*usecase.AccountProjection, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	directory *usecase.AccountDirectory
	searcher  AccountSearcher
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(directory *usecase.AccountDirectory, searcher AccountSearcher) *AccountHandler {
	return &AccountHandler{
		directory: directory,
		searcher:  searcher,
	}
}

// List lists the authenticated user's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accounts, err := h.directory.ListAccounts(r.Context(), user.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Get retrieves one of the authenticated user's accounts by number.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	account, err := h.directory.ResolveOwnedAccount(r.Context(), number, user.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListTransactions lists an account's transaction history, newest first.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	account, err := h.directory.ResolveOwnedAccount(r.Context(), number, user.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.directory.ListTransactions(r.Context(), account.ID, user.ID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// Search looks up any account by number and returns the public projection.
// The response never includes a balance.
func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("account_number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account_number parameter", "")
		return
	}

	proj, err := h.searcher.Search(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "account not found", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SearchFromProjection(proj))
}
