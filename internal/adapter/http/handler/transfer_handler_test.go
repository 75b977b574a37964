package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/dto"
	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/middleware"
	"github.com/bluezonesai/fake-bank-turso/internal/domain"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase/mocks"
)

type handlerEnv struct {
	userRepo *mocks.MockUserRepository
	accRepo  *mocks.MockAccountRepository
	txnRepo  *mocks.MockTransactionRepository

	directory *usecase.AccountDirectory
	ledger    *usecase.Ledger
}

func newHandlerEnv() *handlerEnv {
	userRepo := mocks.NewMockUserRepository()
	accRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()

	return &handlerEnv{
		userRepo:  userRepo,
		accRepo:   accRepo,
		txnRepo:   txnRepo,
		directory: usecase.NewAccountDirectory(accRepo, userRepo, txnRepo),
		ledger: usecase.NewLedger(
			mocks.NewMockTransactionManager(),
			accRepo,
			txnRepo,
			mocks.NewMockIDGenerator(),
			mocks.NewMockRetrier(),
		),
	}
}

func (e *handlerEnv) seedUser(t *testing.T, id, username string) *domain.User {
	t.Helper()

	user := &domain.User{ID: id, Username: username, CreatedAt: time.Now().UTC()}
	require.NoError(t, e.userRepo.Create(context.Background(), user))

	return user
}

func (e *handlerEnv) seedAccount(t *testing.T, id, number, ownerID string, accType domain.AccountType, balance int64) *domain.Account {
	t.Helper()

	acc := &domain.Account{
		ID:            id,
		AccountNumber: number,
		OwnerID:       ownerID,
		Type:          accType,
		Balance:       decimal.NewFromInt(balance),
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, e.accRepo.Create(context.Background(), acc))

	return acc
}

// asUser attaches an authenticated user to the request context the way the
// auth middleware does.
func asUser(r *http.Request, id, username string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, &domain.User{ID: id, Username: username})
	return r.WithContext(ctx)
}

func TestTransferHandler_Create(t *testing.T) {
	newRequest := func(body any) *http.Request {
		data, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(data))
		return asUser(req, "user-1", "alice")
	}

	t.Run("success", func(t *testing.T) {
		env := newHandlerEnv()
		env.seedUser(t, "user-1", "alice")
		env.seedAccount(t, "acc-1", "111111111111", "user-1", domain.AccountTypePersonal, 100)
		env.seedAccount(t, "acc-2", "222222222222", "user-2", domain.AccountTypePersonal, 0)

		h := NewTransferHandler(usecase.NewTransferUseCase(env.directory, env.ledger), nil)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(dto.TransferRequest{
			FromAccountNumber: "111111111111",
			ToAccountNumber:   "222222222222",
			Amount:            decimal.NewFromInt(30),
			Description:       "dinner",
		}))

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp dto.TransferResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.NewBalance.Equal(decimal.NewFromInt(70)))
		require.Equal(t, "transfer", resp.Transaction.Type)
		require.Equal(t, "dinner", resp.Transaction.Description)
	})

	t.Run("invalid body", func(t *testing.T) {
		env := newHandlerEnv()
		h := NewTransferHandler(usecase.NewTransferUseCase(env.directory, env.ledger), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewBufferString("{bad json"))
		rec := httptest.NewRecorder()
		h.Create(rec, asUser(req, "user-1", "alice"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing auth context", func(t *testing.T) {
		env := newHandlerEnv()
		h := NewTransferHandler(usecase.NewTransferUseCase(env.directory, env.ledger), nil)

		data, _ := json.Marshal(dto.TransferRequest{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(data))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("status codes follow the failed precondition", func(t *testing.T) {
		tests := []struct {
			name       string
			req        dto.TransferRequest
			wantStatus int
		}{
			{
				name: "negative amount",
				req: dto.TransferRequest{
					FromAccountNumber: "111111111111",
					ToAccountNumber:   "222222222222",
					Amount:            decimal.NewFromInt(-1),
				},
				wantStatus: http.StatusBadRequest,
			},
			{
				name: "unknown source",
				req: dto.TransferRequest{
					FromAccountNumber: "000000000000",
					ToAccountNumber:   "222222222222",
					Amount:            decimal.NewFromInt(10),
				},
				wantStatus: http.StatusNotFound,
			},
			{
				name: "unknown destination",
				req: dto.TransferRequest{
					FromAccountNumber: "111111111111",
					ToAccountNumber:   "999999999999",
					Amount:            decimal.NewFromInt(10),
				},
				wantStatus: http.StatusNotFound,
			},
			{
				name: "insufficient funds",
				req: dto.TransferRequest{
					FromAccountNumber: "111111111111",
					ToAccountNumber:   "222222222222",
					Amount:            decimal.NewFromInt(1000),
				},
				wantStatus: http.StatusBadRequest,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newHandlerEnv()
				env.seedUser(t, "user-1", "alice")
				env.seedAccount(t, "acc-1", "111111111111", "user-1", domain.AccountTypePersonal, 100)
				env.seedAccount(t, "acc-2", "222222222222", "user-2", domain.AccountTypePersonal, 0)

				h := NewTransferHandler(usecase.NewTransferUseCase(env.directory, env.ledger), nil)

				rec := httptest.NewRecorder()
				h.Create(rec, newRequest(tt.req))

				require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			})
		}
	})
}
