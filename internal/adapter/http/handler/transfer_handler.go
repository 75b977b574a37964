package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/dto"
	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/middleware"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/metrics"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{
		transferUC: transferUC,
		metrics:    m,
	}
}

// Create executes a transfer from one of the authenticated user's accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	result, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransferErrors.WithLabelValues(err.Error()).Inc()
		}
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCreated.Inc()
		h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		h.metrics.TransferAmount.Observe(result.Transaction.Amount.InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.TransferResponse{
		Transaction: dto.TransactionFromDomain(result.Transaction),
		NewBalance:  result.NewBalance,
	})
}
