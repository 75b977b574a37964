package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/dto"
	"github.com/bluezonesai/fake-bank-turso/internal/adapter/http/middleware"
	"github.com/bluezonesai/fake-bank-turso/internal/infrastructure/metrics"
	"github.com/bluezonesai/fake-bank-turso/internal/usecase"
)

// ChargeHandler handles merchant charge HTTP requests.
type ChargeHandler struct {
	chargeUC *usecase.ChargeUseCase
	metrics  *metrics.Metrics
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(chargeUC *usecase.ChargeUseCase, m *metrics.Metrics) *ChargeHandler {
	return &ChargeHandler{
		chargeUC: chargeUC,
		metrics:  m,
	}
}

// Create executes a charge against a customer on behalf of the authenticated
// business owner. The customer authorizes with their own credentials in the
// request body.
func (h *ChargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.chargeUC.Charge(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		if h.metrics != nil {
			h.metrics.ChargeErrors.WithLabelValues(err.Error()).Inc()
		}
		writeError(w, mapDomainError(err), "failed to create charge", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ChargesCreated.Inc()
		h.metrics.ChargeAmount.Observe(result.Transaction.Amount.InexactFloat64())
	}

	writeJSON(w, http.StatusCreated, dto.ChargeResponse{
		Transaction: dto.TransactionFromDomain(result.Transaction),
		NewBalance:  result.NewBalance,
		Invoice: dto.InvoiceResponse{
			Reason:          result.Invoice.Reason,
			Amount:          result.Invoice.Amount,
			Customer:        result.Invoice.Customer,
			BusinessAccount: result.Invoice.BusinessAccount,
		},
	})
}
