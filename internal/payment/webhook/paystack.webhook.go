package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"brytashop-be/internal/logger"
	"brytashop-be/internal/payment"
	"brytashop-be/internal/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Payload is the subset of a Paystack event we act on.
type Payload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int    `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

type Reconciler interface {
	ReconcilePaystackCharge(ctx context.Context, reference string, amount int) error
}

type Handler struct {
	Orders   Reconciler
	Verifier payment.VerifyGateway
}

func NewWebhookHandler(orders Reconciler, verifier payment.VerifyGateway) *Handler {
	return &Handler{
		Orders:   orders,
		Verifier: verifier,
	}
}

func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		utils.WriteJSONError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Verifier.VerifySignature(r.Header.Get(payment.SignatureHeader), body); err != nil {
		log.Warn("paystack webhook rejected", zap.Error(err))
		utils.WriteJSONError(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	log.Info("paystack webhook received",
		zap.String("event", payload.Event),
		zap.String("reference", payload.Data.Reference),
	)

	if payload.Event != "charge.success" || payload.Data.Reference == "" {
		utils.WriteJSON(w, map[string]string{"status": "ignored"}, http.StatusOK)
		return
	}

	if err := h.Orders.ReconcilePaystackCharge(r.Context(), payload.Data.Reference, payload.Data.Amount); err != nil {
		log.Error("failed to reconcile paystack charge", zap.String("reference", payload.Data.Reference), zap.Error(err))
		utils.WriteJSONError(w, "failed to reconcile charge", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
