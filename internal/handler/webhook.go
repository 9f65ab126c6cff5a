package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/api"
	"github.com/popeskul/lead-messenger/internal/middleware"
	"github.com/popeskul/lead-messenger/internal/service"
)

const (
	signatureHeader  = "X-Hub-Signature-256"
	signaturePrefix  = "sha256="
	maxWebhookBody   = 1 << 20
	subscribeMode    = "subscribe"
	webhookAckStatus = "ok"
)

// VerifyWebhook implements api.ServerInterface. It answers the provider's
// subscription handshake by echoing hub.challenge.
func (h *Handler) VerifyWebhook(w http.ResponseWriter, r *http.Request, params api.VerifyWebhookParams) {
	if deref(params.HubMode) != subscribeMode ||
		h.webhook.VerifyToken == "" ||
		!hmac.Equal([]byte(deref(params.HubVerifyToken)), []byte(h.webhook.VerifyToken)) {
		h.sendError(w, r, http.StatusForbidden, errorCodeForbidden, errorMessageVerifyTokenMismatch)
		return
	}

	render.PlainText(w, r, deref(params.HubChallenge))
}

// ReceiveWebhook implements api.ServerInterface. Events for unknown messages
// or phones are acknowledged; a storage failure answers 500 so the provider
// redelivers.
func (h *Handler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidRequest, errorMessageInvalidBody)
		return
	}

	if h.webhook.AppSecret != "" && !validSignature(body, r.Header.Get(signatureHeader), h.webhook.AppSecret) {
		h.logger.Warn("Webhook signature rejected",
			zap.String("request_id", middleware.GetRequestID(r.Context())))
		h.sendError(w, r, http.StatusUnauthorized, errorCodeInvalidSignature, errorMessageInvalidSignature)
		return
	}

	events := service.ParseWebhook(body, time.Now().UTC())
	for i := range events.Statuses {
		if err := h.service.Webhook.HandleStatus(r.Context(), &events.Statuses[i]); err != nil {
			h.handleServiceError(w, r, "handle status event", err)
			return
		}
	}
	for i := range events.Replies {
		if err := h.service.Webhook.HandleReply(r.Context(), &events.Replies[i]); err != nil {
			h.handleServiceError(w, r, "handle reply event", err)
			return
		}
	}

	h.logger.Debug("Webhook processed",
		zap.Int("statuses", len(events.Statuses)),
		zap.Int("replies", len(events.Replies)))
	render.JSON(w, r, map[string]string{"status": webhookAckStatus})
}

// validSignature checks header against the hex HMAC-SHA256 of body.
func validSignature(body []byte, header, secret string) bool {
	if !strings.HasPrefix(header, signaturePrefix) {
		return false
	}
	got, err := hex.DecodeString(strings.TrimPrefix(header, signaturePrefix))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
