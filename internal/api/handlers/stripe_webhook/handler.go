package stripe_webhook

import (
	"io"
	"net/http"

	"github.com/studio609/Studio-BookingService/internal/api/handlers"
)

// maxBodyBytes ограничение на размер тела webhook-события
const maxBodyBytes = 1 << 20

const (
	msgUnreadableBody   = "не удалось прочитать тело запроса"
	msgInvalidSignature = "некорректная подпись события"
	msgMalformedEvent   = "некорректное содержимое события"
)

type Handler struct {
	verifier EventVerifier
	useCase  ConfirmPaymentUseCase
	logger   Logger
}

func NewHandler(verifier EventVerifier, useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/v1/payments/stripe/webhook
//
// Ошибки обработки после успешной проверки подписи возвращают 5xx,
// чтобы Stripe повторил доставку события.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}
	defer r.Body.Close()

	event, err := h.verifier.VerifyEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Signature verification failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSignature)
		return
	}

	useCaseReq, err := ToUseCaseRequest(event)
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Malformed event payload: event_id=%s, error=%v", event.ID, err)
		handlers.RespondBadRequest(w, msgMalformedEvent)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("POST /payments/stripe/webhook - Failed to process event: event_id=%s, type=%s, error=%v",
			event.ID, event.Type, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /payments/stripe/webhook - Event processed: event_id=%s, type=%s, outcome=%s, ref=%s",
		event.ID, event.Type, result.Outcome, result.BookingRef)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{
		Received:   true,
		Outcome:    result.Outcome,
		BookingRef: result.BookingRef,
	})
}
