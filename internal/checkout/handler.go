package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/donation-gateway/internal"
	"github.com/frahmantamala/donation-gateway/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	InitiateCheckout(ctx context.Context, req *CheckoutRequest) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Logger  *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Logger:      logger,
	}
}

// CheckoutPayload is the host platform's request to open a hosted checkout.
// Amount is a decimal string in major units ("100.00").
type CheckoutPayload struct {
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	Locale         string `json:"locale"`
	Processor      string `json:"processor"`
	CorrelationKey string `json:"correlation_key,omitempty"`
	ContributionID int64  `json:"contribution_id"`
	ContactID      int64  `json:"contact_id"`
	Component      string `json:"component"`
	EventID        *int64 `json:"event_id,omitempty"`
	ParticipantID  *int64 `json:"participant_id,omitempty"`
	MembershipID   *int64 `json:"membership_id,omitempty"`
	ReturnURL      string `json:"return_url"`
	CancelURL      string `json:"cancel_url"`
}

type CheckoutResponse struct {
	RedirectURL    string `json:"redirect_url"`
	CorrelationKey string `json:"correlation_key"`
}

// InitiateCheckout handles POST /api/v1/checkout
func (h *Handler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	var payload CheckoutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.Logger.Error("InitiateCheckout: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	amountMinor, err := ParseAmount(payload.Amount)
	if err != nil {
		h.Logger.Error("InitiateCheckout: invalid amount", "amount", payload.Amount, "error", err)
		h.HandleError(w, errors.NewValidationError("invalid amount", errors.ErrCodeInvalidAmount))
		return
	}

	correlationKey := payload.CorrelationKey
	if correlationKey == "" {
		correlationKey = uuid.NewString()
	}

	component := payload.Component
	if component == "" {
		component = ComponentContribute
	}

	req := &CheckoutRequest{
		AmountMinor:    amountMinor,
		Currency:       Currency(payload.Currency),
		Locale:         NormalizeLocale(payload.Locale),
		ProcessorName:  payload.Processor,
		CorrelationKey: correlationKey,
		ContributionID: payload.ContributionID,
		ContactID:      payload.ContactID,
		Component:      component,
		EventID:        payload.EventID,
		ParticipantID:  payload.ParticipantID,
		MembershipID:   payload.MembershipID,
		ReturnURL:      payload.ReturnURL,
		CancelURL:      payload.CancelURL,
	}

	redirectURL, err := h.Service.InitiateCheckout(r.Context(), req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Type == errors.ErrorTypeValidation {
			h.HandleServiceError(w, appErr)
			return
		}
		// Gateway and configuration failures are already logged with their
		// codes; the caller only ever sees a generic failure, never a
		// redirect.
		h.WriteError(w, http.StatusBadGateway, "unable to initiate checkout")
		return
	}

	h.Logger.Info("InitiateCheckout: redirect URL obtained",
		"contribution_id", req.ContributionID,
		"correlation_key", req.CorrelationKey)

	h.WriteJSON(w, http.StatusOK, CheckoutResponse{
		RedirectURL:    redirectURL,
		CorrelationKey: correlationKey,
	})
}
