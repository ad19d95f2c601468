package ipn

import (
	"context"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/donation-gateway/internal"
	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	"github.com/frahmantamala/donation-gateway/internal/pelecard"
	"github.com/frahmantamala/donation-gateway/internal/transport"
)

// ValidatorAPI runs a parsed notification through the validation sequence.
type ValidatorAPI interface {
	Validate(ctx context.Context, n *Notification) (*Outcome, *contributionmodel.Contribution, error)
}

// FinalizerAPI settles the contribution a validated notification refers to.
type FinalizerAPI interface {
	Finalize(ctx context.Context, n *Notification, outcome *Outcome, contrib *contributionmodel.Contribution) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Validator ValidatorAPI
	Finalizer FinalizerAPI
	Logger    *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, validator ValidatorAPI, finalizer FinalizerAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Validator:   validator,
		Finalizer:   finalizer,
		Logger:      logger,
	}
}

type notificationResponse struct {
	Result string `json:"result"`
	Reason string `json:"reason,omitempty"`
}

// HandleNotification handles POST /api/v1/ipn, the gateway's
// server-to-server payment notification. The gateway also sends the payer's
// browser through this URL, so accepted notifications redirect to the return
// URL embedded at checkout time.
func (h *Handler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	n, err := ParseNotification(r)
	if err != nil {
		h.Logger.Error("ipn: unparseable notification", "error", err)
		h.HandleError(w, err)
		return
	}

	outcome, contrib, err := h.Validator.Validate(r.Context(), n)
	if err != nil {
		h.Logger.Error("ipn: validation error",
			"contribution_id", n.ContributionID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "notification processing failed")
		return
	}

	result, err := h.Finalizer.Finalize(r.Context(), n, outcome, contrib)
	if err != nil {
		h.Logger.Error("ipn: finalization failed",
			"contribution_id", n.ContributionID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "notification processing failed")
		return
	}

	if outcome.Accepted && n.ReturnURL != "" {
		http.Redirect(w, r, n.ReturnURL, http.StatusFound)
		return
	}

	// The error URL points back here too, so a declined payment surfaces the
	// decline to the payer rather than a generic rejection.
	if outcome.Reason == ReasonGatewayDeclined {
		h.HandleError(w, errors.NewGatewayDeclinedError(
			outcome.DeclineCode, pelecard.Describe(outcome.DeclineCode)))
		return
	}

	h.WriteJSON(w, http.StatusOK, notificationResponse{
		Result: result,
		Reason: outcome.Reason,
	})
}
