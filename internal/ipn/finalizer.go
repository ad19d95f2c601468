package ipn

import (
	"context"
	"encoding/json"
	"log/slog"

	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	"github.com/frahmantamala/donation-gateway/internal/core/events"
)

// Finalization results reported back to the notification handler.
const (
	ResultCompleted      = "completed"
	ResultAlreadyHandled = "already_handled"
	ResultCancelled      = "cancelled"
)

// ContributionService settles contributions. Both operations are idempotent:
// repeating a call on an already-settled record changes nothing.
type ContributionService interface {
	Complete(ctx context.Context, id int64, externalRef string, gatewayResponse json.RawMessage) (*contributionmodel.Contribution, error)
	Cancel(ctx context.Context, id int64, reason string) (*contributionmodel.Contribution, error)
}

type Finalizer struct {
	contributions ContributionService
	eventBus      *events.EventBus
	logger        *slog.Logger
}

func NewFinalizer(contributions ContributionService, eventBus *events.EventBus, logger *slog.Logger) *Finalizer {
	return &Finalizer{
		contributions: contributions,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// Finalize applies a validated outcome to the contribution: completes it on
// acceptance, cancels it on rejection, and acknowledges replays without
// touching state.
func (f *Finalizer) Finalize(ctx context.Context, n *Notification, outcome *Outcome, contrib *contributionmodel.Contribution) (string, error) {
	if contrib == nil {
		// Nothing to settle: the notification never matched a record.
		return ResultCancelled, nil
	}

	if outcome.Accepted {
		if outcome.AlreadyHandled || contrib.IsCompleted() {
			f.logger.Info("ipn: notification replay acknowledged",
				"contribution_id", contrib.ID,
				"transaction_id", n.TransactionID)
			return ResultAlreadyHandled, nil
		}
		if contrib.Status == contributionmodel.StatusCancelled {
			f.logger.Warn("ipn: accepted notification for a cancelled contribution",
				"contribution_id", contrib.ID,
				"transaction_id", n.TransactionID)
			return ResultAlreadyHandled, nil
		}

		updated, err := f.contributions.Complete(ctx, contrib.ID, n.TransactionID, outcome.RawDetails)
		if err != nil {
			return "", err
		}

		if err := f.eventBus.Publish(ctx, events.NewContributionCompletedEvent(
			updated.ID, updated.CorrelationKey, n.TransactionID,
			updated.AmountMinor, updated.Currency)); err != nil {
			f.logger.Warn("ipn: failed to publish completion event",
				"contribution_id", updated.ID, "error", err)
		}

		f.logger.Info("ipn: contribution completed",
			"contribution_id", updated.ID,
			"transaction_id", n.TransactionID)
		return ResultCompleted, nil
	}

	if contrib.Status == contributionmodel.StatusCancelled || contrib.IsCompleted() {
		return ResultAlreadyHandled, nil
	}

	updated, err := f.contributions.Cancel(ctx, contrib.ID, outcome.Reason)
	if err != nil {
		return "", err
	}

	if err := f.eventBus.Publish(ctx, events.NewContributionCancelledEvent(
		updated.ID, updated.CorrelationKey, outcome.Reason)); err != nil {
		f.logger.Warn("ipn: failed to publish cancellation event",
			"contribution_id", updated.ID, "error", err)
	}

	f.logger.Info("ipn: contribution cancelled",
		"contribution_id", updated.ID,
		"reason", outcome.Reason,
		"decline_code", outcome.DeclineCode)
	return ResultCancelled, nil
}
