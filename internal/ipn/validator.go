package ipn

import (
	"context"
	"encoding/json"
	"log/slog"

	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	pelecardtypes "github.com/frahmantamala/donation-gateway/internal/core/datamodel/pelecard"
	"github.com/frahmantamala/donation-gateway/internal/pelecard"
	"github.com/frahmantamala/donation-gateway/internal/processor"
)

// Rejection reasons recorded on the contribution when a notification fails
// validation.
const (
	ReasonMissingOrMismatchedParameters = "missing_or_mismatched_parameters"
	ReasonGatewayLookupFailed           = "gateway_lookup_failed"
	ReasonAmountOrKeyMismatch           = "amount_or_key_mismatch"
	ReasonGatewayDeclined               = "gateway_declined"
)

// GatewayAPI is the slice of the gateway client the validator needs.
type GatewayAPI interface {
	GetTransaction(ctx context.Context, req *pelecardtypes.GetTransactionRequest) (*pelecardtypes.Response, error)
	ValidateByUniqueKey(ctx context.Context, req *pelecardtypes.ValidateByUniqueKeyRequest) (*pelecardtypes.Response, error)
}

// ContributionStore loads the local record a notification claims to settle.
type ContributionStore interface {
	GetByID(ctx context.Context, id int64) (*contributionmodel.Contribution, error)
}

// Outcome is the validator's verdict on a single notification.
type Outcome struct {
	Accepted       bool
	AlreadyHandled bool
	Reason         string
	DeclineCode    string
	Details        *pelecardtypes.TransactionDetails
	RawDetails     json.RawMessage
}

type Validator struct {
	gateway    GatewayAPI
	store      ContributionStore
	processors *processor.Registry
	logger     *slog.Logger
}

func NewValidator(gateway GatewayAPI, store ContributionStore, processors *processor.Registry, logger *slog.Logger) *Validator {
	return &Validator{
		gateway:    gateway,
		store:      store,
		processors: processors,
		logger:     logger,
	}
}

// Validate runs the notification through the validation sequence: local
// correlation checks first, then the gateway lookup, then the amount and key
// confirmation. The gateway is never contacted when the local checks fail.
func (v *Validator) Validate(ctx context.Context, n *Notification) (*Outcome, *contributionmodel.Contribution, error) {
	contrib, err := v.store.GetByID(ctx, n.ContributionID)
	if err != nil {
		v.logger.Error("ipn: contribution lookup failed",
			"contribution_id", n.ContributionID, "error", err)
		return &Outcome{Reason: ReasonMissingOrMismatchedParameters}, nil, nil
	}

	if !v.matchesLocalRecord(n, contrib) {
		v.logger.Warn("ipn: notification does not match local record",
			"contribution_id", n.ContributionID,
			"correlation_key", n.CorrelationKey)
		return &Outcome{Reason: ReasonMissingOrMismatchedParameters}, contrib, nil
	}

	// A completed contribution is terminal: any further notification for it,
	// including a replayed or forged decline, is acknowledged as a no-op
	// without touching the gateway or the record.
	if contrib.IsCompleted() {
		return &Outcome{Accepted: true, AlreadyHandled: true}, contrib, nil
	}

	// A declined payment cancels the pending contribution no matter what the
	// confirmation calls would say.
	if n.StatusCode != pelecard.StatusAccepted {
		v.logger.Info("ipn: gateway reported decline",
			"contribution_id", contrib.ID,
			"status_code", n.StatusCode,
			"description", pelecard.Describe(n.StatusCode))
		return &Outcome{
			Reason:      ReasonGatewayDeclined,
			DeclineCode: n.StatusCode,
		}, contrib, nil
	}

	proc, err := v.processors.Get(n.ProcessorName)
	if err != nil {
		v.logger.Error("ipn: unknown processor on notification",
			"processor_name", n.ProcessorName, "error", err)
		return &Outcome{Reason: ReasonMissingOrMismatchedParameters}, contrib, nil
	}

	outcome := v.confirmWithGateway(ctx, n, contrib, proc)
	return outcome, contrib, nil
}

// matchesLocalRecord verifies the notification's correlation parameters
// against the stored contribution.
func (v *Validator) matchesLocalRecord(n *Notification, contrib *contributionmodel.Contribution) bool {
	if n.CorrelationKey == "" || n.CorrelationKey != contrib.CorrelationKey {
		return false
	}
	// The gateway echoes the correlation key back as UserKey; it must match
	// exactly, and an absent echo is a mismatch.
	if n.UserKey != contrib.CorrelationKey {
		return false
	}
	if n.ContactID != contrib.ContactID {
		return false
	}
	if n.Component == "event" {
		if n.EventID == nil || n.ParticipantID == nil {
			return false
		}
	}
	return true
}

func (v *Validator) confirmWithGateway(ctx context.Context, n *Notification, contrib *contributionmodel.Contribution, proc *processor.Processor) *Outcome {
	lookup, err := v.gateway.GetTransaction(ctx, &pelecardtypes.GetTransactionRequest{
		Credentials:   proc.Credentials,
		TransactionID: n.TransactionID,
	})
	if err != nil {
		v.logger.Error("ipn: transaction lookup with gateway failed",
			"contribution_id", contrib.ID,
			"transaction_id", n.TransactionID,
			"error", err)
		return &Outcome{Reason: ReasonGatewayLookupFailed}
	}

	outcome := &Outcome{}
	if lookup.ResultData != "" {
		outcome.RawDetails = json.RawMessage(lookup.ResultData)
		details, err := lookup.ParseResultData()
		if err != nil {
			v.logger.Warn("ipn: could not decode transaction details",
				"contribution_id", contrib.ID, "error", err)
		} else {
			outcome.Details = details
		}
	}

	confirm, err := v.gateway.ValidateByUniqueKey(ctx, &pelecardtypes.ValidateByUniqueKeyRequest{
		ConfirmationKey: n.ConfirmationKey,
		UniqueKey:       contrib.CorrelationKey,
		TotalX100:       contrib.AmountMinor,
	})
	if err != nil || !confirm.OK() {
		v.logger.Error("ipn: amount and key confirmation failed",
			"contribution_id", contrib.ID,
			"transaction_id", n.TransactionID,
			"error", err)
		outcome.Reason = ReasonAmountOrKeyMismatch
		return outcome
	}

	outcome.Accepted = true
	return outcome
}
