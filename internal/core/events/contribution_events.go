package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeContributionCompleted = "contribution.completed"
	EventTypeContributionCancelled = "contribution.cancelled"
)

type ContributionCompletedEvent struct {
	BaseEvent
	ContributionID int64  `json:"contribution_id"`
	CorrelationKey string `json:"correlation_key"`
	ExternalRef    string `json:"external_ref"`
	AmountMinor    int64  `json:"amount_minor"`
	Currency       string `json:"currency"`
}

func NewContributionCompletedEvent(contributionID int64, correlationKey, externalRef string, amountMinor int64, currency string) *ContributionCompletedEvent {
	return &ContributionCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeContributionCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"contribution_id": contributionID,
				"correlation_key": correlationKey,
				"external_ref":    externalRef,
				"amount_minor":    amountMinor,
				"currency":        currency,
			},
		},
		ContributionID: contributionID,
		CorrelationKey: correlationKey,
		ExternalRef:    externalRef,
		AmountMinor:    amountMinor,
		Currency:       currency,
	}
}

type ContributionCancelledEvent struct {
	BaseEvent
	ContributionID int64  `json:"contribution_id"`
	CorrelationKey string `json:"correlation_key"`
	Reason         string `json:"reason"`
}

func NewContributionCancelledEvent(contributionID int64, correlationKey, reason string) *ContributionCancelledEvent {
	return &ContributionCancelledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeContributionCancelled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"contribution_id": contributionID,
				"correlation_key": correlationKey,
				"reason":          reason,
			},
		},
		ContributionID: contributionID,
		CorrelationKey: correlationKey,
		Reason:         reason,
	}
}
