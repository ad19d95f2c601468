package contribution

import (
	"encoding/json"
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// Contribution is the financial record a checkout pays for. Amounts are kept
// in minor units (agorot/cents) so gateway totals never go through floats.
type Contribution struct {
	ID              int64           `gorm:"primaryKey"`
	ContactID       int64           `gorm:"column:contact_id;not null"`
	EventID         *int64          `gorm:"column:event_id"`
	ParticipantID   *int64          `gorm:"column:participant_id"`
	MembershipID    *int64          `gorm:"column:membership_id"`
	AmountMinor     int64           `gorm:"column:amount_minor;not null"`
	Currency        string          `gorm:"column:currency;not null"`
	Status          string          `gorm:"column:status;default:pending"`
	CorrelationKey  string          `gorm:"column:correlation_key;not null;uniqueIndex"`
	ExternalRef     *string         `gorm:"column:external_ref"`
	GatewayResponse json.RawMessage `gorm:"column:gateway_response;type:jsonb"`
	CancelReason    *string         `gorm:"column:cancel_reason"`
	CompletedAt     *time.Time      `gorm:"column:completed_at"`
	CreatedAt       time.Time       `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;default:now()"`
}

func (c *Contribution) IsCompleted() bool {
	return c.Status == StatusCompleted
}
