package postgres

import (
	"context"
	"encoding/json"
	"time"

	contributionpkg "github.com/frahmantamala/donation-gateway/internal/contribution"
	"github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	"gorm.io/gorm"
)

type ContributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) contributionpkg.RepositoryAPI {
	return &ContributionRepository{
		db: db,
	}
}

func (r *ContributionRepository) Create(ctx context.Context, c *contribution.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) GetByID(ctx context.Context, id int64) (*contribution.Contribution, error) {
	var c contribution.Contribution
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContributionRepository) GetByCorrelationKey(ctx context.Context, key string) (*contribution.Contribution, error) {
	var c contribution.Contribution
	err := r.db.WithContext(ctx).Where("correlation_key = ?", key).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkCompleted settles the row inside one transaction: the status flips only
// while the row is still pending, so concurrent replays leave the first
// settlement intact and a cancelled row stays cancelled.
func (r *ContributionRepository) MarkCompleted(ctx context.Context, id int64, externalRef string, gatewayResponse json.RawMessage) (*contribution.Contribution, error) {
	var c contribution.Contribution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if c.Status != contribution.StatusPending {
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       contribution.StatusCompleted,
			"external_ref": externalRef,
			"completed_at": now,
			"updated_at":   now,
		}
		if gatewayResponse != nil {
			updates["gateway_response"] = gatewayResponse
		}

		if err := tx.Model(&contribution.Contribution{}).
			Where("id = ? AND status = ?", id, contribution.StatusPending).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkCancelled records a cancellation with its reason in one transaction.
// Only pending rows are touched: a completed row is terminal and keeps its
// settlement, an already-cancelled row keeps its original reason.
func (r *ContributionRepository) MarkCancelled(ctx context.Context, id int64, reason string) (*contribution.Contribution, error) {
	var c contribution.Contribution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if c.Status != contribution.StatusPending {
			return nil
		}

		updates := map[string]interface{}{
			"status":        contribution.StatusCancelled,
			"cancel_reason": reason,
			"updated_at":    time.Now(),
		}

		if err := tx.Model(&contribution.Contribution{}).
			Where("id = ? AND status = ?", id, contribution.StatusPending).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
