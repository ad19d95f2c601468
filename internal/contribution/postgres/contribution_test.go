package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	contributionpkg "github.com/frahmantamala/donation-gateway/internal/contribution"
	"github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
)

func TestContributionRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Contribution Repository Suite")
}

// ContributionSQLite is a test-specific version with text instead of jsonb
// for SQLite compatibility
type ContributionSQLite struct {
	ID              int64      `gorm:"primaryKey"`
	ContactID       int64      `gorm:"column:contact_id;not null"`
	EventID         *int64     `gorm:"column:event_id"`
	ParticipantID   *int64     `gorm:"column:participant_id"`
	MembershipID    *int64     `gorm:"column:membership_id"`
	AmountMinor     int64      `gorm:"column:amount_minor;not null"`
	Currency        string     `gorm:"column:currency;not null"`
	Status          string     `gorm:"column:status;default:pending"`
	CorrelationKey  string     `gorm:"column:correlation_key;not null;uniqueIndex"`
	ExternalRef     *string    `gorm:"column:external_ref"`
	GatewayResponse string     `gorm:"column:gateway_response;type:text"`
	CancelReason    *string    `gorm:"column:cancel_reason"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (ContributionSQLite) TableName() string {
	return "contributions"
}

var _ = ginkgo.Describe("ContributionRepository", func() {
	var (
		db   *gorm.DB
		repo contributionpkg.RepositoryAPI
		ctx  context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = db.AutoMigrate(&ContributionSQLite{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		repo = NewContributionRepository(db)
		ctx = context.Background()
	})

	newContribution := func(key string) *contribution.Contribution {
		return &contribution.Contribution{
			ContactID:      1001,
			AmountMinor:    5000,
			Currency:       "NIS",
			Status:         contribution.StatusPending,
			CorrelationKey: key,
		}
	}

	ginkgo.Describe("Create", func() {
		ginkgo.Context("when creating a contribution successfully", func() {
			ginkgo.It("should insert the row and set ID", func() {
				// Given
				c := newContribution("qf-key-1")

				// When
				err := repo.Create(ctx, c)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(c.ID).To(gomega.BeNumerically(">", 0))
			})
		})

		ginkgo.Context("when creating with a duplicate correlation key", func() {
			ginkgo.It("should return error", func() {
				// Given
				first := newContribution("qf-key-1")
				second := newContribution("qf-key-1")

				// When
				err1 := repo.Create(ctx, first)
				err2 := repo.Create(ctx, second)

				// Then
				gomega.Expect(err1).ToNot(gomega.HaveOccurred())
				gomega.Expect(err2).To(gomega.HaveOccurred())
			})
		})
	})

	ginkgo.Describe("GetByCorrelationKey", func() {
		ginkgo.BeforeEach(func() {
			gomega.Expect(repo.Create(ctx, newContribution("qf-key-1"))).To(gomega.Succeed())
		})

		ginkgo.Context("when the contribution exists", func() {
			ginkgo.It("should return the row", func() {
				// When
				result, err := repo.GetByCorrelationKey(ctx, "qf-key-1")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.ContactID).To(gomega.Equal(int64(1001)))
				gomega.Expect(result.AmountMinor).To(gomega.Equal(int64(5000)))
			})
		})

		ginkgo.Context("when the contribution does not exist", func() {
			ginkgo.It("should return error", func() {
				// When
				result, err := repo.GetByCorrelationKey(ctx, "missing")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(result).To(gomega.BeNil())
			})
		})
	})

	ginkgo.Describe("MarkCompleted", func() {
		var c *contribution.Contribution

		ginkgo.BeforeEach(func() {
			c = newContribution("qf-key-1")
			gomega.Expect(repo.Create(ctx, c)).To(gomega.Succeed())
		})

		ginkgo.Context("when the contribution is pending", func() {
			ginkgo.It("should record the settlement atomically", func() {
				// Given
				gatewayResponse := json.RawMessage(`{"VoucherId":"12-345-678"}`)

				// When
				updated, err := repo.MarkCompleted(ctx, c.ID, "tx-900", gatewayResponse)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Status).To(gomega.Equal(contribution.StatusCompleted))
				gomega.Expect(*updated.ExternalRef).To(gomega.Equal("tx-900"))
				gomega.Expect(updated.CompletedAt).ToNot(gomega.BeNil())
			})
		})

		ginkgo.Context("when the contribution is already completed", func() {
			ginkgo.It("should keep the first settlement", func() {
				// Given
				_, err := repo.MarkCompleted(ctx, c.ID, "tx-900", nil)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When: a replay tries to settle with a different reference
				updated, err := repo.MarkCompleted(ctx, c.ID, "tx-999", nil)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Status).To(gomega.Equal(contribution.StatusCompleted))
				gomega.Expect(*updated.ExternalRef).To(gomega.Equal("tx-900"))
			})
		})
	})

	ginkgo.Describe("MarkCancelled", func() {
		var c *contribution.Contribution

		ginkgo.BeforeEach(func() {
			c = newContribution("qf-key-1")
			gomega.Expect(repo.Create(ctx, c)).To(gomega.Succeed())
		})

		ginkgo.Context("when the contribution is pending", func() {
			ginkgo.It("should record the cancellation with its reason", func() {
				// When
				updated, err := repo.MarkCancelled(ctx, c.ID, "gateway_declined")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Status).To(gomega.Equal(contribution.StatusCancelled))
				gomega.Expect(*updated.CancelReason).To(gomega.Equal("gateway_declined"))
			})
		})

		ginkgo.Context("when the contribution is already cancelled", func() {
			ginkgo.It("should keep the original reason", func() {
				// Given
				_, err := repo.MarkCancelled(ctx, c.ID, "gateway_declined")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				updated, err := repo.MarkCancelled(ctx, c.ID, "amount_or_key_mismatch")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(*updated.CancelReason).To(gomega.Equal("gateway_declined"))
			})
		})

		ginkgo.Context("when a decline arrives after completion", func() {
			ginkgo.It("should keep the completed settlement", func() {
				// Given
				_, err := repo.MarkCompleted(ctx, c.ID, "tx-900", nil)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				updated, err := repo.MarkCancelled(ctx, c.ID, "gateway_declined")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Status).To(gomega.Equal(contribution.StatusCompleted))
				gomega.Expect(*updated.ExternalRef).To(gomega.Equal("tx-900"))
				gomega.Expect(updated.CancelReason).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when a completion arrives after cancellation", func() {
			ginkgo.It("should keep the row cancelled", func() {
				// Given
				_, err := repo.MarkCancelled(ctx, c.ID, "gateway_declined")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				updated, err := repo.MarkCompleted(ctx, c.ID, "tx-900", nil)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Status).To(gomega.Equal(contribution.StatusCancelled))
				gomega.Expect(updated.ExternalRef).To(gomega.BeNil())
			})
		})
	})
})
