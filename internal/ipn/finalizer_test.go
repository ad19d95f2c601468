package ipn_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	"github.com/frahmantamala/donation-gateway/internal/core/events"
	"github.com/frahmantamala/donation-gateway/internal/ipn"
)

type mockContributionService struct {
	completeCalls int
	cancelCalls   int

	lastExternalRef     string
	lastGatewayResponse json.RawMessage
	lastCancelReason    string

	contribution *contributionmodel.Contribution
	completeErr  error
	cancelErr    error
}

func (m *mockContributionService) Complete(ctx context.Context, id int64, externalRef string, gatewayResponse json.RawMessage) (*contributionmodel.Contribution, error) {
	m.completeCalls++
	m.lastExternalRef = externalRef
	m.lastGatewayResponse = gatewayResponse
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	updated := *m.contribution
	updated.Status = contributionmodel.StatusCompleted
	updated.ExternalRef = &externalRef
	return &updated, nil
}

func (m *mockContributionService) Cancel(ctx context.Context, id int64, reason string) (*contributionmodel.Contribution, error) {
	m.cancelCalls++
	m.lastCancelReason = reason
	if m.cancelErr != nil {
		return nil, m.cancelErr
	}
	updated := *m.contribution
	updated.Status = contributionmodel.StatusCancelled
	updated.CancelReason = &reason
	return &updated, nil
}

// eventCollector subscribes to the bus and records what was published.
type eventCollector struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *eventCollector) record(ctx context.Context, e events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *eventCollector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var types []string
	for _, e := range c.events {
		types = append(types, e.EventType())
	}
	return types
}

var _ = Describe("Finalizer", func() {
	var (
		service   *mockContributionService
		finalizer *ipn.Finalizer
		collector *eventCollector
		contrib   *contributionmodel.Contribution
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		contrib = pendingContribution()
		service = &mockContributionService{contribution: contrib}

		collector = &eventCollector{}
		bus := events.NewEventBus(logger)
		bus.Subscribe(events.EventTypeContributionCompleted, collector.record)
		bus.Subscribe(events.EventTypeContributionCancelled, collector.record)

		finalizer = ipn.NewFinalizer(service, bus, logger)
	})

	Context("when the outcome is accepted", func() {
		It("should complete the contribution and publish a completion event", func() {
			// Given
			outcome := &ipn.Outcome{
				Accepted:   true,
				RawDetails: json.RawMessage(`{"VoucherId":"12-345-678"}`),
			}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultCompleted))
			Expect(service.completeCalls).To(Equal(1))
			Expect(service.cancelCalls).To(BeZero())
			Expect(service.lastExternalRef).To(Equal("tx-900"))
			Expect(service.lastGatewayResponse).To(MatchJSON(`{"VoucherId":"12-345-678"}`))

			Eventually(collector.types, time.Second).Should(
				ContainElement(events.EventTypeContributionCompleted))
		})
	})

	Context("when the outcome is an acknowledged replay", func() {
		It("should change nothing", func() {
			// Given
			outcome := &ipn.Outcome{Accepted: true, AlreadyHandled: true}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultAlreadyHandled))
			Expect(service.completeCalls).To(BeZero())
			Expect(service.cancelCalls).To(BeZero())
		})
	})

	Context("when a second accepted notification arrives for a completed contribution", func() {
		It("should acknowledge without settling twice", func() {
			// Given
			contrib.Status = contributionmodel.StatusCompleted
			outcome := &ipn.Outcome{Accepted: true}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultAlreadyHandled))
			Expect(service.completeCalls).To(BeZero())
		})
	})

	Context("when the outcome is a decline", func() {
		It("should cancel with the rejection reason and publish a cancellation event", func() {
			// Given
			outcome := &ipn.Outcome{
				Reason:      ipn.ReasonGatewayDeclined,
				DeclineCode: "033",
			}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultCancelled))
			Expect(service.cancelCalls).To(Equal(1))
			Expect(service.lastCancelReason).To(Equal(ipn.ReasonGatewayDeclined))
			Expect(service.completeCalls).To(BeZero())

			Eventually(collector.types, time.Second).Should(
				ContainElement(events.EventTypeContributionCancelled))
		})
	})

	Context("when the notification never matched a record", func() {
		It("should report cancelled without touching the service", func() {
			// Given
			outcome := &ipn.Outcome{Reason: ipn.ReasonMissingOrMismatchedParameters}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, nil)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultCancelled))
			Expect(service.completeCalls).To(BeZero())
			Expect(service.cancelCalls).To(BeZero())
		})
	})

	Context("when a rejection arrives for a completed contribution", func() {
		It("should keep the settlement and acknowledge", func() {
			// Given
			contrib.Status = contributionmodel.StatusCompleted
			outcome := &ipn.Outcome{
				Reason:      ipn.ReasonGatewayDeclined,
				DeclineCode: "004",
			}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultAlreadyHandled))
			Expect(service.cancelCalls).To(BeZero())
			Expect(service.completeCalls).To(BeZero())
		})
	})

	Context("when an accepted outcome arrives for a cancelled contribution", func() {
		It("should acknowledge without re-settling", func() {
			// Given
			contrib.Status = contributionmodel.StatusCancelled
			outcome := &ipn.Outcome{Accepted: true}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultAlreadyHandled))
			Expect(service.completeCalls).To(BeZero())
			Expect(service.cancelCalls).To(BeZero())
		})
	})

	Context("when the contribution is already cancelled", func() {
		It("should not cancel again", func() {
			// Given
			contrib.Status = contributionmodel.StatusCancelled
			outcome := &ipn.Outcome{Reason: ipn.ReasonGatewayDeclined}

			// When
			result, err := finalizer.Finalize(context.Background(), acceptedNotification(), outcome, contrib)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(ipn.ResultAlreadyHandled))
			Expect(service.cancelCalls).To(BeZero())
		})
	})
})
