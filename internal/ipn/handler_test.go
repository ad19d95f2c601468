package ipn_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/donation-gateway/internal"
	contributionmodel "github.com/frahmantamala/donation-gateway/internal/core/datamodel/contribution"
	"github.com/frahmantamala/donation-gateway/internal/ipn"
	"github.com/frahmantamala/donation-gateway/internal/transport"
)

type mockValidator struct {
	outcome *ipn.Outcome
	contrib *contributionmodel.Contribution
	err     error
}

func (m *mockValidator) Validate(ctx context.Context, n *ipn.Notification) (*ipn.Outcome, *contributionmodel.Contribution, error) {
	return m.outcome, m.contrib, m.err
}

type mockFinalizer struct {
	result           string
	err              error
	lastNotification *ipn.Notification
	lastOutcome      *ipn.Outcome
}

func (m *mockFinalizer) Finalize(ctx context.Context, n *ipn.Notification, outcome *ipn.Outcome, contrib *contributionmodel.Contribution) (string, error) {
	m.lastNotification = n
	m.lastOutcome = outcome
	return m.result, m.err
}

// notificationRequest builds the request shape the gateway produces: checkout
// context on the query string, transaction fields in the POST form.
func notificationRequest(query url.Values, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/ipn?"+query.Encode(),
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validQuery() url.Values {
	q := url.Values{}
	q.Set("processor_name", "pelecard-main")
	q.Set("md", "contribute")
	q.Set("qfKey", "qf-key-1")
	q.Set("contributionID", "77")
	q.Set("contactID", "1001")
	q.Set("returnURL", apperrors.EncodeReturnURL("https://host.example/thanks"))
	return q
}

func validForm() url.Values {
	f := url.Values{}
	f.Set("PelecardTransactionId", "tx-900")
	f.Set("PelecardStatusCode", "000")
	f.Set("ConfirmationKey", "confirm-1")
	f.Set("UserKey", "qf-key-1")
	return f
}

var _ = Describe("ParseNotification", func() {
	Context("with a complete gateway callback", func() {
		It("should extract query context and form fields", func() {
			// When
			n, err := ipn.ParseNotification(notificationRequest(validQuery(), validForm()))

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(n.ProcessorName).To(Equal("pelecard-main"))
			Expect(n.Component).To(Equal("contribute"))
			Expect(n.CorrelationKey).To(Equal("qf-key-1"))
			Expect(n.ContributionID).To(Equal(int64(77)))
			Expect(n.ContactID).To(Equal(int64(1001)))
			Expect(n.TransactionID).To(Equal("tx-900"))
			Expect(n.StatusCode).To(Equal("000"))
			Expect(n.ConfirmationKey).To(Equal("confirm-1"))
			Expect(n.UserKey).To(Equal("qf-key-1"))
			Expect(n.ReturnURL).To(Equal("https://host.example/thanks"))
		})
	})

	Context("with a missing contribution id", func() {
		It("should fail", func() {
			// Given
			q := validQuery()
			q.Del("contributionID")

			// When
			_, err := ipn.ParseNotification(notificationRequest(q, validForm()))

			// Then
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with a missing transaction id", func() {
		It("should fail", func() {
			// Given
			f := validForm()
			f.Del("PelecardTransactionId")

			// When
			_, err := ipn.ParseNotification(notificationRequest(validQuery(), f))

			// Then
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with missing gateway confirmation fields", func() {
		It("should fail for each required form field", func() {
			for _, field := range []string{"PelecardStatusCode", "ConfirmationKey", "UserKey"} {
				// Given
				f := validForm()
				f.Del(field)

				// When
				_, err := ipn.ParseNotification(notificationRequest(validQuery(), f))

				// Then
				Expect(err).To(HaveOccurred(), "expected a rejection without %s", field)
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeMissingOrMismatchedParameters))
			}
		})
	})
})

var _ = Describe("Handler", func() {
	var (
		validator *mockValidator
		finalizer *mockFinalizer
		handler   *ipn.Handler
		rec       *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		validator = &mockValidator{
			outcome: &ipn.Outcome{Accepted: true},
			contrib: pendingContribution(),
		}
		finalizer = &mockFinalizer{result: ipn.ResultCompleted}
		handler = ipn.NewHandler(transport.NewBaseHandler(logger), validator, finalizer, logger)
		rec = httptest.NewRecorder()
	})

	Context("when the notification is accepted", func() {
		It("should redirect the payer to the decoded return URL", func() {
			// When
			handler.HandleNotification(rec, notificationRequest(validQuery(), validForm()))

			// Then
			Expect(rec.Code).To(Equal(http.StatusFound))
			Expect(rec.Header().Get("Location")).To(Equal("https://host.example/thanks"))
			Expect(finalizer.lastNotification.TransactionID).To(Equal("tx-900"))
		})
	})

	Context("when the notification is rejected", func() {
		It("should answer with the finalization result", func() {
			// Given
			validator.outcome = &ipn.Outcome{Reason: ipn.ReasonAmountOrKeyMismatch}
			finalizer.result = ipn.ResultCancelled

			// When
			handler.HandleNotification(rec, notificationRequest(validQuery(), validForm()))

			// Then
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(ipn.ResultCancelled))
			Expect(rec.Body.String()).To(ContainSubstring(ipn.ReasonAmountOrKeyMismatch))
		})
	})

	Context("when the payment was declined", func() {
		It("should surface the decline code and description", func() {
			// Given
			validator.outcome = &ipn.Outcome{
				Reason:      ipn.ReasonGatewayDeclined,
				DeclineCode: "033",
			}
			finalizer.result = ipn.ResultCancelled

			// When
			handler.HandleNotification(rec, notificationRequest(validQuery(), validForm()))

			// Then
			Expect(rec.Code).To(Equal(http.StatusPaymentRequired))
			Expect(rec.Body.String()).To(ContainSubstring(string(apperrors.ErrCodeGatewayDeclined)))
			Expect(rec.Body.String()).To(ContainSubstring("033"))
		})
	})

	Context("when the notification cannot be parsed", func() {
		It("should answer 400", func() {
			// Given
			q := validQuery()
			q.Set("contributionID", "not-a-number")

			// When
			handler.HandleNotification(rec, notificationRequest(q, validForm()))

			// Then
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
