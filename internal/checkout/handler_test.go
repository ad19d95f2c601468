package checkout_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/donation-gateway/internal"
	"github.com/frahmantamala/donation-gateway/internal/checkout"
	"github.com/frahmantamala/donation-gateway/internal/transport"
)

type mockCheckoutService struct {
	lastRequest *checkout.CheckoutRequest
	redirectURL string
	err         error
}

func (m *mockCheckoutService) InitiateCheckout(ctx context.Context, req *checkout.CheckoutRequest) (string, error) {
	m.lastRequest = req
	if m.err != nil {
		return "", m.err
	}
	return m.redirectURL, nil
}

var _ = Describe("CheckoutHandler", func() {
	var (
		handler *checkout.Handler
		service *mockCheckoutService
		rec     *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = &mockCheckoutService{redirectURL: "https://gateway.example/checkout/abc"}
		handler = checkout.NewHandler(transport.NewBaseHandler(logger), service, logger)
		rec = httptest.NewRecorder()
	})

	post := func(payload checkout.CheckoutPayload) {
		body, err := json.Marshal(payload)
		Expect(err).ToNot(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
		handler.InitiateCheckout(rec, req)
	}

	Context("with a valid request", func() {
		It("should return the redirect URL and pass minor units to the service", func() {
			// When
			post(checkout.CheckoutPayload{
				Amount:         "50.00",
				Currency:       "NIS",
				Locale:         "he",
				Processor:      "pelecard-main",
				ContributionID: 77,
				ContactID:      1001,
				ReturnURL:      "https://host.example/thanks",
				CancelURL:      "https://host.example/cancel",
			})

			// Then
			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp checkout.CheckoutResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.RedirectURL).To(Equal("https://gateway.example/checkout/abc"))
			Expect(resp.CorrelationKey).ToNot(BeEmpty())

			Expect(service.lastRequest.AmountMinor).To(Equal(int64(5000)))
			Expect(service.lastRequest.Locale).To(Equal(checkout.LocaleHE))
			Expect(service.lastRequest.Component).To(Equal(checkout.ComponentContribute))
		})

		It("should keep a caller-supplied correlation key", func() {
			// When
			post(checkout.CheckoutPayload{
				Amount:         "1.00",
				Currency:       "USD",
				Processor:      "pelecard-main",
				CorrelationKey: "qf-key-7",
				ContributionID: 1,
				ContactID:      2,
				ReturnURL:      "https://host.example/thanks",
				CancelURL:      "https://host.example/cancel",
			})

			// Then
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastRequest.CorrelationKey).To(Equal("qf-key-7"))
		})
	})

	Context("with an invalid amount", func() {
		It("should return 400 without calling the service", func() {
			// When
			post(checkout.CheckoutPayload{
				Amount:         "12.345",
				Processor:      "pelecard-main",
				ContributionID: 1,
				ContactID:      2,
			})

			// Then
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(service.lastRequest).To(BeNil())
		})
	})

	Context("when the gateway is unreachable", func() {
		It("should answer with a generic failure and no redirect", func() {
			// Given
			service.err = errors.NewGatewayUnreachableError("gateway call /init failed", nil)

			// When
			post(checkout.CheckoutPayload{
				Amount:         "50.00",
				Processor:      "pelecard-main",
				ContributionID: 77,
				ContactID:      1001,
				ReturnURL:      "https://host.example/thanks",
				CancelURL:      "https://host.example/cancel",
			})

			// Then
			Expect(rec.Code).To(Equal(http.StatusBadGateway))
			Expect(rec.Body.String()).ToNot(ContainSubstring("redirect_url"))
			Expect(rec.Body.String()).ToNot(ContainSubstring("gateway call"))
		})
	})
})
