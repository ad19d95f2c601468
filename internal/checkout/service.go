package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	errors "github.com/frahmantamala/donation-gateway/internal"
	pelecardtypes "github.com/frahmantamala/donation-gateway/internal/core/datamodel/pelecard"
	"github.com/frahmantamala/donation-gateway/internal/processor"
)

// GatewayAPI is the slice of the gateway client the initiator needs.
type GatewayAPI interface {
	Init(ctx context.Context, req *pelecardtypes.InitRequest) (*pelecardtypes.Response, error)
}

// Service builds the init parameter set for a checkout and obtains the
// hosted-page redirect URL from the gateway.
type Service struct {
	gateway    GatewayAPI
	processors *processor.Registry
	baseURL    string
	logger     *slog.Logger
}

func NewService(gateway GatewayAPI, processors *processor.Registry, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		gateway:    gateway,
		processors: processors,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// InitiateCheckout returns the gateway URL to redirect the payer to, or an
// error the caller must translate into a generic failure page. It never
// returns both.
func (s *Service) InitiateCheckout(ctx context.Context, req *CheckoutRequest) (string, error) {
	if err := req.Validate(); err != nil {
		s.logger.Error("checkout request validation failed", "error", err)
		return "", err
	}

	// Credentials are checked before any gateway traffic.
	proc, err := s.processors.Get(req.ProcessorName)
	if err != nil {
		s.logger.Error("checkout aborted: processor not configured",
			"processor", req.ProcessorName,
			"error", err)
		return "", err
	}

	initReq := s.buildInitRequest(req, proc)

	resp, err := s.gateway.Init(ctx, initReq)
	if err != nil {
		s.logger.Error("gateway init failed",
			"processor", req.ProcessorName,
			"correlation_key", req.CorrelationKey,
			"contribution_id", req.ContributionID,
			"error", err)
		return "", err
	}

	if resp.URL == "" {
		s.logger.Error("gateway init returned no redirect URL",
			"correlation_key", req.CorrelationKey,
			"contribution_id", req.ContributionID)
		return "", errors.NewGatewayUnreachableError("gateway returned no redirect URL", nil)
	}

	s.logger.Info("checkout initiated",
		"processor", req.ProcessorName,
		"correlation_key", req.CorrelationKey,
		"contribution_id", req.ContributionID,
		"amount_minor", req.AmountMinor,
		"currency", req.Currency,
		"free_entry", req.FreeEntry())

	return resp.URL, nil
}

func (s *Service) buildInitRequest(req *CheckoutRequest, proc *processor.Processor) *pelecardtypes.InitRequest {
	initReq := pelecardtypes.NewInitRequest(proc.Credentials)

	initReq.UserKey = req.CorrelationKey
	notifyURL := s.notifyURL(req)
	initReq.GoodURL = notifyURL
	initReq.ErrorURL = notifyURL
	initReq.CancelURL = req.CancelURL

	if req.FreeEntry() {
		// Payer enters the amount on the gateway page.
		initReq.Total = 0
		initReq.FreeTotal = true
		initReq.CaptionSet = map[string]string{"cs_free_total": freeEntryCaption(req.Locale)}
	} else {
		initReq.Total = req.AmountMinor
	}

	initReq.Currency = req.Currency.Code()
	initReq.MaxPayments = proc.MaxPayments
	initReq.Language = string(req.Locale)

	if branding := brandingFor(proc.Nickname, req.Locale); branding != nil {
		initReq.TopText = branding.TopText
		initReq.BottomText = branding.BottomText
		initReq.LogoURL = branding.LogoURL
	}

	return initReq
}

// notifyURL builds the IPN callback address the gateway posts back to, with
// the checkout context round-tripped as query parameters.
func (s *Service) notifyURL(req *CheckoutRequest) string {
	values := url.Values{}
	values.Set("processor_name", req.ProcessorName)
	values.Set("md", req.Component)
	values.Set("qfKey", req.CorrelationKey)
	values.Set("contributionID", strconv.FormatInt(req.ContributionID, 10))
	values.Set("contactID", strconv.FormatInt(req.ContactID, 10))

	if req.Component == ComponentEvent {
		if req.EventID != nil {
			values.Set("eventID", strconv.FormatInt(*req.EventID, 10))
		}
		if req.ParticipantID != nil {
			values.Set("participantID", strconv.FormatInt(*req.ParticipantID, 10))
		}
	} else if req.MembershipID != nil {
		values.Set("membershipID", strconv.FormatInt(*req.MembershipID, 10))
	}

	values.Set("returnURL", errors.EncodeReturnURL(req.ReturnURL))

	return fmt.Sprintf("%s/api/v1/ipn?%s", s.baseURL, values.Encode())
}
