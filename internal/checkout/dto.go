package checkout

import (
	"fmt"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/donation-gateway/internal"
	"github.com/frahmantamala/donation-gateway/internal/core/common/validation"
)

// Currency codes the gateway understands. Anything unrecognized falls back
// to NIS, matching the gateway's default.
type Currency string

const (
	CurrencyNIS Currency = "NIS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Code maps a currency to the gateway's numeric code.
func (c Currency) Code() int {
	switch c {
	case CurrencyEUR:
		return 978
	case CurrencyUSD:
		return 2
	default:
		return 1
	}
}

type Locale string

const (
	LocaleEN Locale = "EN"
	LocaleHE Locale = "HE"
	LocaleRU Locale = "RU"
)

// NormalizeLocale uppercases and defaults to English.
func NormalizeLocale(s string) Locale {
	switch Locale(strings.ToUpper(s)) {
	case LocaleHE:
		return LocaleHE
	case LocaleRU:
		return LocaleRU
	default:
		return LocaleEN
	}
}

const (
	ComponentContribute = "contribute"
	ComponentEvent      = "event"
)

// FreeEntrySentinelMinor is one whole currency unit in minor units. The
// platform uses a nominal amount of 1 to mean "payer chooses the amount at
// the gateway" (the Maaser case); it is never charged literally.
const FreeEntrySentinelMinor int64 = 100

// CheckoutRequest carries everything needed to open a hosted checkout
// session. Amounts are minor units; see ParseAmount.
type CheckoutRequest struct {
	AmountMinor    int64
	Currency       Currency
	Locale         Locale
	ProcessorName  string
	CorrelationKey string
	ContributionID int64
	ContactID      int64
	Component      string
	EventID        *int64
	ParticipantID  *int64
	MembershipID   *int64
	ReturnURL      string
	CancelURL      string
}

func (r *CheckoutRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("amount", r.AmountMinor).Custom(func(v interface{}) *errors.AppError {
		if amount, ok := v.(int64); ok && amount < 0 {
			return errors.NewValidationFieldError("amount", "amount must not be negative", errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	validator.Field("processor", r.ProcessorName).Required()
	validator.Field("correlation_key", r.CorrelationKey).Required()
	validator.Field("contribution_id", r.ContributionID).Required()
	validator.Field("contact_id", r.ContactID).Required()
	validator.Field("component", r.Component).Required().
		OneOf([]string{ComponentContribute, ComponentEvent}, errors.ErrCodeValidationFailed)
	validator.Field("return_url", r.ReturnURL).Required()
	validator.Field("cancel_url", r.CancelURL).Required()

	if r.Component == ComponentEvent {
		validator.Field("event_id", r.EventID).Custom(requirePresent("event_id"))
		validator.Field("participant_id", r.ParticipantID).Custom(requirePresent("participant_id"))
	}

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func requirePresent(field string) func(interface{}) *errors.AppError {
	return func(v interface{}) *errors.AppError {
		if id, ok := v.(*int64); !ok || id == nil {
			return errors.NewValidationFieldError(field, fmt.Sprintf("%s is required for event checkouts", field), errors.ErrCodeValidationFailed)
		}
		return nil
	}
}

// FreeEntry reports the variable-amount sentinel: a nominal amount of one
// whole unit switches checkout to free-entry mode.
func (r *CheckoutRequest) FreeEntry() bool {
	return r.AmountMinor == FreeEntrySentinelMinor
}

// ParseAmount converts a decimal amount string ("99.99") to minor units
// (9999) using integer math only, so totals sent to the gateway never pick up
// floating-point drift.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount %q must not be negative", s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return units*100 + cents, nil
}
