package ipn

import (
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/donation-gateway/internal"
)

// Notification carries the fields of a server-to-server gateway callback:
// the correlation parameters we embedded in the notify URL at checkout time,
// plus the transaction fields the gateway POSTs back.
type Notification struct {
	// query parameters set by us at checkout time
	ProcessorName  string
	Component      string
	CorrelationKey string
	ContributionID int64
	ContactID      int64
	EventID        *int64
	ParticipantID  *int64
	MembershipID   *int64
	ReturnURL      string

	// form fields posted by the gateway
	TransactionID   string
	StatusCode      string
	ConfirmationKey string
	UserKey         string
}

// ParseNotification extracts a Notification from an incoming callback
// request. Correlation parameters arrive on the query string, transaction
// fields on the POST form.
func ParseNotification(r *http.Request) (*Notification, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.NewValidationError("malformed notification body", errors.ErrCodeValidationFailed)
	}

	q := r.URL.Query()

	contributionID, err := strconv.ParseInt(q.Get("contributionID"), 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("missing or invalid contributionID", errors.ErrCodeMissingOrMismatchedParameters)
	}
	contactID, err := strconv.ParseInt(q.Get("contactID"), 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("missing or invalid contactID", errors.ErrCodeMissingOrMismatchedParameters)
	}

	n := &Notification{
		ProcessorName:  q.Get("processor_name"),
		Component:      q.Get("md"),
		CorrelationKey: q.Get("qfKey"),
		ContributionID: contributionID,
		ContactID:      contactID,
		EventID:        optionalInt64(q.Get("eventID")),
		ParticipantID:  optionalInt64(q.Get("participantID")),
		MembershipID:   optionalInt64(q.Get("membershipID")),

		TransactionID:   r.PostFormValue("PelecardTransactionId"),
		StatusCode:      r.PostFormValue("PelecardStatusCode"),
		ConfirmationKey: r.PostFormValue("ConfirmationKey"),
		UserKey:         r.PostFormValue("UserKey"),
	}

	if encoded := q.Get("returnURL"); encoded != "" {
		decoded, err := errors.DecodeReturnURL(encoded)
		if err != nil {
			return nil, errors.NewValidationError("invalid returnURL encoding", errors.ErrCodeValidationFailed)
		}
		n.ReturnURL = decoded
	}

	if n.ProcessorName == "" {
		return nil, errors.NewValidationError("missing processor_name", errors.ErrCodeMissingOrMismatchedParameters)
	}
	if n.TransactionID == "" {
		return nil, errors.NewValidationError("missing PelecardTransactionId", errors.ErrCodeMissingOrMismatchedParameters)
	}
	if n.StatusCode == "" {
		return nil, errors.NewValidationError("missing PelecardStatusCode", errors.ErrCodeMissingOrMismatchedParameters)
	}
	if n.ConfirmationKey == "" {
		return nil, errors.NewValidationError("missing ConfirmationKey", errors.ErrCodeMissingOrMismatchedParameters)
	}
	if n.UserKey == "" {
		return nil, errors.NewValidationError("missing UserKey", errors.ErrCodeMissingOrMismatchedParameters)
	}

	return n, nil
}

func optionalInt64(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
