// Package pelecard defines the wire types for the hosted payment gateway.
// Each endpoint gets its own request struct so missing or renamed fields fail
// at compile time instead of vanishing into an untyped parameter map.
package pelecard

import "encoding/json"

// Credentials is the merchant triple sent with every authenticated call.
type Credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
	Terminal string `json:"terminal"`
}

// InitRequest starts a hosted checkout session.
type InitRequest struct {
	Credentials

	ActionType                 string          `json:"ActionType"`
	CardHolderName             string          `json:"CardHolderName"`
	CustomerIdField            string          `json:"CustomerIdField"`
	Cvv2Field                  string          `json:"Cvv2Field"`
	EmailField                 string          `json:"EmailField"`
	TelField                   string          `json:"TelField"`
	FeedbackDataTransferMethod string          `json:"FeedbackDataTransferMethod"`
	FirstPayment               string          `json:"FirstPayment"`
	ShopNo                     int             `json:"ShopNo"`
	SetFocus                   string          `json:"SetFocus"`
	HiddenPelecardLogo         bool            `json:"HiddenPelecardLogo"`
	SupportedCards             map[string]bool `json:"SupportedCards"`

	UserKey   string `json:"UserKey"`
	GoodURL   string `json:"GoodUrl"`
	ErrorURL  string `json:"ErrorUrl"`
	CancelURL string `json:"CancelUrl"`

	Total       int64             `json:"Total"`
	FreeTotal   bool              `json:"FreeTotal,omitempty"`
	CaptionSet  map[string]string `json:"CaptionSet,omitempty"`
	Currency    int               `json:"Currency"`
	MinPayments int               `json:"MinPayments"`
	MaxPayments int               `json:"MaxPayments"`

	TopText    string `json:"TopText,omitempty"`
	BottomText string `json:"BottomText,omitempty"`
	Language   string `json:"Language,omitempty"`
	LogoURL    string `json:"LogoUrl,omitempty"`
}

// NewInitRequest presets the display fields the gateway expects on every init
// call: card-entry visibility, required CVV, focus, card brand set.
func NewInitRequest(creds Credentials) *InitRequest {
	return &InitRequest{
		Credentials:                creds,
		ActionType:                 "J4",
		CardHolderName:             "hide",
		CustomerIdField:            "hide",
		Cvv2Field:                  "must",
		EmailField:                 "hide",
		TelField:                   "hide",
		FeedbackDataTransferMethod: "POST",
		FirstPayment:               "auto",
		ShopNo:                     1000,
		SetFocus:                   "CC",
		HiddenPelecardLogo:         true,
		SupportedCards: map[string]bool{
			"Amex":   true,
			"Diners": false,
			"Isra":   true,
			"Master": true,
			"Visa":   true,
		},
		MinPayments: 1,
		MaxPayments: 1,
	}
}

// GetTransactionRequest looks up a completed transaction by its gateway id.
type GetTransactionRequest struct {
	Credentials

	TransactionID string `json:"TransactionId"`
}

// ValidateByUniqueKeyRequest confirms amount and correlation key against the
// gateway's own record of the transaction.
type ValidateByUniqueKeyRequest struct {
	ConfirmationKey string `json:"ConfirmationKey"`
	UniqueKey       string `json:"UniqueKey"`
	TotalX100       int64  `json:"TotalX100"`
}

// Error is the gateway's structured failure envelope. ErrCode 0 means success.
type Error struct {
	ErrCode int    `json:"ErrCode"`
	ErrMsg  string `json:"ErrMsg"`
}

// Response is the common shape of all gateway replies. ResultData is a
// JSON-encoded string nested inside the GetTransaction reply.
type Response struct {
	Error      *Error `json:"Error,omitempty"`
	Identified *Error `json:"Identified,omitempty"`
	URL        string `json:"URL,omitempty"`
	ResultData string `json:"ResultData,omitempty"`
}

// OK reports whether the gateway signalled success: the Error field is absent
// or carries code zero.
func (r *Response) OK() bool {
	return r.Error == nil || r.Error.ErrCode == 0
}

// TransactionDetails is the decoded ResultData payload. The fields are kept
// for audit and logging only; they are never re-validated locally.
type TransactionDetails struct {
	ShvaResult               string `json:"ShvaResult"`
	VoucherID                string `json:"VoucherId"`
	TransactionPelecardID    string `json:"TransactionPelecardId"`
	ShvaFileNumber           string `json:"ShvaFileNumber"`
	StationNumber            string `json:"StationNumber"`
	Receipt                  string `json:"Reciept"`
	JParam                   string `json:"JParam"`
	CreditCardNumber         string `json:"CreditCardNumber"`
	CreditCardExpDate        string `json:"CreditCardExpDate"`
	CreditCardCompanyClearer string `json:"CreditCardCompanyClearer"`
	CreditCardCompanyIssuer  string `json:"CreditCardCompanyIssuer"`
	CreditType               string `json:"CreditType"`
	CreditCardAbroadCard     string `json:"CreditCardAbroadCard"`
	DebitType                string `json:"DebitType"`
	DebitCode                string `json:"DebitCode"`
	DebitTotal               string `json:"DebitTotal"`
	DebitCurrency            string `json:"DebitCurrency"`
	TotalPayments            string `json:"TotalPayments"`
	FirstPaymentTotal        string `json:"FirstPaymentTotal"`
	FixedPaymentTotal        string `json:"FixedPaymentTotal"`
	CreditCardBrand          string `json:"CreditCardBrand"`
	CardHebrewName           string `json:"CardHebrewName"`
	ShvaOutput               string `json:"ShvaOutput"`
	ApprovedBy               string `json:"ApprovedBy"`
	TransactionInitTime      string `json:"TransactionInitTime"`
	TransactionUpdateTime    string `json:"TransactionUpdateTime"`
}

// ParseResultData decodes the nested ResultData string. An empty string
// yields nil details without error.
func (r *Response) ParseResultData() (*TransactionDetails, error) {
	if r.ResultData == "" {
		return nil, nil
	}
	var details TransactionDetails
	if err := json.Unmarshal([]byte(r.ResultData), &details); err != nil {
		return nil, err
	}
	return &details, nil
}
