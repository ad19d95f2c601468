package pelecard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	errors "github.com/frahmantamala/donation-gateway/internal"
	pelecardtypes "github.com/frahmantamala/donation-gateway/internal/core/datamodel/pelecard"
)

const (
	endpointInit                = "/init"
	endpointGetTransaction      = "/GetTransaction"
	endpointValidateByUniqueKey = "/ValidateByUniqueKey"

	contentTypeJSON = "application/json; charset=UTF-8"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a stateless wrapper around the gateway's three HTTP endpoints.
// Every call builds its own request value and returns a fresh response;
// nothing is accumulated between calls.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Init starts a hosted checkout session and returns the redirect URL in the
// response.
func (c *Client) Init(ctx context.Context, req *pelecardtypes.InitRequest) (*pelecardtypes.Response, error) {
	return c.post(ctx, endpointInit, req)
}

// GetTransaction looks up a transaction the gateway claims to have completed.
func (c *Client) GetTransaction(ctx context.Context, req *pelecardtypes.GetTransactionRequest) (*pelecardtypes.Response, error) {
	return c.post(ctx, endpointGetTransaction, req)
}

// ValidateByUniqueKey confirms the notification's confirmation key, the
// original correlation key and the expected total against the gateway.
func (c *Client) ValidateByUniqueKey(ctx context.Context, req *pelecardtypes.ValidateByUniqueKeyRequest) (*pelecardtypes.Response, error) {
	return c.post(ctx, endpointValidateByUniqueKey, req)
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) (*pelecardtypes.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewInternalError("failed to marshal gateway request", err)
	}

	ctx, cancel := errors.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewInternalError("failed to create gateway request", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)

	c.logger.Info("sending gateway request", "endpoint", endpoint)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway request failed", "endpoint", endpoint, "error", err)
		return nil, errors.NewGatewayUnreachableError(fmt.Sprintf("gateway call %s failed", endpoint), err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.Error("failed to read gateway response", "endpoint", endpoint, "error", err)
		return nil, errors.NewGatewayUnreachableError("failed to read gateway response", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		c.logger.Error("gateway returned non-2xx status",
			"endpoint", endpoint,
			"status", httpResp.StatusCode,
			"body", string(respBody))
		return nil, errors.NewGatewayUnreachableError(
			fmt.Sprintf("gateway returned status %d", httpResp.StatusCode), nil)
	}

	resp, err := decodeResponse(respBody)
	if err != nil {
		c.logger.Error("unparsable gateway response",
			"endpoint", endpoint,
			"body", string(respBody),
			"error", err)
		return nil, errors.NewGatewayUnreachableError("unparsable gateway response", err)
	}

	if resp.Error != nil && resp.Error.ErrCode != 0 {
		c.logger.Error("gateway rejected request",
			"endpoint", endpoint,
			"err_code", resp.Error.ErrCode,
			"err_msg", resp.Error.ErrMsg)
		return resp, errors.NewGatewayRejectedError(resp.Error.ErrCode, resp.Error.ErrMsg)
	}

	return resp, nil
}

// decodeResponse handles the gateway's two sentinel bodies before falling
// back to a regular JSON object: a literal "0" is a handshake failure, a
// literal "1" acknowledges an already-identified transaction.
func decodeResponse(body []byte) (*pelecardtypes.Response, error) {
	switch strings.TrimSpace(string(body)) {
	case "0":
		return &pelecardtypes.Response{
			Error: &pelecardtypes.Error{ErrCode: -1, ErrMsg: "Error"},
		}, nil
	case "1":
		return &pelecardtypes.Response{
			Identified: &pelecardtypes.Error{ErrCode: 0, ErrMsg: "Identified"},
		}, nil
	}

	var resp pelecardtypes.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
