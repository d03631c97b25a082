package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Named serverless billing actions.
const (
	ActionChangeSubscription = "admin_change_subscription"
	ActionRefundInvoice      = "admin_refund_invoice"
)

// Functions invokes the serverless billing endpoint: a single URL taking
// {"action": ..., ...payload}, bearer-authenticated, with the payments
// provider behind it.
type Functions struct {
	rest   *resty.Client
	creds  CredentialSource
	logger *zap.Logger
}

func NewFunctions(endpoint string, creds CredentialSource, logger *zap.Logger) *Functions {
	restClient := resty.New()
	restClient.SetBaseURL(strings.TrimRight(endpoint, "/"))
	restClient.SetHeader("Content-Type", "application/json")

	return &Functions{
		rest:   restClient,
		creds:  creds,
		logger: logger,
	}
}

// Invoke posts an action with its payload and decodes the response into
// out. The error mapping matches the gateway client's.
func (f *Functions) Invoke(ctx context.Context, action string, payload map[string]any, out any) error {
	token, err := f.creds.Credential(ctx)
	if err != nil {
		return err
	}

	body := map[string]any{"action": action}
	for k, v := range payload {
		body[k] = v
	}

	resp, err := f.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		Post("")
	if err != nil {
		return &xerrors.NetworkError{Cause: err}
	}
	if resp.IsError() {
		f.logger.Warn("billing function failed",
			zap.String("action", action),
			zap.Int("status", resp.StatusCode()),
		)
		return decodeServerError(resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
