package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CredentialSource yields the bearer token attached to every call.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// Client is the single transport to the hosted backend: table reads and
// writes under /rest/v1, remote procedures under /rest/v1/rpc, file
// uploads under /storage/v1. Failures map onto the error taxonomy:
// AuthError before any network I/O when no credential exists,
// NetworkError for transport failures, ServerError for non-2xx
// responses. No retries and no explicit timeout beyond the transport
// default.
type Client struct {
	rest    *resty.Client
	creds   CredentialSource
	anonKey string
	logger  *zap.Logger
}

func NewClient(baseURL, anonKey string, creds CredentialSource, logger *zap.Logger) *Client {
	restClient := resty.New()
	restClient.SetBaseURL(strings.TrimRight(baseURL, "/"))
	restClient.SetHeader("Content-Type", "application/json")

	return &Client{
		rest:    restClient,
		creds:   creds,
		anonKey: anonKey,
		logger:  logger,
	}
}

// Select runs a filtered read against a table and decodes the JSON array
// response into out.
func (c *Client) Select(ctx context.Context, table string, q Query, out any) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}
	req.SetQueryParamsFromValues(q.values())

	resp, err := req.Get("/rest/v1/" + table)
	return c.finish(resp, err, out)
}

// Insert creates one or more rows. The backend echoes the created rows
// back, so out is normally a pointer to a slice of the row type.
func (c *Client) Insert(ctx context.Context, table string, body, out any) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}
	req.SetHeader("Prefer", "return=representation")
	req.SetBody(body)

	resp, err := req.Post("/rest/v1/" + table)
	return c.finish(resp, err, out)
}

// Update patches the row with the given id and echoes the result.
func (c *Client) Update(ctx context.Context, table, id string, patch, out any) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}
	req.SetHeader("Prefer", "return=representation")
	req.SetQueryParam("id", "eq."+id)
	req.SetBody(patch)

	resp, err := req.Patch("/rest/v1/" + table)
	return c.finish(resp, err, out)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}
	req.SetQueryParam("id", "eq."+id)

	resp, err := req.Delete("/rest/v1/" + table)
	return c.finish(resp, err, nil)
}

// RPC invokes a named server-side function with a JSON argument object.
func (c *Client) RPC(ctx context.Context, fn string, args, out any) error {
	req, err := c.newRequest(ctx)
	if err != nil {
		return err
	}
	if args != nil {
		req.SetBody(args)
	} else {
		req.SetBody(map[string]any{})
	}

	resp, err := req.Post("/rest/v1/rpc/" + fn)
	return c.finish(resp, err, out)
}

// Upload stores an object and returns its path within the bucket.
func (c *Client) Upload(ctx context.Context, bucket, path string, r io.Reader, contentType string) (string, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return "", err
	}
	req.SetHeader("Content-Type", contentType)
	req.SetBody(r)

	resp, err := req.Post("/storage/v1/object/" + bucket + "/" + path)
	if err := c.finish(resp, err, nil); err != nil {
		return "", err
	}
	return bucket + "/" + path, nil
}

// ========== Request plumbing ==========

// newRequest fails fast with AuthError when no credential can be read;
// the network is never touched in that case.
func (c *Client) newRequest(ctx context.Context) (*resty.Request, error) {
	token, err := c.creds.Credential(ctx)
	if err != nil {
		return nil, err
	}

	req := c.rest.R()
	req.SetContext(ctx)
	req.SetHeader("apikey", c.anonKey)
	req.SetAuthToken(token)
	return req, nil
}

func (c *Client) finish(resp *resty.Response, err error, out any) error {
	if err != nil {
		return &xerrors.NetworkError{Cause: err}
	}
	if resp.IsError() {
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

func decodeServerError(status int, body []byte) *xerrors.ServerError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" && status != http.StatusNotFound {
		message = strings.TrimSpace(string(body))
	}

	return &xerrors.ServerError{
		Status:  status,
		Code:    payload.Code,
		Message: message,
	}
}
