// Package metadata implements the retrieve protocol client against the
// Salesforce Metadata API soap endpoint: submit one batched retrieve job,
// poll it to completion, and unpack the returned zip into raw layout xml.
package metadata

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.orgdiff.io/orgdiff/pkg/models"
	"go.uber.org/zap"
)

// maxErrBody bounds the response excerpt embedded in protocol errors.
const maxErrBody = 600

type Client struct {
	logger *zap.Logger
	http   *http.Client
	policy PollPolicy
	clock  Clock
}

type Option func(*Client)

// WithPollPolicy overrides the default poll schedule.
func WithPollPolicy(p PollPolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithClock injects a clock; tests use a fake to drive the poll loop.
func WithClock(clk Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithHTTPClient overrides the underlying http client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		logger: logger,
		http:   &http.Client{Timeout: 60 * time.Second},
		policy: DefaultPollPolicy(),
		clock:  realClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Retrieve fetches the raw xml of every requested layout from one org in a
// single retrieve job. The returned map may be a strict subset of the
// requested names: absence means the org has no such layout. An empty map
// with a nil error means the job completed with zero matches.
func (c *Client) Retrieve(ctx context.Context, auth models.OrgAuth, layoutNames []string) (map[string]string, error) {
	endpoint := fmt.Sprintf("%s/services/Soap/m/%s", auth.InstanceURL, auth.APIVersion)

	body, err := c.soapPost(ctx, endpoint, "retrieve", buildRetrieveEnvelope(auth.AccessToken, auth.APIVersion, layoutNames))
	if err != nil {
		return nil, err
	}

	var retrieveID string
	if err := scanElements(body, map[string]*string{"id": &retrieveID}); err != nil {
		return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("malformed retrieve response from %s: %w", auth.InstanceURL, err))
	}
	if retrieveID == "" {
		return nil, models.NewAppError(models.ErrProtocol,
			fmt.Errorf("no retrieve id returned from %s, check org credentials and api version", auth.InstanceURL))
	}

	c.logger.Debug("retrieve job submitted",
		zap.String("instance_url", auth.InstanceURL),
		zap.String("retrieve_id", retrieveID),
		zap.Int("layouts_requested", len(layoutNames)))

	return c.pollUntilDone(ctx, endpoint, auth, retrieveID)
}

// pollUntilDone polls checkRetrieveStatus on the fixed interval until the
// server reports completion or the deadline elapses.
func (c *Client) pollUntilDone(ctx context.Context, endpoint string, auth models.OrgAuth, retrieveID string) (map[string]string, error) {
	deadline := c.clock.Now().Add(c.policy.Deadline)

	for {
		body, err := c.soapPost(ctx, endpoint, "checkRetrieveStatus", buildStatusEnvelope(auth.AccessToken, retrieveID))
		if err != nil {
			return nil, err
		}

		var done, status, errMsg, zipB64 string
		if err := scanElements(body, map[string]*string{
			"done":         &done,
			"status":       &status,
			"errorMessage": &errMsg,
			"zipFile":      &zipB64,
		}); err != nil {
			return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("malformed status response from %s: %w", auth.InstanceURL, err))
		}

		if done == "true" {
			if status == "Failed" {
				if errMsg == "" {
					errMsg = "unknown error"
				}
				return nil, models.NewAppError(models.ErrRetrieveFailed,
					fmt.Errorf("retrieve failed on %s: %s", auth.InstanceURL, errMsg))
			}
			if zipB64 == "" {
				c.logger.Warn("retrieve completed but zip is empty, no layouts found",
					zap.String("instance_url", auth.InstanceURL))
				return map[string]string{}, nil
			}
			zipBytes, err := base64.StdEncoding.DecodeString(zipB64)
			if err != nil {
				return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("undecodable zip payload from %s: %w", auth.InstanceURL, err))
			}
			return extractLayouts(c.logger, zipBytes)
		}

		if !c.clock.Now().Add(c.policy.Interval).Before(deadline) {
			return nil, models.NewAppError(models.ErrRetrieveTimeout,
				fmt.Errorf("metadata retrieve from %s did not complete within %s", auth.InstanceURL, c.policy.Deadline))
		}
		if err := c.clock.Sleep(ctx, c.policy.Interval); err != nil {
			return nil, models.NewAppError(models.ErrRetrieveTimeout,
				fmt.Errorf("metadata retrieve from %s cancelled while polling: %w", auth.InstanceURL, err))
		}
	}
}

// soapPost sends one envelope and returns the raw response body. A non-200
// reply is a protocol error carrying a bounded body excerpt for triage.
func (c *Client) soapPost(ctx context.Context, endpoint, action string, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, models.NewAppError(models.ErrProtocol, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", action)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("metadata api call %q failed: %w", action, err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("failed to close response body", zap.Error(cerr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewAppError(models.ErrProtocol, fmt.Errorf("metadata api call %q failed reading response: %w", action, err))
	}
	if resp.StatusCode != http.StatusOK {
		excerpt := body
		if len(excerpt) > maxErrBody {
			excerpt = excerpt[:maxErrBody]
		}
		return nil, models.NewAppError(models.ErrProtocol,
			fmt.Errorf("metadata api call %q failed (http %d): %s", action, resp.StatusCode, excerpt))
	}
	return body, nil
}
