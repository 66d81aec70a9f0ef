package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"junkops-api/internal/metrics"
)

// SmsResult carries the vendor's response for an outbound message
type SmsResult struct {
	SID    string
	Status string
}

// SmsClient defines the interface for the telephony vendor
type SmsClient interface {
	// SendSms submits an outbound message and returns the vendor message id
	SendSms(ctx context.Context, to, body string) (*SmsResult, error)
}

// smsClient implements SmsClient against the vendor's REST API
type smsClient struct {
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewSmsClient creates a new telephony vendor client
func NewSmsClient(baseURL, accountSID, authToken, fromNumber string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) SmsClient {
	return &smsClient{
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SendSms submits one outbound message. Unlike notification-style calls this
// is not fire-and-forget: the caller audits the outcome, so errors propagate.
func (c *smsClient) SendSms(ctx context.Context, to, body string) (*SmsResult, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(endpoint, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to reach SMS vendor",
			zap.Error(err),
			zap.String("to", to),
			zap.Duration("duration", duration),
		)
		return nil, fmt.Errorf("sms vendor unreachable: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		SID     string `json:"sid"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode vendor response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("SMS vendor rejected message",
			zap.Int("status_code", resp.StatusCode),
			zap.String("vendor_message", payload.Message),
			zap.String("to", to),
		)
		return nil, fmt.Errorf("sms vendor rejected message: %s", payload.Message)
	}

	c.logger.Info("SMS submitted to vendor",
		zap.String("sid", payload.SID),
		zap.String("status", payload.Status),
		zap.Duration("duration", duration),
	)
	return &SmsResult{SID: payload.SID, Status: payload.Status}, nil
}

// NoOpSmsClient is a no-op implementation for when SMS is disabled
type NoOpSmsClient struct{}

func NewNoOpSmsClient() SmsClient {
	return &NoOpSmsClient{}
}

func (c *NoOpSmsClient) SendSms(ctx context.Context, to, body string) (*SmsResult, error) {
	return &SmsResult{SID: "disabled", Status: "skipped"}, nil
}
