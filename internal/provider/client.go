// Package provider is the WhatsApp Business HTTP client used to look up contacts
// and send template messages.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/lead-messenger/internal/config"
)

const maxResponseBytes = 1 << 20

// SendRequest is one template message to one phone.
type SendRequest struct {
	Phone     string
	Template  string
	Language  string
	Variables []string
}

// SendResult is the provider's answer to a send that reached it.
type SendResult struct {
	Accepted  bool
	MessageID string
	// Async is true when the provider only queued the message for later delivery.
	Async        bool
	ErrorCode    string
	ErrorMessage string
}

// ContactStatus is the provider's view of a phone number.
type ContactStatus struct {
	Valid bool
	WaID  string
}

type Client struct {
	httpClient    *http.Client
	baseURL       string
	phoneNumberID string
	accessToken   string
	language      string
	limiter       *rate.Limiter
	breaker       *CircuitBreaker
	logger        *zap.Logger
}

func NewClient(cfg *config.ProviderConfig, logger *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		phoneNumberID: cfg.PhoneNumberID,
		accessToken:   cfg.AccessToken,
		language:      cfg.Language,
		limiter:       rate.NewLimiter(limit, burst),
		breaker:       NewCircuitBreaker("whatsapp-provider", &cfg.CircuitBreaker, logger),
		logger:        logger,
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// Send delivers a template message. A returned error means the provider could not
// be reached or answered with a server-side failure; an explicit rejection comes
// back as a SendResult with Accepted false.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	lang := req.Language
	if lang == "" {
		lang = c.language
	}

	params := make([]map[string]string, 0, len(req.Variables))
	for _, v := range req.Variables {
		params = append(params, map[string]string{"type": "text", "text": v})
	}
	tpl := map[string]any{
		"name":     req.Template,
		"language": map[string]string{"code": lang},
	}
	if len(params) > 0 {
		tpl["components"] = []map[string]any{{"type": "body", "parameters": params}}
	}
	body := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                strings.TrimPrefix(req.Phone, "+"),
		"type":              "template",
		"template":          tpl,
	}

	var result *SendResult
	err := c.breaker.Execute(ctx, func() error {
		status, raw, err := c.post(ctx, "/messages", body)
		if err != nil {
			return err
		}
		if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
			return fmt.Errorf("provider returned status %d: %s", status, errorText(raw))
		}

		parsed := gjson.ParseBytes(raw)
		if status >= http.StatusBadRequest {
			result = &SendResult{
				ErrorCode:    parsed.Get("error.code").String(),
				ErrorMessage: errorText(raw),
			}
			return nil
		}

		id := parsed.Get("messages.0.id").String()
		if id == "" {
			return fmt.Errorf("provider returned status %d without a message id", status)
		}
		result = &SendResult{
			Accepted:  true,
			MessageID: id,
			Async:     parsed.Get("messages.0.message_status").String() == "accepted",
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("Provider send failed",
			zap.String("template", req.Template),
			zap.Error(err),
			zap.String("circuitBreakerState", string(c.breaker.GetState())),
		)
		return nil, err
	}

	return result, nil
}

// CheckContact asks the provider whether phone has a WhatsApp account.
func (c *Client) CheckContact(ctx context.Context, phone string) (*ContactStatus, error) {
	body := map[string]any{
		"blocking": "wait",
		"contacts": []string{phone},
	}

	var status *ContactStatus
	err := c.breaker.Execute(ctx, func() error {
		code, raw, err := c.post(ctx, "/contacts", body)
		if err != nil {
			return err
		}
		if code >= http.StatusBadRequest {
			return fmt.Errorf("contact check returned status %d: %s", code, errorText(raw))
		}

		contact := gjson.GetBytes(raw, "contacts.0")
		if !contact.Exists() {
			return fmt.Errorf("contact check returned no contacts")
		}
		status = &ContactStatus{
			Valid: contact.Get("status").String() == "valid",
			WaID:  contact.Get("wa_id").String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/" + c.phoneNumberID + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// errorText renders a provider error payload as "(#code) message: details".
func errorText(raw []byte) string {
	e := gjson.GetBytes(raw, "error")
	if !e.Exists() {
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return "empty response"
		}
		return text
	}

	text := e.Get("message").String()
	if code := e.Get("code").String(); code != "" {
		text = fmt.Sprintf("(#%s) %s", code, text)
	}
	if details := e.Get("error_data.details").String(); details != "" {
		text += ": " + details
	}
	return text
}
