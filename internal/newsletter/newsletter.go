// Package newsletter signs readers up for the mailing list through EmailJS.
package newsletter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInvalidEmail is returned before any network call for malformed addresses.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrSubscribeFailed covers any non-200 response or transport failure.
	ErrSubscribeFailed = errors.New("subscription failed")
	// ErrNotConfigured is returned when service credentials are missing.
	ErrNotConfigured = errors.New("newsletter service not configured")
)

// Status lines shown to the reader while and after subscribing.
const (
	MsgSubscribing  = "Subscribing..."
	MsgInvalidEmail = "Please enter a valid email address"
	MsgFailed       = "Subscription failed. Please try again later."
)

// SuccessMessage is shown once the confirmation email is on its way.
func SuccessMessage(email string) string {
	return "Subscribed successfully! A confirmation email was sent to " + email
}

// StatusMessage maps a Subscribe result to the line shown to the reader.
func StatusMessage(email string, err error) string {
	switch {
	case err == nil:
		return SuccessMessage(strings.TrimSpace(email))
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	default:
		return MsgFailed
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscriber signs an address up for the newsletter.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// ValidateEmail trims email and checks its general shape.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Config identifies the EmailJS service, template and account.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Timeout    time.Duration
}

// EmailJSClient sends the confirmation email through the EmailJS REST API.
type EmailJSClient struct {
	httpClient *http.Client
	config     Config
}

// NewEmailJSClient builds a client; a nil httpClient gets one with cfg.Timeout.
func NewEmailJSClient(cfg Config, httpClient *http.Client) *EmailJSClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &EmailJSClient{httpClient: httpClient, config: cfg}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Subscribe validates email and asks EmailJS to send the confirmation.
// Only an HTTP 200 counts as success.
func (c *EmailJSClient) Subscribe(ctx context.Context, email string) error {
	email, err := ValidateEmail(email)
	if err != nil {
		return err
	}
	if c.config.Endpoint == "" || c.config.ServiceID == "" || c.config.TemplateID == "" || c.config.PublicKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.config.ServiceID,
		TemplateID:     c.config.TemplateID,
		UserID:         c.config.PublicKey,
		TemplateParams: map[string]string{"user_email": email},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubscribeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrSubscribeFailed, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
