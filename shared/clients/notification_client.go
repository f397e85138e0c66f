package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fundpitch-backend/shared/config"
)

// NotificationClient handles communication with notification service
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification client
func NewNotificationClient() *NotificationClient {
	cfg := config.GetConfig()
	return &NotificationClient{
		baseURL: cfg.NotificationServiceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// InviteEmailRequest carries everything the invite email template needs.
type InviteEmailRequest struct {
	Email       string `json:"email"`
	InviteeName string `json:"invitee_name"`
	CompanyName string `json:"company_name"`
	InviterName string `json:"inviter_name"`
	Role        string `json:"role"`
	InviteToken string `json:"invite_token"`
}

// OTPEmailRequest carries an email OTP dispatch.
type OTPEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// WhatsAppInviteRequest carries a WhatsApp template-message dispatch.
type WhatsAppInviteRequest struct {
	Phone       string `json:"phone"`
	InviteeName string `json:"invitee_name"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
	InviteToken string `json:"invite_token"`
}

// InviteEventRequest pushes a live invite event over WebSocket to the
// company user's channel.
type InviteEventRequest struct {
	UserID  string `json:"user_id"`
	Event   string `json:"event"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SendInviteEmail dispatches the templated invite email.
func (nc *NotificationClient) SendInviteEmail(req InviteEmailRequest) error {
	return nc.post("/api/notifications/email/invite", req)
}

// SendOTPEmail dispatches a login OTP over email.
func (nc *NotificationClient) SendOTPEmail(req OTPEmailRequest) error {
	return nc.post("/api/notifications/email/otp", req)
}

// SendWhatsAppInvite dispatches the invite WhatsApp template message.
func (nc *NotificationClient) SendWhatsAppInvite(req WhatsAppInviteRequest) error {
	return nc.post("/api/notifications/whatsapp/invite", req)
}

// PushInviteEvent sends a live notification; failures are best-effort
// and must not fail the calling request.
func (nc *NotificationClient) PushInviteEvent(req InviteEventRequest) error {
	return nc.post("/ws/send", req)
}

func (nc *NotificationClient) post(path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := nc.httpClient.Post(nc.baseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("notification service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			return fmt.Errorf("notification service error: %s", errBody.Error)
		}
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}
