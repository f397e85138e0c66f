package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"fundpitch-backend/shared/config"
)

// WhatsAppService sends template messages through the third-party
// WhatsApp gateway. The gateway reports per-message delivery status in
// a nested structure rather than via HTTP status codes.
type WhatsAppService struct {
	config     *config.Config
	httpClient *http.Client
}

// NewWhatsAppService creates a new WhatsApp gateway client
func NewWhatsAppService(cfg *config.Config) *WhatsAppService {
	return &WhatsAppService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// gatewayPayload is the template-message request the gateway expects.
type gatewayPayload struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	TemplateName string   `json:"template_name"`
	Parameters   []string `json:"parameters"`
}

// gatewayResponse mirrors the gateway's nested status/error envelope.
type gatewayResponse struct {
	Messages []struct {
		ID     string `json:"id"`
		Status struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"status"`
	} `json:"messages"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SendInviteTemplate dispatches the invite template message. Returned
// errors are recorded onto the invite row by the caller; the invite
// itself is never rolled back on a failed send.
func (ws *WhatsAppService) SendInviteTemplate(phone, inviteeName, companyName, role, inviteToken string) error {
	if ws.config.WhatsAppAPIKey == "" {
		return fmt.Errorf("WhatsApp gateway is not configured")
	}

	acceptURL := fmt.Sprintf("%s/invite/%s", ws.config.FrontendURL, inviteToken)
	payload := gatewayPayload{
		From:         ws.config.WhatsAppSenderNumber,
		To:           phone,
		TemplateName: ws.config.WhatsAppInviteTpl,
		Parameters:   []string{inviteeName, companyName, role, acceptURL},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, ws.config.WhatsAppGatewayURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ws.config.WhatsAppAPIKey)

	resp, err := ws.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var gwResp gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return fmt.Errorf("failed to decode gateway response (HTTP %d): %w", resp.StatusCode, err)
	}

	if gwResp.Error != nil {
		return fmt.Errorf("whatsapp gateway error %d: %s", gwResp.Error.Code, gwResp.Error.Message)
	}

	for _, msg := range gwResp.Messages {
		if msg.Status.Code != "" && msg.Status.Code != "sent" && msg.Status.Code != "queued" {
			return fmt.Errorf("whatsapp message %s failed: %s (%s)", msg.ID, msg.Status.Code, msg.Status.Description)
		}
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	log.Printf("📱 WhatsApp invite sent to %s", phone)
	return nil
}
