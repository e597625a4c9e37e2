package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/config"
)

// Notifier is the outbound notification contract consumed by the services.
// Both channels are fallible and callers treat them as best-effort.
type Notifier interface {
	SendEmail(to, subject, body string) error
	SendPush(deviceToken, title, body string) error
}

// NotificationService sends emails over SMTP and push messages through the
// Expo push API. Transports that are not configured no-op.
type NotificationService struct {
	smtp     config.SMTPConfig
	push     config.PushConfig
	client   *http.Client
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		smtp:     cfg.SMTP,
		push:     cfg.Push,
		client:   &http.Client{Timeout: 10 * time.Second},
		sendMail: smtp.SendMail,
	}
}

// SendEmail sends a plain-text email
func (s *NotificationService) SendEmail(to, subject, body string) error {
	if !s.smtp.Enabled() {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtp.From, to, subject, body)

	var auth smtp.Auth
	if s.smtp.Username != "" {
		auth = smtp.PlainAuth("", s.smtp.Username, s.smtp.Password, s.smtp.Host)
	}

	addr := s.smtp.Host + ":" + s.smtp.Port
	return s.sendMail(addr, auth, s.smtp.From, []string{to}, []byte(msg))
}

// expoPushPayload is the Expo push API request body
type expoPushPayload struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Sound string                 `json:"sound"`
	Data  map[string]interface{} `json:"data"`
}

// SendPush sends a push message to an Expo device token
func (s *NotificationService) SendPush(deviceToken, title, body string) error {
	if !s.push.Enabled {
		return nil
	}

	payload := expoPushPayload{
		To:    deviceToken,
		Title: title,
		Body:  body,
		Sound: "default",
		Data:  map[string]interface{}{},
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.push.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("expo push returned status %d", resp.StatusCode)
	}
	return nil
}

// PaymentConfirmationEmail renders the payment confirmation message body
func PaymentConfirmationEmail(payment *models.Payment, tenantName string) (subject, body string) {
	subject = "Payment Confirmation - Rent Payment Received"

	ref := "N/A"
	if payment.ReferenceNumber != nil {
		ref = *payment.ReferenceNumber
	}

	body = fmt.Sprintf(`Dear %s,

Thank you for your rent payment. Here are the details:

Payment Amount: %d
Payment Date: %s
Period: %s to %s
Payment Method: %s
Reference: %s

Balance Due: %d
Overpayment: %d

Thank you for your prompt payment.

Best regards,
Property Management Team`,
		tenantName,
		payment.AmountPaid,
		payment.PaymentDate.Format("2006-01-02"),
		payment.PaymentStartDate.Format("2006-01-02"),
		payment.PaymentEndDate.Format("2006-01-02"),
		payment.PaymentMethod,
		ref,
		payment.BalanceDue,
		payment.Overpayment,
	)
	return subject, body
}
