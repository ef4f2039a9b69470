package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const resendEndpoint = "https://api.resend.com/emails"

type EmailService struct {
	apiKey    string
	from      string
	endpoint  string
	client    *http.Client
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type LeadAssignedData struct {
	AssigneeName  string
	LeadID        uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ProjectName   string
	Priority      string
	NextAction    string
}

type DigestLead struct {
	LeadID       uint
	CustomerName string
	Phone        string
	ProjectName  string
	NextAction   string
}

type FollowUpDigestData struct {
	AssigneeName string
	Date         string
	Leads        []DigestLead
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	if from == "" {
		from = "MeetOwner CRM <noreply@meetowner.in>"
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(ctx context.Context, to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	jsonData, err := json.Marshal(EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	log.Debugf("Sent %s to %s", templateName, to)
	return nil
}

func (s *EmailService) SendLeadAssignedEmail(ctx context.Context, to string, data LeadAssignedData) error {
	subject := fmt.Sprintf("New lead assigned: %s", data.CustomerName)
	return s.sendTemplateEmail(ctx, to, subject, "lead_assigned.html", data)
}

func (s *EmailService) SendFollowUpDigest(ctx context.Context, to string, data FollowUpDigestData) error {
	subject := fmt.Sprintf("Your follow-ups for %s (%d)", data.Date, len(data.Leads))
	return s.sendTemplateEmail(ctx, to, subject, "followup_digest.html", data)
}
