package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetowner_crm/pkg/config"
)

func newTestService(t *testing.T, status int) (*EmailService, *[]EmailData) {
	t.Helper()
	var sent []EmailData
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		var data EmailData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&data))
		sent = append(sent, data)
		w.WriteHeader(status)
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	t.Cleanup(srv.Close)

	s, err := NewEmailService("re_test", "CRM <crm@example.com>")
	require.NoError(t, err)
	s.endpoint = srv.URL
	return s, &sent
}

func TestSendLeadAssignedEmail(t *testing.T) {
	s, sent := newTestService(t, http.StatusOK)

	err := s.SendLeadAssignedEmail(context.Background(), "priya@example.com", LeadAssignedData{
		AssigneeName: "Priya",
		LeadID:       7,
		CustomerName: "Anil Kumar",
		ProjectName:  "Skyline Residency",
		NextAction:   "Call on Monday",
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	msg := (*sent)[0]
	assert.Equal(t, "priya@example.com", msg.To)
	assert.Equal(t, "CRM <crm@example.com>", msg.From)
	assert.Equal(t, "New lead assigned: Anil Kumar", msg.Subject)
	assert.Contains(t, msg.Html, "Skyline Residency")
	assert.Contains(t, msg.Html, "#7")
}

func TestSendFollowUpDigest(t *testing.T) {
	s, sent := newTestService(t, http.StatusOK)

	err := s.SendFollowUpDigest(context.Background(), "priya@example.com", FollowUpDigestData{
		AssigneeName: "Priya",
		Date:         "2026-10-16",
		Leads: []DigestLead{
			{LeadID: 1, CustomerName: "Anil", NextAction: "Send brochure"},
			{LeadID: 2, CustomerName: "Meena", NextAction: "Site visit"},
		},
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.Equal(t, "Your follow-ups for 2026-10-16 (2)", (*sent)[0].Subject)
	assert.Contains(t, (*sent)[0].Html, "Send brochure")
	assert.Contains(t, (*sent)[0].Html, "Site visit")
}

func TestSendTemplateEmailAPIError(t *testing.T) {
	s, _ := newTestService(t, http.StatusUnprocessableEntity)

	err := s.SendLeadAssignedEmail(context.Background(), "bad", LeadAssignedData{})
	assert.ErrorContains(t, err, "status 422")
}

func TestFromConfig(t *testing.T) {
	m, err := FromConfig(config.MailConfig{})
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = FromConfig(config.MailConfig{ResendAPIKey: "re_test"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}
