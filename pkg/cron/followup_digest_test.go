package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetowner_crm/internal/model"
	"meetowner_crm/internal/testutil"
	"meetowner_crm/pkg/email"
)

type fakeMailer struct {
	digests map[string]email.FollowUpDigestData
	fail    map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{digests: map[string]email.FollowUpDigestData{}, fail: map[string]bool{}}
}

func (m *fakeMailer) SendLeadAssignedEmail(context.Context, string, email.LeadAssignedData) error {
	return nil
}

func (m *fakeMailer) SendFollowUpDigest(_ context.Context, to string, data email.FollowUpDigestData) error {
	if m.fail[to] {
		return errors.New("smtp down")
	}
	m.digests[to] = data
	return nil
}

func TestSendFollowUpDigest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	require.NoError(t, db.Create(&model.CRMUser{ID: 43, UserType: testutil.EmployeeType, Name: "Ravi", Email: "ravi@example.com"}).Error)

	empType := testutil.EmployeeType
	priya, ravi := testutil.EmployeeID, uint(43)
	action := "Call back"
	assign := func(id *uint) func(*model.Lead) {
		return func(l *model.Lead) {
			l.AssignedUserType = &empType
			l.AssignedID = id
			l.NextAction = &action
		}
	}

	testutil.CreateLead(t, db, assign(&priya))
	testutil.CreateLead(t, db, assign(&priya))
	testutil.CreateLead(t, db, assign(&ravi))
	// Booked and action-less leads are not part of the digest.
	testutil.CreateLead(t, db, func(l *model.Lead) {
		assign(&priya)(l)
		l.Booked = true
	})
	testutil.CreateLead(t, db, func(l *model.Lead) {
		l.AssignedUserType = &empType
		l.AssignedID = &ravi
	})

	t.Run("groups leads per assignee", func(t *testing.T) {
		mailer := newFakeMailer()

		sent, err := SendFollowUpDigest(context.Background(), db, mailer, "2026-10-16")
		require.NoError(t, err)
		assert.Equal(t, 2, sent)

		got := mailer.digests["priya@skyline.example.com"]
		assert.Equal(t, "Priya Sharma", got.AssigneeName)
		assert.Equal(t, "2026-10-16", got.Date)
		assert.Len(t, got.Leads, 2)
		assert.Equal(t, "Call back", got.Leads[0].NextAction)

		assert.Len(t, mailer.digests["ravi@example.com"].Leads, 1)
	})

	t.Run("one failed send does not stop the rest", func(t *testing.T) {
		mailer := newFakeMailer()
		mailer.fail["ravi@example.com"] = true

		sent, err := SendFollowUpDigest(context.Background(), db, mailer, "2026-10-16")
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Contains(t, mailer.digests, "priya@skyline.example.com")
	})
}

func TestInitFollowUpDigestCronDisabled(t *testing.T) {
	c, err := InitFollowUpDigestCron("0 9 * * *", nil, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, c)
}
