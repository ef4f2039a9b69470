package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetowner_crm/internal/model"
	"meetowner_crm/internal/testutil"
	"meetowner_crm/pkg/apperror"
)

func validUpdateInput() RecordUpdateInput {
	return RecordUpdateInput{
		FollowUpFeedback: "Visited the sample flat",
		NextAction:       "Share payment plan",
		UpdatedByEmpType: "4",
		UpdatedByEmpID:   "42",
		UpdatedByEmpName: "Priya Sharma",
		UpdatedEmpPhone:  "9876500042",
	}
}

// assignedToEmployee hands the fixture lead to testutil.EmployeeID.
func assignedToEmployee(l *model.Lead) {
	empType, empID := testutil.EmployeeType, testutil.EmployeeID
	l.AssignedUserType = &empType
	l.AssignedID = &empID
}

func TestRecordUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - appends one row and applies the status", func(t *testing.T) {
		svc, db := setupService(t)
		lead := testutil.CreateLead(t, db, func(l *model.Lead) {
			assignedToEmployee(l)
			l.UpdatedDate = "2026-10-01"
		})
		in := validUpdateInput()
		in.StatusID = "6"

		update, err := svc.RecordUpdate(ctx, lead.LeadID, in)
		require.NoError(t, err)
		assert.NotZero(t, update.ID)
		assert.Equal(t, testutil.BuilderID, update.LeadAddedUserID)
		assert.Equal(t, int64(1), testutil.CountUpdates(t, db, lead.LeadID))

		var got model.Lead
		require.NoError(t, db.First(&got, "lead_id = ?", lead.LeadID).Error)
		assert.Equal(t, uint(6), got.StatusID)
		assert.Equal(t, "2026-10-16", got.UpdatedDate)
		assert.Equal(t, "Share payment plan", *got.NextAction)
		assert.Equal(t, "Visited the sample flat", *got.FollowUpFeedback)
	})

	t.Run("Success - status is untouched when not supplied", func(t *testing.T) {
		svc, db := setupService(t)
		lead := testutil.CreateLead(t, db, func(l *model.Lead) {
			assignedToEmployee(l)
			l.StatusID = 4
		})

		update, err := svc.RecordUpdate(ctx, lead.LeadID, validUpdateInput())
		require.NoError(t, err)
		assert.Nil(t, update.StatusID)

		var got model.Lead
		require.NoError(t, db.First(&got, "lead_id = ?", lead.LeadID).Error)
		assert.Equal(t, uint(4), got.StatusID)
	})

	t.Run("Success - the owner may update an unassigned lead", func(t *testing.T) {
		svc, db := setupService(t)
		lead := testutil.CreateLead(t, db, nil)
		in := validUpdateInput()
		in.UpdatedByEmpType = "2"
		in.UpdatedByEmpID = "10"
		in.UpdatedByEmpName = "Skyline Builders"

		_, err := svc.RecordUpdate(ctx, lead.LeadID, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), testutil.CountUpdates(t, db, lead.LeadID))
	})

	t.Run("Error - an employee who is not the assignee is rejected", func(t *testing.T) {
		svc, db := setupService(t)
		unassigned := testutil.CreateLead(t, db, func(l *model.Lead) { l.StatusID = 4 })
		foreign := testutil.CreateLead(t, db, func(l *model.Lead) {
			assignedToEmployee(l)
			l.LeadAddedUserID = testutil.OtherBuilderID
		})
		in := validUpdateInput()
		in.StatusID = "8"

		_, err := svc.RecordUpdate(ctx, unassigned.LeadID, in)
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
		assert.Equal(t, int64(0), testutil.CountUpdates(t, db, unassigned.LeadID))

		var got model.Lead
		require.NoError(t, db.First(&got, "lead_id = ?", unassigned.LeadID).Error)
		assert.Equal(t, uint(4), got.StatusID)

		// Builder 10 neither owns nor is assigned the other tenant's lead.
		in = validUpdateInput()
		in.UpdatedByEmpType = "2"
		in.UpdatedByEmpID = "10"
		_, err = svc.RecordUpdate(ctx, foreign.LeadID, in)
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("Error - unknown lead leaves no history", func(t *testing.T) {
		svc, db := setupService(t)

		_, err := svc.RecordUpdate(ctx, 9999, validUpdateInput())
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		assert.Equal(t, int64(0), testutil.CountUpdates(t, db, 9999))
	})

	t.Run("Error - unknown status or actor", func(t *testing.T) {
		svc, db := setupService(t)
		lead := testutil.CreateLead(t, db, nil)

		in := validUpdateInput()
		in.StatusID = "2" // reserved for the follow-up view, never stored
		_, err := svc.RecordUpdate(ctx, lead.LeadID, in)
		assert.True(t, apperror.Is(err, apperror.KindValidation))

		in = validUpdateInput()
		in.UpdatedByEmpID = "500"
		_, err = svc.RecordUpdate(ctx, lead.LeadID, in)
		assert.True(t, apperror.Is(err, apperror.KindReferential))

		assert.Equal(t, int64(0), testutil.CountUpdates(t, db, lead.LeadID))
	})

	t.Run("Error - missing actor fields", func(t *testing.T) {
		svc, _ := setupService(t)
		in := validUpdateInput()
		in.UpdatedByEmpName = ""

		_, err := svc.RecordUpdate(ctx, 1, in)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		assert.Equal(t, []string{"updated_by_emp_name"}, fieldsOf(t, err))
	})
}

func TestListUpdates(t *testing.T) {
	ctx := context.Background()
	owner := Scope{UserType: testutil.BuilderType, UserID: testutil.BuilderID}

	t.Run("Success - newest first with status names", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		clock := testutil.Now
		svc := NewLeadService(db, Options{Clock: func() time.Time { return clock }})
		lead := testutil.CreateLead(t, db, assignedToEmployee)

		first := validUpdateInput()
		first.StatusID = "4"
		_, err := svc.RecordUpdate(ctx, lead.LeadID, first)
		require.NoError(t, err)

		clock = clock.Add(time.Hour)
		second := validUpdateInput()
		second.NextAction = "Schedule site visit"
		_, err = svc.RecordUpdate(ctx, lead.LeadID, second)
		require.NoError(t, err)

		updates, err := svc.ListUpdates(ctx, lead.LeadID, owner)
		require.NoError(t, err)
		require.Len(t, updates, 2)

		assert.Equal(t, "12:30:00", updates[0].UpdateTime)
		assert.Equal(t, "Schedule site visit", *updates[0].NextAction)
		assert.Nil(t, updates[0].StatusName)

		assert.Equal(t, "11:30:00", updates[1].UpdateTime)
		require.NotNil(t, updates[1].StatusName)
		assert.Equal(t, "Interested", *updates[1].StatusName)
	})

	t.Run("Error - another tenant sees nothing", func(t *testing.T) {
		svc, db := setupService(t)
		lead := testutil.CreateLead(t, db, assignedToEmployee)
		_, err := svc.RecordUpdate(ctx, lead.LeadID, validUpdateInput())
		require.NoError(t, err)

		other := Scope{UserType: testutil.BuilderType, UserID: testutil.OtherBuilderID}
		updates, err := svc.ListUpdates(ctx, lead.LeadID, other)
		assert.Nil(t, updates)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}
