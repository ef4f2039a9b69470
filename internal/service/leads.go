package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/apperror"
)

// CreateLead validates the payload, resolves the default status and inserts
// the lead. It returns the new lead id.
func (s *LeadService) CreateLead(ctx context.Context, in CreateLeadInput) (uint, error) {
	if err := s.checkInput(in); err != nil {
		return 0, err
	}

	projectID := in.InterestedProjectID.mustUint()
	sourceID := in.LeadSourceID.mustUint()
	ownerType := in.LeadAddedUserType.mustUint()
	ownerID := in.LeadAddedUserID.mustUint()

	ok, err := exists(ctx, s.db, &model.Property{}, "property_id = ?", projectID)
	if err != nil {
		return 0, apperror.Persistence("validate interested project", err)
	}
	if !ok {
		return 0, apperror.Referential("interested_project_id", projectID)
	}

	source, err := s.source(ctx, sourceID)
	if err != nil {
		return 0, apperror.Persistence("validate lead source", err)
	}
	if source == nil {
		return 0, apperror.Referential("lead_source_id", sourceID)
	}

	if assignedID := in.AssignedID.Ptr(); assignedID != nil {
		ok, err := s.userExists(ctx, *assignedID, in.AssignedUserType.Ptr())
		if err != nil {
			return 0, apperror.Persistence("validate assignee", err)
		}
		if !ok {
			return 0, apperror.Referential("assigned_id", *assignedID)
		}
	}

	ok, err = s.userExists(ctx, ownerID, &ownerType)
	if err != nil {
		return 0, apperror.Persistence("validate lead owner", err)
	}
	if !ok {
		return 0, apperror.Referential("lead_added_user_id", ownerID)
	}

	status, err := s.DefaultStatus(ctx)
	if err != nil {
		return 0, err
	}

	provided := in.provided()
	var missing []string
	for _, field := range source.Requirements() {
		if !provided[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("Leads from source %q require: %s", source.SourceName, strings.Join(missing, ", "))
		return 0, apperror.Validation(msg, missing...)
	}

	now := s.now()
	lead := model.Lead{
		CustomerName:          in.CustomerName,
		CustomerPhoneNumber:   in.CustomerPhoneNumber,
		CustomerEmail:         in.CustomerEmail,
		InterestedProjectID:   projectID,
		InterestedProjectName: in.InterestedProjectName,
		LeadSourceID:          sourceID,
		ChannelPartnerID:      in.ChannelPartnerID.Ptr(),
		ChannelPartnerName:    optString(in.ChannelPartnerName),
		ChannelPartnerMobile:  optString(in.ChannelPartnerMobile),
		Sqft:                  optString(string(in.Sqft)),
		Budget:                optString(string(in.Budget)),
		StatusID:              status.StatusID,
		Booked:                false,
		AssignedUserType:      in.AssignedUserType.Ptr(),
		AssignedID:            in.AssignedID.Ptr(),
		AssignedName:          optString(in.AssignedName),
		AssignedEmpNumber:     optString(in.AssignedEmpNumber),
		AssignedPriority:      optString(in.AssignedPriority),
		LeadAddedUserType:     ownerType,
		LeadAddedUserID:       ownerID,
		CreatedDate:           now.Date,
		CreatedTime:           now.Time,
		UpdatedDate:           now.Date,
		UpdatedTime:           now.Time,
	}
	if lead.AssignedID != nil {
		lead.AssignedDate = &now.Date
		lead.AssignedTime = &now.Time
	}

	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return 0, apperror.Persistence("insert lead", err)
	}
	return lead.LeadID, nil
}

// ListLeads returns the tenant's leads that are not booked, newest first.
func (s *LeadService) ListLeads(ctx context.Context, scope Scope, filter LeadFilter) ([]model.Lead, error) {
	query := s.db.WithContext(ctx).
		Where("lead_added_user_type = ? AND lead_added_user_id = ?", scope.UserType, scope.UserID).
		Where("booked = ?", model.NoValue)

	today := s.Today()
	switch filter.Status.Kind {
	case StatusTodayCreated:
		query = query.Where("created_date = ?", today)
	case StatusTodayFollowUp:
		query = query.Where("next_action IS NOT NULL AND updated_date = ?", today)
	case StatusExact:
		query = query.Where("status_id = ?", filter.Status.StatusID)
	}

	if filter.Assignee != nil {
		query = query.Where("assigned_user_type = ? AND assigned_id = ?", filter.Assignee.UserType, filter.Assignee.ID)
	}

	var leads []model.Lead
	if err := query.Order("created_date DESC, created_time DESC, lead_id DESC").Find(&leads).Error; err != nil {
		return nil, apperror.Persistence("fetch leads", err)
	}
	if len(leads) == 0 {
		return nil, apperror.NotFound("No leads found for the given user")
	}
	for i := range leads {
		normalizeLeadDates(&leads[i])
	}
	return leads, nil
}

// GetLead loads one lead owned by scope.
func (s *LeadService) GetLead(ctx context.Context, leadID uint, scope Scope) (*model.Lead, error) {
	var lead model.Lead
	err := s.db.WithContext(ctx).
		Where("lead_id = ? AND lead_added_user_type = ? AND lead_added_user_id = ?", leadID, scope.UserType, scope.UserID).
		First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Lead not found")
	}
	if err != nil {
		return nil, apperror.Persistence("fetch lead", err)
	}
	normalizeLeadDates(&lead)
	return &lead, nil
}

// AssignLead hands a lead to an employee and records the hand-off in the
// lead's history. Both writes commit together. Concurrent assignments of
// the same lead are last-write-wins.
func (s *LeadService) AssignLead(ctx context.Context, leadID uint, in AssignLeadInput) (*model.Lead, error) {
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	scope := Scope{UserType: in.LeadAddedUserType.mustUint(), UserID: in.LeadAddedUserID.mustUint()}
	assigneeType := in.AssignedUserType.mustUint()
	assigneeID := in.AssignedID.mustUint()

	var statusID uint
	if in.StatusID != "" {
		statusID = in.StatusID.mustUint()
		ok, err := s.statusExists(ctx, statusID)
		if err != nil {
			return nil, apperror.Persistence("validate lead status", err)
		}
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("status_id %d does not exist", statusID), "status_id")
		}
	} else {
		open, err := s.OpenStatus(ctx)
		if err != nil {
			return nil, err
		}
		statusID = open.StatusID
	}

	ok, err := s.userExists(ctx, assigneeID, &assigneeType)
	if err != nil {
		return nil, apperror.Persistence("validate assignee", err)
	}
	if !ok {
		return nil, apperror.Referential("assigned_id", assigneeID)
	}

	now := s.now()
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperror.Persistence("assign lead", tx.Error)
	}

	result := tx.Model(&model.Lead{}).
		Where("lead_id = ? AND lead_added_user_type = ? AND lead_added_user_id = ?", leadID, scope.UserType, scope.UserID).
		Updates(map[string]interface{}{
			"assigned_user_type":  assigneeType,
			"assigned_id":         assigneeID,
			"assigned_name":       in.AssignedName,
			"assigned_emp_number": in.AssignedEmpNumber,
			"assigned_priority":   in.AssignedPriority,
			"assigned_date":       now.Date,
			"assigned_time":       now.Time,
			"updated_date":        now.Date,
			"updated_time":        now.Time,
			"follow_up_feedback":  in.FollowupFeedback,
			"next_action":         in.NextAction,
			"status_id":           statusID,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, apperror.Persistence("assign lead", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, apperror.NotFound("Lead not found")
	}

	update := model.LeadUpdate{
		LeadID:            leadID,
		UpdateDate:        now.Date,
		UpdateTime:        now.Time,
		Feedback:          optString(in.FollowupFeedback),
		NextAction:        optString(in.NextAction),
		StatusID:          &statusID,
		UpdatedByEmpType:  assigneeType,
		UpdatedByEmpID:    assigneeID,
		UpdatedByEmpName:  in.AssignedName,
		UpdatedEmpPhone:   in.AssignedEmpNumber,
		LeadAddedUserType: scope.UserType,
		LeadAddedUserID:   scope.UserID,
	}
	if err := tx.Create(&update).Error; err != nil {
		tx.Rollback()
		return nil, apperror.Persistence("record assignment history", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperror.Persistence("assign lead", err)
	}

	return s.GetLead(ctx, leadID, scope)
}
