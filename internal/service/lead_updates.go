package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/apperror"
)

// LeadUpdateView is a history row with its status name resolved.
type LeadUpdateView struct {
	model.LeadUpdate
	StatusName *string `json:"status_name"`
}

// RecordUpdate appends a follow-up to the lead's history and touches the
// lead in the same transaction. The actor must be the lead's owner or its
// current assignee. A status change is applied to the lead only when one is
// supplied.
func (s *LeadService) RecordUpdate(ctx context.Context, leadID uint, in RecordUpdateInput) (*model.LeadUpdate, error) {
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	statusID := in.StatusID.Ptr()
	if statusID != nil {
		ok, err := s.statusExists(ctx, *statusID)
		if err != nil {
			return nil, apperror.Persistence("validate lead status", err)
		}
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("status_id %d does not exist", *statusID), "status_id")
		}
	}

	actorType := in.UpdatedByEmpType.mustUint()
	actorID := in.UpdatedByEmpID.mustUint()
	ok, err := s.userExists(ctx, actorID, &actorType)
	if err != nil {
		return nil, apperror.Persistence("validate employee", err)
	}
	if !ok {
		return nil, apperror.Referential("updated_by_emp_id", actorID)
	}

	now := s.now()
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperror.Persistence("update lead", tx.Error)
	}

	var lead model.Lead
	err = tx.Select("lead_id", "lead_added_user_type", "lead_added_user_id", "assigned_user_type", "assigned_id").
		Where("lead_id = ?", leadID).
		First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, apperror.NotFound("Lead not found")
	}
	if err != nil {
		tx.Rollback()
		return nil, apperror.Persistence("update lead", err)
	}
	if !canUpdate(&lead, actorType, actorID) {
		tx.Rollback()
		return nil, apperror.Forbidden("Only the lead's owner or assignee can update it")
	}

	update := model.LeadUpdate{
		LeadID:            leadID,
		UpdateDate:        now.Date,
		UpdateTime:        now.Time,
		Feedback:          optString(in.FollowUpFeedback),
		NextAction:        optString(in.NextAction),
		StatusID:          statusID,
		UpdatedByEmpType:  actorType,
		UpdatedByEmpID:    actorID,
		UpdatedByEmpName:  in.UpdatedByEmpName,
		UpdatedEmpPhone:   in.UpdatedEmpPhone,
		LeadAddedUserType: lead.LeadAddedUserType,
		LeadAddedUserID:   lead.LeadAddedUserID,
	}
	if err := tx.Create(&update).Error; err != nil {
		tx.Rollback()
		return nil, apperror.Persistence("record lead update", err)
	}

	changes := map[string]interface{}{
		"updated_date": now.Date,
		"updated_time": now.Time,
	}
	if statusID != nil {
		changes["status_id"] = *statusID
	}
	if in.NextAction != "" {
		changes["next_action"] = in.NextAction
	}
	if in.FollowUpFeedback != "" {
		changes["follow_up_feedback"] = in.FollowUpFeedback
	}
	if err := tx.Model(&model.Lead{}).Where("lead_id = ?", leadID).Updates(changes).Error; err != nil {
		tx.Rollback()
		return nil, apperror.Persistence("update lead", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperror.Persistence("update lead", err)
	}
	return &update, nil
}

// canUpdate reports whether the actor owns the lead or is its assignee.
func canUpdate(lead *model.Lead, actorType, actorID uint) bool {
	if lead.LeadAddedUserType == actorType && lead.LeadAddedUserID == actorID {
		return true
	}
	return lead.AssignedUserType != nil && lead.AssignedID != nil &&
		*lead.AssignedUserType == actorType && *lead.AssignedID == actorID
}

// ListUpdates returns a lead's history, newest first. Rows owned by another
// tenant are never returned.
func (s *LeadService) ListUpdates(ctx context.Context, leadID uint, scope Scope) ([]LeadUpdateView, error) {
	var updates []LeadUpdateView
	err := s.db.WithContext(ctx).
		Table("lead_updates AS lu").
		Select("lu.*, ls.status_name").
		Joins("LEFT JOIN lead_statuses ls ON ls.status_id = lu.status_id").
		Where("lu.lead_id = ? AND lu.lead_added_user_type = ? AND lu.lead_added_user_id = ?", leadID, scope.UserType, scope.UserID).
		Order("lu.update_date DESC, lu.update_time DESC, lu.id DESC").
		Scan(&updates).Error
	if err != nil {
		return nil, apperror.Persistence("fetch lead updates", err)
	}
	if len(updates) == 0 {
		return nil, apperror.NotFound("No updates found for the given lead_id")
	}
	for i := range updates {
		updates[i].UpdateDate = normalizeDate(updates[i].UpdateDate)
	}
	return updates, nil
}
