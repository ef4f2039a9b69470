package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/apperror"
)

// OpenStatusName is the status assigned leads fall back to.
const OpenStatusName = "open"

func (s *LeadService) ListLeadSources(ctx context.Context) ([]model.LeadSource, error) {
	var sources []model.LeadSource
	if err := s.db.WithContext(ctx).Order("lead_source_id").Find(&sources).Error; err != nil {
		return nil, apperror.Persistence("fetch lead sources", err)
	}
	return sources, nil
}

func (s *LeadService) ListLeadStatuses(ctx context.Context) ([]model.LeadStatus, error) {
	var statuses []model.LeadStatus
	if err := s.db.WithContext(ctx).Order("status_id").Find(&statuses).Error; err != nil {
		return nil, apperror.Persistence("fetch lead statuses", err)
	}
	return statuses, nil
}

// DefaultStatus returns the status new leads start in.
func (s *LeadService) DefaultStatus(ctx context.Context) (*model.LeadStatus, error) {
	var status model.LeadStatus
	err := s.db.WithContext(ctx).Where("is_default = ?", true).Order("status_id").First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Configuration("No default lead status is configured")
	}
	if err != nil {
		return nil, apperror.Persistence("resolve default lead status", err)
	}
	return &status, nil
}

// OpenStatus returns the status named "open", matched case-insensitively.
func (s *LeadService) OpenStatus(ctx context.Context) (*model.LeadStatus, error) {
	var status model.LeadStatus
	err := s.db.WithContext(ctx).Where("LOWER(status_name) = ?", OpenStatusName).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Configuration("No lead status named 'open' is configured")
	}
	if err != nil {
		return nil, apperror.Persistence("resolve open lead status", err)
	}
	return &status, nil
}

func (s *LeadService) statusExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, s.db, &model.LeadStatus{}, "status_id = ?", id)
}

// source loads a lead source, or nil when it does not exist.
func (s *LeadService) source(ctx context.Context, id uint) (*model.LeadSource, error) {
	var src model.LeadSource
	err := s.db.WithContext(ctx).Where("lead_source_id = ?", id).First(&src).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &src, nil
}

// FindUser loads an account from the shared user registry.
func (s *LeadService) FindUser(ctx context.Context, id uint) (*model.CRMUser, error) {
	var user model.CRMUser
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Persistence("fetch user", err)
	}
	return &user, nil
}
