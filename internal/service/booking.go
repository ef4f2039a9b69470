package service

import (
	"context"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/apperror"
)

type BookingResult struct {
	LeadID   uint `json:"lead_id"`
	BookedID uint `json:"booked_id"`
}

// BookedLeadView is a booked lead joined with its unit and project details.
// Joined columns are nil when the related row is missing.
type BookedLeadView struct {
	model.Lead
	BookedID         *uint   `json:"booked_id" gorm:"column:booked_id"`
	BookedPropertyID *uint   `json:"booked_property_id" gorm:"column:booked_property_id"`
	FlatNumber       *string `json:"flat_number" gorm:"column:flat_number"`
	FloorNumber      *string `json:"floor_number" gorm:"column:floor_number"`
	BlockNumber      *string `json:"block_number" gorm:"column:block_number"`
	Asset            *string `json:"asset" gorm:"column:asset"`
	BookedSqft       *string `json:"booked_sqft" gorm:"column:booked_sqft"`
	BookedBudget     *string `json:"booked_budget" gorm:"column:booked_budget"`
	BookedDate       *string `json:"booked_date" gorm:"column:booked_date"`
	ProjectName      *string `json:"project_name" gorm:"column:project_name"`
	PropertySubtype  *string `json:"property_subtype" gorm:"column:property_subtype"`
	State            *string `json:"state" gorm:"column:state"`
	City             *string `json:"city" gorm:"column:city"`
}

// CompleteBooking marks the lead booked and records the unit sold. The flag
// flip and the booked_properties insert commit together or not at all. A
// lead that is already booked is rejected.
func (s *LeadService) CompleteBooking(ctx context.Context, leadID uint, in CompleteBookingInput) (*BookingResult, error) {
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	scope := Scope{UserType: in.LeadAddedUserType.mustUint(), UserID: in.LeadAddedUserID.mustUint()}
	propertyID := in.PropertyID.mustUint()

	ok, err := exists(ctx, s.db, &model.Property{}, "property_id = ?", propertyID)
	if err != nil {
		return nil, apperror.Persistence("validate property", err)
	}
	if !ok {
		return nil, apperror.Referential("property_id", propertyID)
	}

	now := s.now()
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperror.Persistence("complete booking", tx.Error)
	}

	result := tx.Model(&model.Lead{}).
		Where("lead_id = ? AND lead_added_user_type = ? AND lead_added_user_id = ?", leadID, scope.UserType, scope.UserID).
		Where("booked = ?", model.NoValue).
		Updates(map[string]interface{}{
			"booked":       model.YesValue,
			"updated_date": now.Date,
			"updated_time": now.Time,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, apperror.Persistence("complete booking", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, s.bookingMiss(ctx, leadID, scope)
	}

	booking := model.BookedProperty{
		PropertyID:  propertyID,
		LeadID:      leadID,
		FlatNumber:  in.FlatNumber,
		FloorNumber: in.FloorNumber,
		BlockNumber: in.BlockNumber,
		Asset:       in.Asset,
		Sqft:        string(in.Sqft),
		Budget:      string(in.Budget),
		BookedDate:  now.Date,
		BookedTime:  now.Time,
	}
	created := tx.Create(&booking)
	if created.Error != nil {
		tx.Rollback()
		return nil, apperror.Persistence("record booked property", created.Error)
	}
	if created.RowsAffected == 0 {
		tx.Rollback()
		return nil, apperror.Persistence("record booked property", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperror.Persistence("complete booking", err)
	}
	return &BookingResult{LeadID: leadID, BookedID: booking.BookedID}, nil
}

// bookingMiss explains why the guarded UPDATE matched nothing.
func (s *LeadService) bookingMiss(ctx context.Context, leadID uint, scope Scope) error {
	booked, err := exists(ctx, s.db, &model.Lead{},
		"lead_id = ? AND lead_added_user_type = ? AND lead_added_user_id = ? AND booked = ?",
		leadID, scope.UserType, scope.UserID, model.YesValue)
	if err != nil {
		return apperror.Persistence("complete booking", err)
	}
	if booked {
		return apperror.Conflict("Lead is already booked")
	}
	return apperror.NotFound("Lead not found or not owned by this user")
}

// ListBookedLeads returns the tenant's booked leads with unit and project
// details, newest first.
func (s *LeadService) ListBookedLeads(ctx context.Context, scope Scope, filter BookedFilter) ([]BookedLeadView, error) {
	query := s.db.WithContext(ctx).
		Table("leads AS l").
		Select(`l.*,
			bp.booked_id, bp.property_id AS booked_property_id,
			bp.flat_number, bp.floor_number, bp.block_number, bp.asset,
			bp.sqft AS booked_sqft, bp.budget AS booked_budget, bp.booked_date,
			p.project_name, p.property_subtype, p.state, p.city`).
		Joins("LEFT JOIN booked_properties bp ON bp.lead_id = l.lead_id").
		Joins("LEFT JOIN property p ON p.property_id = bp.property_id").
		Where("l.lead_added_user_type = ? AND l.lead_added_user_id = ?", scope.UserType, scope.UserID).
		Where("l.booked = ?", model.YesValue)

	if filter.LeadID != nil {
		query = query.Where("l.lead_id = ?", *filter.LeadID)
	}
	if filter.Assignee != nil {
		query = query.Where("l.assigned_user_type = ? AND l.assigned_id = ?", filter.Assignee.UserType, filter.Assignee.ID)
	}

	var leads []BookedLeadView
	if err := query.Order("l.created_date DESC, l.created_time DESC, l.lead_id DESC").Scan(&leads).Error; err != nil {
		return nil, apperror.Persistence("fetch booked leads", err)
	}
	if len(leads) == 0 {
		return nil, apperror.NotFound("No booked leads found for the given user")
	}
	for i := range leads {
		normalizeLeadDates(&leads[i].Lead)
	}
	return leads, nil
}
