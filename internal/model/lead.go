package model

// Lead is a prospective customer interested in one project. Dates are
// YYYY-MM-DD and times HH:MM:SS, both in the application time zone.
type Lead struct {
	LeadID                uint    `json:"lead_id" gorm:"column:lead_id;primaryKey"`
	CustomerName          string  `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhoneNumber   string  `json:"customer_phone_number" gorm:"size:20;not null"`
	CustomerEmail         string  `json:"customer_email" gorm:"size:255;not null"`
	InterestedProjectID   uint    `json:"interested_project_id" gorm:"index;not null"`
	InterestedProjectName string  `json:"interested_project_name" gorm:"size:255;not null"`
	LeadSourceID          uint    `json:"lead_source_id" gorm:"index;not null"`
	ChannelPartnerID      *uint   `json:"channel_partner_id"`
	ChannelPartnerName    *string `json:"channel_partner_name" gorm:"size:255"`
	ChannelPartnerMobile  *string `json:"channel_partner_mobile" gorm:"size:20"`
	Sqft                  *string `json:"sqft" gorm:"size:10"`
	Budget                *string `json:"budget" gorm:"size:20"`
	StatusID              uint    `json:"status_id" gorm:"index;not null"`
	Booked                YesNo   `json:"booked" gorm:"type:varchar(3);not null"`

	// Assignment
	AssignedUserType  *uint   `json:"assigned_user_type" gorm:"index:idx_leads_assignee"`
	AssignedID        *uint   `json:"assigned_id" gorm:"index:idx_leads_assignee"`
	AssignedName      *string `json:"assigned_name" gorm:"size:255"`
	AssignedEmpNumber *string `json:"assigned_emp_number" gorm:"size:20"`
	AssignedPriority  *string `json:"assigned_priority" gorm:"size:50"`
	AssignedDate      *string `json:"assigned_date" gorm:"size:10"`
	AssignedTime      *string `json:"assigned_time" gorm:"size:8"`

	// Latest follow-up snapshot; the full trail lives in lead_updates.
	FollowUpFeedback *string `json:"follow_up_feedback" gorm:"type:text"`
	NextAction       *string `json:"next_action" gorm:"size:255"`

	// Owning tenant (builder or admin account)
	LeadAddedUserType uint `json:"lead_added_user_type" gorm:"index:idx_leads_scope;not null"`
	LeadAddedUserID   uint `json:"lead_added_user_id" gorm:"index:idx_leads_scope;not null"`

	CreatedDate string `json:"created_date" gorm:"size:10;index;not null"`
	CreatedTime string `json:"created_time" gorm:"size:8;not null"`
	UpdatedDate string `json:"updated_date" gorm:"size:10;not null"`
	UpdatedTime string `json:"updated_time" gorm:"size:8;not null"`
}

func (Lead) TableName() string {
	return "leads"
}
