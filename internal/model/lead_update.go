package model

// LeadUpdate is an append-only history entry for a lead.
type LeadUpdate struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	LeadID           uint    `json:"lead_id" gorm:"index;not null"`
	UpdateDate       string  `json:"update_date" gorm:"size:10;not null"`
	UpdateTime       string  `json:"update_time" gorm:"size:8;not null"`
	Feedback         *string `json:"feedback" gorm:"type:text"`
	NextAction       *string `json:"next_action" gorm:"size:255"`
	StatusID         *uint   `json:"status_id"`
	UpdatedByEmpType uint    `json:"updated_by_emp_type" gorm:"not null"`
	UpdatedByEmpID   uint    `json:"updated_by_emp_id" gorm:"not null"`
	UpdatedByEmpName string  `json:"updated_by_emp_name" gorm:"size:255;not null"`
	UpdatedEmpPhone  string  `json:"updated_emp_phone" gorm:"column:updated_emp_phone;size:20;not null"`

	// Copied from the lead so history can be filtered by tenant.
	LeadAddedUserType uint `json:"lead_added_user_type" gorm:"index:idx_lead_updates_scope"`
	LeadAddedUserID   uint `json:"lead_added_user_id" gorm:"index:idx_lead_updates_scope"`
}

func (LeadUpdate) TableName() string {
	return "lead_updates"
}
