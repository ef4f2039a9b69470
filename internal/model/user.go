package model

// CRMUser is an account in the shared user registry: admins, builders and
// their employees, distinguished by UserType.
type CRMUser struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserType uint   `json:"user_type" gorm:"index;not null"`
	Name     string `json:"name" gorm:"size:255"`
	Mobile   string `json:"mobile" gorm:"size:20;index"`
	Email    string `json:"email" gorm:"size:255"`
	Status   int    `json:"status" gorm:"default:0"`
}

func (CRMUser) TableName() string {
	return "crm_users"
}

// CoreModels are the tables this service owns and migrates.
func CoreModels() []interface{} {
	return []interface{}{
		&LeadStatus{},
		&LeadSource{},
		&Lead{},
		&LeadUpdate{},
		&BookedProperty{},
	}
}

// ExternalModels are read-only tables owned elsewhere. They are migrated only
// in tests and local development.
func ExternalModels() []interface{} {
	return []interface{}{
		&Property{},
		&CRMUser{},
	}
}
