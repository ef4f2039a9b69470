package model

// Property is the catalog row a lead is interested in. The catalog is owned
// by another service; this service only reads it.
type Property struct {
	PropertyID      uint   `json:"property_id" gorm:"column:property_id;primaryKey"`
	ProjectName     string `json:"project_name" gorm:"size:255"`
	PropertySubtype string `json:"property_subtype" gorm:"size:100"`
	State           string `json:"state" gorm:"size:100"`
	City            string `json:"city" gorm:"size:100"`
	UserID          uint   `json:"user_id" gorm:"index"`
	PostedBy        uint   `json:"posted_by"`
}

func (Property) TableName() string {
	return "property"
}
