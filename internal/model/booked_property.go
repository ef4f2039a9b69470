package model

// BookedProperty records the unit sold against a lead. At most one row
// exists per lead.
type BookedProperty struct {
	BookedID    uint   `json:"booked_id" gorm:"column:booked_id;primaryKey"`
	PropertyID  uint   `json:"property_id" gorm:"index;not null"`
	LeadID      uint   `json:"lead_id" gorm:"uniqueIndex;not null"`
	FlatNumber  string `json:"flat_number" gorm:"size:50;not null"`
	FloorNumber string `json:"floor_number" gorm:"size:50;not null"`
	BlockNumber string `json:"block_number" gorm:"size:50;not null"`
	Asset       string `json:"asset" gorm:"size:100;not null"`
	Sqft        string `json:"sqft" gorm:"size:10;not null"`
	Budget      string `json:"budget" gorm:"size:20;not null"`
	BookedDate  string `json:"booked_date" gorm:"size:10"`
	BookedTime  string `json:"booked_time" gorm:"size:8"`
}

func (BookedProperty) TableName() string {
	return "booked_properties"
}
