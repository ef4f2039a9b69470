package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// LeadStatus is a funnel stage. Exactly one row is flagged default.
type LeadStatus struct {
	StatusID   uint   `json:"status_id" gorm:"column:status_id;primaryKey"`
	StatusName string `json:"status_name" gorm:"size:100;uniqueIndex;not null"`
	IsDefault  bool   `json:"is_default" gorm:"default:false"`
}

func (LeadStatus) TableName() string {
	return "lead_statuses"
}

// LeadSource is the channel a lead came from. RequiredFields lists the
// request fields that become mandatory for leads from this source.
type LeadSource struct {
	LeadSourceID   uint           `json:"lead_source_id" gorm:"column:lead_source_id;primaryKey"`
	SourceName     string         `json:"source_name" gorm:"size:100;uniqueIndex;not null"`
	RequiredFields datatypes.JSON `json:"required_fields"`
}

func (LeadSource) TableName() string {
	return "lead_source"
}

// Requirements decodes RequiredFields. Malformed JSON yields no requirements.
func (s LeadSource) Requirements() []string {
	if len(s.RequiredFields) == 0 {
		return nil
	}
	var fields []string
	if err := json.Unmarshal(s.RequiredFields, &fields); err != nil {
		return nil
	}
	return fields
}
