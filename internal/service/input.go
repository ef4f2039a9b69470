package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a numeric value that clients send either as a JSON number or as
// a string. The raw text is kept, so "1200.50" keeps its trailing zero, and
// its shape is checked by the "integer" or "decimal2" validation rule.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	*n = Number(raw)
	return nil
}

// Uint parses n. Callers validate first, so the error path is rare.
func (n Number) Uint() (uint, error) {
	v, err := strconv.ParseUint(string(n), 10, 64)
	return uint(v), err
}

// Ptr returns nil for an absent value.
func (n Number) Ptr() *uint {
	if n == "" {
		return nil
	}
	v, err := n.Uint()
	if err != nil {
		return nil
	}
	return &v
}

func (n Number) mustUint() uint {
	v, _ := n.Uint()
	return v
}

// CreateLeadInput is the payload of POST /leads.
type CreateLeadInput struct {
	CustomerName          string `json:"customer_name" validate:"required,max=255"`
	CustomerPhoneNumber   string `json:"customer_phone_number" validate:"required,phone"`
	CustomerEmail         string `json:"customer_email" validate:"required,email,max=255"`
	InterestedProjectID   Number `json:"interested_project_id" validate:"required,integer"`
	InterestedProjectName string `json:"interested_project_name" validate:"required,max=255"`
	LeadSourceID          Number `json:"lead_source_id" validate:"required,integer"`
	LeadAddedUserType     Number `json:"lead_added_user_type" validate:"required,integer"`
	LeadAddedUserID       Number `json:"lead_added_user_id" validate:"required,integer"`

	ChannelPartnerID     Number `json:"channel_partner_id" validate:"omitempty,integer"`
	ChannelPartnerName   string `json:"channel_partner_name" validate:"omitempty,max=255"`
	ChannelPartnerMobile string `json:"channel_partner_mobile" validate:"omitempty,phone"`

	AssignedUserType  Number `json:"assigned_user_type" validate:"omitempty,integer"`
	AssignedID        Number `json:"assigned_id" validate:"omitempty,integer"`
	AssignedName      string `json:"assigned_name" validate:"omitempty,max=255"`
	AssignedEmpNumber string `json:"assigned_emp_number" validate:"omitempty,max=20"`
	AssignedPriority  string `json:"assigned_priority" validate:"omitempty,max=50"`

	Sqft   Number `json:"sqft" validate:"omitempty,max=10,decimal2"`
	Budget Number `json:"budget" validate:"omitempty,max=20,decimal2"`
}

// provided reports which optional fields carry a value, keyed by JSON name.
// Source requirements are expressed in these names.
func (in CreateLeadInput) provided() map[string]bool {
	return map[string]bool{
		"channel_partner_id":     in.ChannelPartnerID != "",
		"channel_partner_name":   in.ChannelPartnerName != "",
		"channel_partner_mobile": in.ChannelPartnerMobile != "",
		"assigned_user_type":     in.AssignedUserType != "",
		"assigned_id":            in.AssignedID != "",
		"assigned_name":          in.AssignedName != "",
		"assigned_emp_number":    in.AssignedEmpNumber != "",
		"assigned_priority":      in.AssignedPriority != "",
		"sqft":                   in.Sqft != "",
		"budget":                 in.Budget != "",
	}
}

// AssignLeadInput is the payload of POST /leads/:id/assign.
type AssignLeadInput struct {
	AssignedUserType  Number `json:"assigned_user_type" validate:"required,integer"`
	AssignedID        Number `json:"assigned_id" validate:"required,integer"`
	AssignedName      string `json:"assigned_name" validate:"required,max=255"`
	AssignedEmpNumber string `json:"assigned_emp_number" validate:"required,max=20"`
	AssignedPriority  string `json:"assigned_priority" validate:"required,max=50"`
	FollowupFeedback  string `json:"followup_feedback" validate:"required"`
	NextAction        string `json:"next_action" validate:"required,max=255"`
	LeadAddedUserType Number `json:"lead_added_user_type" validate:"required,integer"`
	LeadAddedUserID   Number `json:"lead_added_user_id" validate:"required,integer"`
	StatusID          Number `json:"status_id" validate:"omitempty,integer"`
}

// RecordUpdateInput is the payload of POST /leads/:id/updates.
type RecordUpdateInput struct {
	FollowUpFeedback string `json:"follow_up_feedback"`
	NextAction       string `json:"next_action" validate:"omitempty,max=255"`
	StatusID         Number `json:"status_id" validate:"omitempty,integer"`
	UpdatedByEmpType Number `json:"updated_by_emp_type" validate:"required,integer"`
	UpdatedByEmpID   Number `json:"updated_by_emp_id" validate:"required,integer"`
	UpdatedByEmpName string `json:"updated_by_emp_name" validate:"required,max=255"`
	UpdatedEmpPhone  string `json:"updated_emp_phone" validate:"required,max=20"`
}

// CompleteBookingInput is the payload of POST /leads/:id/book.
type CompleteBookingInput struct {
	LeadAddedUserType Number `json:"lead_added_user_type" validate:"required,integer"`
	LeadAddedUserID   Number `json:"lead_added_user_id" validate:"required,integer"`
	PropertyID        Number `json:"property_id" validate:"required,integer"`
	FlatNumber        string `json:"flat_number" validate:"required,max=50"`
	FloorNumber       string `json:"floor_number" validate:"required,max=50"`
	BlockNumber       string `json:"block_number" validate:"required,max=50"`
	Asset             string `json:"asset" validate:"required,max=100"`
	Sqft              Number `json:"sqft" validate:"required,max=10,decimal2"`
	Budget            Number `json:"budget" validate:"required,max=20,decimal2"`
}
