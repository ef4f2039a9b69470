package seed

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"meetowner_crm/internal/model"
)

// ChannelPartnerSource is the source whose leads must arrive pre-assigned.
const ChannelPartnerSource = "Channel Partner"

var leadStatuses = []model.LeadStatus{
	{StatusID: 1, StatusName: "New", IsDefault: true},
	{StatusID: 3, StatusName: "Open"},
	{StatusID: 4, StatusName: "Interested"},
	{StatusID: 5, StatusName: "Site Visit Scheduled"},
	{StatusID: 6, StatusName: "Site Visit Done"},
	{StatusID: 7, StatusName: "Not Interested"},
	{StatusID: 8, StatusName: "Lost"},
}

var leadSources = []model.LeadSource{
	{LeadSourceID: 1, SourceName: "Website"},
	{LeadSourceID: 2, SourceName: "Walk-in"},
	{LeadSourceID: 3, SourceName: "Referral"},
	{LeadSourceID: 4, SourceName: "Social Media"},
	{LeadSourceID: 5, SourceName: "Property Portal"},
	{
		LeadSourceID:   6,
		SourceName:     ChannelPartnerSource,
		RequiredFields: datatypes.JSON(`["assigned_id","assigned_name","assigned_emp_number"]`),
	},
}

// SeedLeadReference inserts the default statuses and sources. Existing rows
// are left untouched. Status id 2 is skipped because status_id=2 in lead
// queries means "today's follow-ups".
func SeedLeadReference(db *gorm.DB) error {
	for _, status := range leadStatuses {
		status := status
		if err := db.Where(model.LeadStatus{StatusName: status.StatusName}).FirstOrCreate(&status).Error; err != nil {
			log.Errorf("Error seeding lead status %s: %v", status.StatusName, err)
			return err
		}
	}

	for _, source := range leadSources {
		source := source
		if err := db.Where(model.LeadSource{SourceName: source.SourceName}).FirstOrCreate(&source).Error; err != nil {
			log.Errorf("Error seeding lead source %s: %v", source.SourceName, err)
			return err
		}
	}

	log.Info("Lead reference data seeded")
	return nil
}
