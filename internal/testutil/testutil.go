package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/database"
	"meetowner_crm/pkg/seed"
)

// User types used across tests, mirroring the production registry.
const (
	AdminType    uint = 1
	BuilderType  uint = 2
	EmployeeType uint = 4
)

// Fixed ids created by SetupTestDB.
const (
	BuilderID      uint = 10
	OtherBuilderID uint = 11
	EmployeeID     uint = 42
	AdminID        uint = 1
	ProjectID      uint = 100
)

// Now is the instant returned by FixedClock.
var Now = time.Date(2026, 10, 16, 11, 30, 0, 0, time.UTC)

func FixedClock() time.Time { return Now }

// SetupTestDB opens an isolated in-memory SQLite database with every table
// migrated, reference data seeded and a small user/property fixture set.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serialises
	// transactions the way row locks would.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	models := append(model.CoreModels(), model.ExternalModels()...)
	require.NoError(t, database.MigrateDatabase(db, models...))
	require.NoError(t, seed.SeedLeadReference(db))

	users := []model.CRMUser{
		{ID: AdminID, UserType: AdminType, Name: "Admin", Mobile: "9000000001", Email: "admin@example.com"},
		{ID: BuilderID, UserType: BuilderType, Name: "Skyline Builders", Mobile: "9000000010", Email: "sales@skyline.example.com"},
		{ID: OtherBuilderID, UserType: BuilderType, Name: "Harbor Homes", Mobile: "9000000011", Email: "crm@harbor.example.com"},
		{ID: EmployeeID, UserType: EmployeeType, Name: "Priya Sharma", Mobile: "9876500042", Email: "priya@skyline.example.com"},
	}
	require.NoError(t, db.Create(&users).Error)

	require.NoError(t, db.Create(&model.Property{
		PropertyID:      ProjectID,
		ProjectName:     "Skyline Residency",
		PropertySubtype: "Apartment",
		State:           "Telangana",
		City:            "Hyderabad",
		UserID:          BuilderID,
		PostedBy:        BuilderType,
	}).Error)

	return db
}

// CreateLead inserts a lead row directly, bypassing validation. Overrides
// are applied after the defaults.
func CreateLead(t *testing.T, db *gorm.DB, override func(*model.Lead)) model.Lead {
	t.Helper()
	lead := model.Lead{
		CustomerName:          "Anil Kumar",
		CustomerPhoneNumber:   "9876543210",
		CustomerEmail:         "anil@example.com",
		InterestedProjectID:   ProjectID,
		InterestedProjectName: "Skyline Residency",
		LeadSourceID:          1,
		StatusID:              1,
		LeadAddedUserType:     BuilderType,
		LeadAddedUserID:       BuilderID,
		CreatedDate:           Now.Format("2006-01-02"),
		CreatedTime:           Now.Format("15:04:05"),
		UpdatedDate:           Now.Format("2006-01-02"),
		UpdatedTime:           Now.Format("15:04:05"),
	}
	if override != nil {
		override(&lead)
	}
	require.NoError(t, db.Create(&lead).Error)
	return lead
}

// CountUpdates returns the number of history rows for a lead.
func CountUpdates(t *testing.T, db *gorm.DB, leadID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.LeadUpdate{}).Where("lead_id = ?", leadID).Count(&n).Error)
	return n
}
