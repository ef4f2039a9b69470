package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetowner_crm/internal/model"
	"meetowner_crm/internal/testutil"
	"meetowner_crm/pkg/seed"
)

func TestSeedLeadReferenceIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t) // seeds once
	require.NoError(t, seed.SeedLeadReference(db))

	var statuses, sources int64
	require.NoError(t, db.Model(&model.LeadStatus{}).Count(&statuses).Error)
	require.NoError(t, db.Model(&model.LeadSource{}).Count(&sources).Error)
	assert.Equal(t, int64(7), statuses)
	assert.Equal(t, int64(6), sources)

	var reserved int64
	require.NoError(t, db.Model(&model.LeadStatus{}).Where("status_id = ?", 2).Count(&reserved).Error)
	assert.Zero(t, reserved)

	var partner model.LeadSource
	require.NoError(t, db.Where("source_name = ?", seed.ChannelPartnerSource).First(&partner).Error)
	assert.Equal(t, []string{"assigned_id", "assigned_name", "assigned_emp_number"}, partner.Requirements())
}
