package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestYesNo(t *testing.T) {
	t.Run("persists as legacy strings", func(t *testing.T) {
		v, err := YesNo(true).Value()
		require.NoError(t, err)
		assert.Equal(t, "Yes", v)

		v, err = YesNo(false).Value()
		require.NoError(t, err)
		assert.Equal(t, "No", v)
	})

	t.Run("scans strings bytes and nil", func(t *testing.T) {
		var y YesNo
		require.NoError(t, y.Scan("Yes"))
		assert.True(t, bool(y))
		require.NoError(t, y.Scan([]byte("No")))
		assert.False(t, bool(y))
		require.NoError(t, y.Scan(nil))
		assert.False(t, bool(y))
		assert.Error(t, y.Scan(42))
	})

	t.Run("renders as JSON boolean", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Booked YesNo `json:"booked"`
		}{Booked: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"booked":true}`, string(out))
	})
}

func TestLeadSourceRequirements(t *testing.T) {
	src := LeadSource{RequiredFields: datatypes.JSON(`["assigned_id","assigned_name"]`)}
	assert.Equal(t, []string{"assigned_id", "assigned_name"}, src.Requirements())

	assert.Nil(t, LeadSource{}.Requirements())
	assert.Nil(t, LeadSource{RequiredFields: datatypes.JSON(`{"bad":1}`)}.Requirements())
}
