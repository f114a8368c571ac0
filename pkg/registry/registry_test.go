// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestRegistry(t *testing.T) *ActivityRegistry {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	return reg
}

func TestLoadRegistry(t *testing.T) {
	reg := loadTestRegistry(t)

	assert.Equal(t, "1.0.0", reg.Version)
	assert.Len(t, reg.Activities, 5)
	assert.NoError(t, reg.Validate())
}

func TestRegistry_TaskTypes(t *testing.T) {
	reg := loadTestRegistry(t)

	assert.Equal(t, []string{
		"quote-vehicle-finance",
		"select-bank-offer",
		"compute-deal-profit",
		"partner-statement",
		"commission-report",
	}, reg.TaskTypes())
}

func TestRegistry_FindByTaskType(t *testing.T) {
	reg := loadTestRegistry(t)

	activity, ok := reg.FindByTaskType("select-bank-offer")
	require.True(t, ok)
	assert.Equal(t, "select-bank-offer", activity.ID)
	assert.Contains(t, activity.ErrorCodes, "NO_ELIGIBLE_OFFER")

	_, ok = reg.FindByTaskType("finance.unknown")
	assert.False(t, ok)
}

func TestRegistry_Validate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "quote-vehicle-finance"},
		{ID: "b", TaskType: "quote-vehicle-finance"},
	}}
	assert.Error(t, reg.Validate())

	reg = &ActivityRegistry{Activities: []Activity{{ID: "a"}}}
	assert.Error(t, reg.Validate())

	reg = &ActivityRegistry{}
	assert.NoError(t, reg.Validate())
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
