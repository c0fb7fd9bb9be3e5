package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/internal/store/memory"
	"github.com/plantmetrics/plantpulse/internal/store/sqlite"
	"github.com/plantmetrics/plantpulse/pkg/types"
)

func TestNewStore_Memory(t *testing.T) {
	st, err := newStore(context.Background(), &types.ProjectConfig{Provider: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, st)
}

func TestNewStore_SQLite(t *testing.T) {
	cfg := &types.ProjectConfig{
		Provider: "sqlite",
		SQLite:   &types.SQLiteConfig{Path: filepath.Join(t.TempDir(), "plant.db")},
	}
	st, err := newStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, st)
	require.NoError(t, st.Stop(context.Background()))
}

func TestNewStore_SQLiteRequiresPath(t *testing.T) {
	_, err := newStore(context.Background(), &types.ProjectConfig{Provider: "sqlite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite config is required")
}

func TestNewStore_UnknownProvider(t *testing.T) {
	_, err := newStore(context.Background(), &types.ProjectConfig{Provider: "cassandra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestScopeFlags_MergeOverridesConfig(t *testing.T) {
	flags := scopeFlags{machine: "M2", from: "2026-03-05"}
	base := &types.Scope{Line: "L1", MachineID: "M1", DateTo: "2026-03-10"}

	scope, err := flags.merge(base)
	require.NoError(t, err)

	assert.Equal(t, "L1", scope.Line)
	assert.Equal(t, "M2", scope.MachineID)
	assert.Equal(t, "2026-03-05", scope.DateFrom)
	assert.Equal(t, "2026-03-10", scope.DateTo)
}

func TestScopeFlags_MergeNilBase(t *testing.T) {
	flags := scopeFlags{shift: types.ShiftNight}

	scope, err := flags.merge(nil)
	require.NoError(t, err)
	assert.Equal(t, types.Scope{Shift: types.ShiftNight}, scope)
}

func TestScopeFlags_RejectsBadDate(t *testing.T) {
	flags := scopeFlags{from: "03/05/2026"}

	_, err := flags.merge(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestScopeFlags_RejectsUnknownShift(t *testing.T) {
	flags := scopeFlags{shift: "graveyard"}

	_, err := flags.merge(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shift")
}
