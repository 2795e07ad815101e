package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.InDelta(t, float64(models.DefaultConsultationFee), cfg.ConsultationFee, 0.001)
	assert.False(t, cfg.SeedCatalog)
}

func TestLoadConfigReadsOverrides(t *testing.T) {
	t.Setenv("CONSULTATION_FEE", "350")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("SEED_CATALOG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.InDelta(t, 350.0, cfg.ConsultationFee, 0.001)
	assert.Equal(t, 2, cfg.SessionTTLHours)
	assert.True(t, cfg.SeedCatalog)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
