package monitor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
	_ "github.com/chetansierra/temperature-dashboard-sub001/pkg/testing"
)

func TestUpsertThreshold_UpdatesInPlace(t *testing.T) {
	common.SetTestLoggerNop()

	mon := GetTestMonitor(t)
	tenant, site, _, _ := seedTenantChain(t, mon)
	master := masterFor(tenant)
	ctx := context.Background()

	first, err := mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: models.ThresholdLevelSite, LevelRef: site.ID, MinValue: -25, MaxValue: -15,
	})
	require.NoError(t, err)

	// writing the same (level, level_ref) scope again updates, not duplicates
	second, err := mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: models.ThresholdLevelSite, LevelRef: site.ID, MinValue: -30, MaxValue: -18,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, -30.0, second.MinValue)
	assert.Equal(t, -18.0, second.MaxValue)

	var count int64
	require.NoError(t, mon.Db.Conn.Model(&models.Threshold{}).
		Where("tenant_id = ? AND level = ? AND level_ref = ?", tenant.ID, models.ThresholdLevelSite, site.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertThreshold_Authorization(t *testing.T) {
	common.SetTestLoggerNop()

	mon := GetTestMonitor(t)
	tenant, site, _, _ := seedTenantChain(t, mon)
	ctx := context.Background()

	input := &models.Threshold{Level: models.ThresholdLevelSite, LevelRef: site.ID, MinValue: -25, MaxValue: -15}

	// operators never write thresholds, even with the site granted
	_, err := mon.Threshold.UpsertThreshold(ctx, operatorFor(tenant, site), input)
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = mon.Threshold.UpsertThreshold(ctx, &models.Profile{ID: uuid.NewString(), Role: models.RoleAdmin}, input)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpsertThreshold_Validation(t *testing.T) {
	common.SetTestLoggerNop()

	mon := GetTestMonitor(t)
	tenant, site, _, _ := seedTenantChain(t, mon)
	master := masterFor(tenant)
	ctx := context.Background()

	_, err := mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: "building", LevelRef: site.ID, MinValue: -25, MaxValue: -15,
	})
	require.Error(t, err)

	_, err = mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: models.ThresholdLevelSite, LevelRef: site.ID, MinValue: 10, MaxValue: -10,
	})
	require.Error(t, err)
}

func TestGetThreshold_TenantScoped(t *testing.T) {
	common.SetTestLoggerNop()

	mon := GetTestMonitor(t)
	tenantA, siteA, _, _ := seedTenantChain(t, mon)
	tenantB, _, _, _ := seedTenantChain(t, mon)
	ctx := context.Background()

	_, err := mon.Threshold.UpsertThreshold(ctx, masterFor(tenantA), &models.Threshold{
		Level: models.ThresholdLevelSite, LevelRef: siteA.ID, MinValue: -25, MaxValue: -15,
	})
	require.NoError(t, err)

	got, err := mon.Threshold.GetThreshold(ctx, masterFor(tenantA), models.ThresholdLevelSite, siteA.ID)
	require.NoError(t, err)
	assert.Equal(t, -25.0, got.MinValue)

	// tenant B cannot see tenant A's threshold
	_, err = mon.Threshold.GetThreshold(ctx, masterFor(tenantB), models.ThresholdLevelSite, siteA.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEffectiveThresholdForSensor(t *testing.T) {
	common.SetTestLoggerNop()

	mon := GetTestMonitor(t)
	tenant, site, env, sensor := seedTenantChain(t, mon)
	master := masterFor(tenant)
	operator := operatorFor(tenant, site)
	ctx := context.Background()

	// org-level only: the fallback applies
	_, err := mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: models.ThresholdLevelOrg, LevelRef: tenant.ID, MinValue: -40, MaxValue: 10,
	})
	require.NoError(t, err)

	got, err := mon.Threshold.EffectiveThresholdForSensor(ctx, operator, sensor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThresholdLevelOrg, got.Level)

	// a more specific environment threshold wins
	_, err = mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: models.ThresholdLevelEnvironment, LevelRef: env.ID, MinValue: -25, MaxValue: -15,
	})
	require.NoError(t, err)

	got, err = mon.Threshold.EffectiveThresholdForSensor(ctx, operator, sensor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThresholdLevelEnvironment, got.Level)

	// sensor-level is the most specific of all
	_, err = mon.Threshold.UpsertThreshold(ctx, master, &models.Threshold{
		Level: models.ThresholdLevelSensor, LevelRef: sensor.ID, MinValue: -20, MaxValue: -18,
	})
	require.NoError(t, err)

	got, err = mon.Threshold.EffectiveThresholdForSensor(ctx, operator, sensor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThresholdLevelSensor, got.Level)

	// a caller without site access cannot probe sensor existence
	_, err = mon.Threshold.EffectiveThresholdForSensor(ctx, operatorFor(tenant), sensor.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
