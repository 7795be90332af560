package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

// upsertThreshold writes the single active threshold for a (tenant, level,
// level_ref) scope; a second write at the same scope updates in place.
func (m *Monitor) upsertThreshold(ctx context.Context, actor *models.Profile, input *models.Threshold) (*models.Threshold, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryThreshold),
	)

	if !CanManageThresholds(actor, time.Now()) {
		return nil, ErrAccessDenied
	}

	switch input.Level {
	case models.ThresholdLevelOrg, models.ThresholdLevelSite,
		models.ThresholdLevelEnvironment, models.ThresholdLevelSensor:
	default:
		return nil, fmt.Errorf("%w: threshold level %q", ErrInvalidInput, input.Level)
	}
	if input.MinValue > input.MaxValue {
		return nil, fmt.Errorf("%w: threshold min %.2f above max %.2f", ErrInvalidInput, input.MinValue, input.MaxValue)
	}

	threshold := models.Threshold{
		ID:       uuid.NewString(),
		TenantID: actor.TenantID,
		Level:    input.Level,
		LevelRef: input.LevelRef,
		MinValue: input.MinValue,
		MaxValue: input.MaxValue,
	}

	err := m.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "level"}, {Name: "level_ref"}},
		DoUpdates: clause.AssignmentColumns([]string{"min_value", "max_value"}),
	}).Create(&threshold).Error
	if err != nil {
		return nil, err
	}

	logger.Info("Upserted threshold",
		zap.String("tenant_id", actor.TenantID),
		zap.String("level", string(input.Level)),
		zap.String("level_ref", input.LevelRef))

	return m.getThreshold(ctx, actor, input.Level, input.LevelRef)
}

func (m *Monitor) getThreshold(ctx context.Context, actor *models.Profile, level models.ThresholdLevel, levelRef string) (*models.Threshold, error) {
	if actor == nil || profileExpired(actor, time.Now()) {
		return nil, ErrAccessDenied
	}

	query := m.Db.Conn.WithContext(ctx)
	if actor.Role != models.RoleAdmin {
		query = query.Where("tenant_id = ?", actor.TenantID)
	}

	var threshold models.Threshold
	err := query.Where("level = ? AND level_ref = ?", level, levelRef).First(&threshold).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &threshold, nil
}

// effectiveThresholdForSensor resolves the most specific active threshold for
// a sensor: sensor, then environment, then site, then org.
func (m *Monitor) effectiveThresholdForSensor(ctx context.Context, actor *models.Profile, sensorID string) (*models.Threshold, error) {
	now := time.Now()
	conn := m.Db.Conn.WithContext(ctx)

	var sensor models.Sensor
	if err := conn.First(&sensor, "id = ?", sensorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var site models.Site
	if err := conn.First(&site, "id = ?", sensor.SiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanAccessSite(actor, &site, now) {
		return nil, ErrNotFound
	}

	scopes := []struct {
		level models.ThresholdLevel
		ref   string
	}{
		{models.ThresholdLevelSensor, sensor.ID},
		{models.ThresholdLevelEnvironment, sensor.EnvironmentID},
		{models.ThresholdLevelSite, sensor.SiteID},
		{models.ThresholdLevelOrg, sensor.TenantID},
	}

	for _, scope := range scopes {
		var threshold models.Threshold
		err := conn.
			Where("tenant_id = ? AND level = ? AND level_ref = ?", sensor.TenantID, scope.level, scope.ref).
			First(&threshold).Error
		if err == nil {
			return &threshold, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

type IThresholdImpl struct {
	mon *Monitor
}

func (it *IThresholdImpl) UpsertThreshold(ctx context.Context, actor *models.Profile, input *models.Threshold) (*models.Threshold, error) {
	return it.mon.upsertThreshold(ctx, actor, input)
}

func (it *IThresholdImpl) GetThreshold(ctx context.Context, actor *models.Profile, level models.ThresholdLevel, levelRef string) (*models.Threshold, error) {
	return it.mon.getThreshold(ctx, actor, level, levelRef)
}

func (it *IThresholdImpl) EffectiveThresholdForSensor(ctx context.Context, actor *models.Profile, sensorID string) (*models.Threshold, error) {
	return it.mon.effectiveThresholdForSensor(ctx, actor, sensorID)
}

func (m *Monitor) GetIThreshold() IThreshold {
	return &IThresholdImpl{mon: m}
}
