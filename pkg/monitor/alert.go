package monitor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

type BulkResult struct {
	AlertID string `json:"alert_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

type AlertQuery struct {
	Status   models.AlertStatus
	Severity models.AlertSeverity
	SiteID   string
	Page     int
	PageSize int
}

type AlertPage struct {
	Alerts   []models.Alert `json:"alerts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// loadAlertForManage fetches the alert and runs the authorization gate before
// any mutation. Cross-tenant ids answer ErrNotFound so existence stays hidden.
func (m *Monitor) loadAlertForManage(ctx context.Context, alertID string, actor *models.Profile, now time.Time) (*models.Alert, error) {
	conn := m.Db.Conn.WithContext(ctx)

	var alert models.Alert
	if err := conn.First(&alert, "id = ?", alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var site models.Site
	if err := conn.First(&site, "id = ?", alert.SiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanAccessSite(actor, &site, now) {
		return nil, ErrNotFound
	}
	if !CanManageAlerts(actor, &site, now) {
		return nil, ErrAccessDenied
	}
	return &alert, nil
}

func (m *Monitor) acknowledge(ctx context.Context, alertID string, actor *models.Profile) (*models.Alert, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	now := time.Now()
	alert, err := m.loadAlertForManage(ctx, alertID, actor, now)
	if err != nil {
		return nil, err
	}

	// conditioned on the current status so two concurrent operators cannot
	// both win against stale state
	res := m.Db.Conn.WithContext(ctx).
		Model(&models.Alert{}).
		Where("id = ? AND status = ?", alert.ID, models.AlertStatusOpen).
		Updates(map[string]any{
			"status":          models.AlertStatusAcknowledged,
			"acknowledged_at": now,
			"acknowledged_by": actor.ID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: cannot acknowledge alert in status %q", ErrInvalidState, alert.Status)
	}

	logger.Info("Alert acknowledged",
		zap.String("alert_id", alert.ID),
		zap.String("actor_id", actor.ID))

	return m.reloadAlert(ctx, alert.ID)
}

func (m *Monitor) resolve(ctx context.Context, alertID string, actor *models.Profile, notes string) (*models.Alert, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	now := time.Now()
	alert, err := m.loadAlertForManage(ctx, alertID, actor, now)
	if err != nil {
		return nil, err
	}

	// Two attempts: if a concurrent acknowledge moves the alert under us the
	// reread picks up the new status and the resolve still goes through.
	for attempt := 0; attempt < 2; attempt++ {
		if alert.Status == models.AlertStatusResolved {
			return nil, fmt.Errorf("%w: alert already resolved", ErrInvalidState)
		}

		updates := map[string]any{
			"status":           models.AlertStatusResolved,
			"resolved_at":      now,
			"resolved_by":      actor.ID,
			"resolution_notes": notes,
		}
		if alert.Status == models.AlertStatusOpen {
			// skipping acknowledgment back-fills it with the resolver
			updates["acknowledged_at"] = now
			updates["acknowledged_by"] = actor.ID
		}

		res := m.Db.Conn.WithContext(ctx).
			Model(&models.Alert{}).
			Where("id = ? AND status = ?", alert.ID, alert.Status).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			logger.Info("Alert resolved",
				zap.String("alert_id", alert.ID),
				zap.String("actor_id", actor.ID))
			return m.reloadAlert(ctx, alert.ID)
		}

		if alert, err = m.reloadAlert(ctx, alert.ID); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: alert changed concurrently", ErrInvalidState)
}

func (m *Monitor) reloadAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	var alert models.Alert
	if err := m.Db.Conn.WithContext(ctx).First(&alert, "id = ?", alertID).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// Bulk variants apply the per-item state check independently; a mixed batch
// partially succeeds and reports per-item outcome.
func (m *Monitor) acknowledgeBulk(ctx context.Context, alertIDs []string, actor *models.Profile) []BulkResult {
	return common.Mapper(alertIDs, func(id string) BulkResult {
		if _, err := m.acknowledge(ctx, id, actor); err != nil {
			return BulkResult{AlertID: id, OK: false, Error: err.Error()}
		}
		return BulkResult{AlertID: id, OK: true}
	})
}

func (m *Monitor) resolveBulk(ctx context.Context, alertIDs []string, actor *models.Profile, notes string) []BulkResult {
	return common.Mapper(alertIDs, func(id string) BulkResult {
		if _, err := m.resolve(ctx, id, actor, notes); err != nil {
			return BulkResult{AlertID: id, OK: false, Error: err.Error()}
		}
		return BulkResult{AlertID: id, OK: true}
	})
}

func (m *Monitor) listAlerts(ctx context.Context, actor *models.Profile, q AlertQuery) (*AlertPage, error) {
	now := time.Now()

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	empty := &AlertPage{Alerts: []models.Alert{}, Page: page, PageSize: pageSize}

	siteIDs, all := SiteScope(actor, now)
	if !all && len(siteIDs) == 0 {
		return empty, nil
	}

	query := m.Db.Conn.WithContext(ctx).Model(&models.Alert{})
	if actor.Role != models.RoleAdmin {
		query = query.Where("tenant_id = ?", actor.TenantID)
	}
	if !all {
		query = query.Where("site_id IN ?", siteIDs)
	}
	if q.SiteID != "" {
		// a filter outside the caller's scope answers empty, not forbidden
		if !all && !slices.Contains(siteIDs, q.SiteID) {
			return empty, nil
		}
		query = query.Where("site_id = ?", q.SiteID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Severity != "" {
		query = query.Where("severity = ?", q.Severity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var alerts []models.Alert
	err := query.
		Order("opened_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	return &AlertPage{Alerts: alerts, Total: total, Page: page, PageSize: pageSize}, nil
}

type IAlertImpl struct {
	mon *Monitor
}

func (ia *IAlertImpl) Acknowledge(ctx context.Context, alertID string, actor *models.Profile) (*models.Alert, error) {
	return ia.mon.acknowledge(ctx, alertID, actor)
}

func (ia *IAlertImpl) Resolve(ctx context.Context, alertID string, actor *models.Profile, notes string) (*models.Alert, error) {
	return ia.mon.resolve(ctx, alertID, actor, notes)
}

func (ia *IAlertImpl) AcknowledgeBulk(ctx context.Context, alertIDs []string, actor *models.Profile) []BulkResult {
	return ia.mon.acknowledgeBulk(ctx, alertIDs, actor)
}

func (ia *IAlertImpl) ResolveBulk(ctx context.Context, alertIDs []string, actor *models.Profile, notes string) []BulkResult {
	return ia.mon.resolveBulk(ctx, alertIDs, actor, notes)
}

func (ia *IAlertImpl) ListAlerts(ctx context.Context, actor *models.Profile, q AlertQuery) (*AlertPage, error) {
	return ia.mon.listAlerts(ctx, actor, q)
}

func (m *Monitor) GetIAlert() IAlert {
	return &IAlertImpl{mon: m}
}
