package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

// subBatchSize bounds per-insert work for large device batches.
const subBatchSize = 100

type ReadingInput struct {
	SensorID  string
	Timestamp time.Time
	Value     float64
	Humidity  *float64
}

type RowError struct {
	Index    int    `json:"index"`
	SensorID string `json:"sensor_id,omitempty"`
	Reason   string `json:"reason"`
}

type IngestResult struct {
	Success   bool       `json:"success"`
	Processed int        `json:"processed"`
	Errors    []RowError `json:"errors,omitempty"`
}

// processBatch validates and appends readings for one authenticated tenant.
// Unknown and inactive sensors become per-row errors; a failed sub-batch
// insert is recorded and processing continues with the next sub-batch.
// Partial success is success.
func (m *Monitor) processBatch(ctx context.Context, tenantID string, rows []ReadingInput) (*IngestResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameMonitorCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryIngest),
	)

	result := &IngestResult{}

	for start := 0; start < len(rows); start += subBatchSize {
		end := min(start+subBatchSize, len(rows))
		chunk := rows[start:end]

		sensorIDs := common.Mapper(chunk, func(r ReadingInput) string { return r.SensorID })

		var sensors []models.Sensor
		err := m.Db.Conn.WithContext(ctx).
			Where("id IN ? AND tenant_id = ?", sensorIDs, tenantID).
			Find(&sensors).Error
		if err != nil {
			// dependency failure looking up this chunk; the rest may still land
			result.Errors = append(result.Errors, RowError{
				Index:  start,
				Reason: fmt.Sprintf("sensor lookup failed: %v", err),
			})
			continue
		}

		statusByID := make(map[string]models.SensorStatus, len(sensors))
		for _, s := range sensors {
			statusByID[s.ID] = s.Status
		}

		var readings []models.Reading
		var accepted []int
		for i, row := range chunk {
			status, known := statusByID[row.SensorID]
			if !known {
				result.Errors = append(result.Errors, RowError{
					Index:    start + i,
					SensorID: row.SensorID,
					Reason:   "unknown sensor",
				})
				continue
			}
			if status == models.SensorStatusInactive {
				result.Errors = append(result.Errors, RowError{
					Index:    start + i,
					SensorID: row.SensorID,
					Reason:   "sensor inactive",
				})
				continue
			}
			readings = append(readings, models.Reading{
				SensorID:  row.SensorID,
				Timestamp: row.Timestamp,
				Value:     row.Value,
				Humidity:  row.Humidity,
			})
			accepted = append(accepted, start+i)
		}

		if len(readings) == 0 {
			continue
		}

		if err := m.Db.Conn.WithContext(ctx).Create(&readings).Error; err != nil {
			logger.Warn("Sub-batch insert failed",
				zap.String("tenant_id", tenantID),
				zap.Int("offset", start),
				zap.Error(err))
			result.Errors = append(result.Errors, RowError{
				Index:  accepted[0],
				Reason: fmt.Sprintf("insert failed for %d readings: %v", len(readings), err),
			})
			continue
		}

		result.Processed += len(readings)
	}

	result.Success = result.Processed > 0

	logger.Info("Ingest batch processed",
		zap.String("tenant_id", tenantID),
		zap.Int("received", len(rows)),
		zap.Int("processed", result.Processed),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

const maxWindowRows = 1000

// ReadingsWindow returns readings for one sensor inside [from, to), newest
// first, capped at maxWindowRows. Sensors outside the actor's site scope
// answer ErrNotFound.
func (m *Monitor) ReadingsWindow(ctx context.Context, actor *models.Profile, sensorID string, from, to time.Time, limit int) ([]models.Reading, error) {
	var sensor models.Sensor
	if err := m.Db.Conn.WithContext(ctx).First(&sensor, "id = ?", sensorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var site models.Site
	if err := m.Db.Conn.WithContext(ctx).First(&site, "id = ?", sensor.SiteID).Error; err != nil {
		return nil, err
	}
	if !CanAccessSite(actor, &site, time.Now()) {
		return nil, ErrNotFound
	}

	if limit <= 0 || limit > maxWindowRows {
		limit = maxWindowRows
	}

	query := m.Db.Conn.WithContext(ctx).Where("sensor_id = ?", sensorID)
	if !from.IsZero() {
		query = query.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("timestamp < ?", to)
	}

	var readings []models.Reading
	if err := query.Order("timestamp desc").Limit(limit).Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

type IIngestImpl struct {
	mon *Monitor
}

func (ii *IIngestImpl) ProcessBatch(ctx context.Context, tenantID string, rows []ReadingInput) (*IngestResult, error) {
	return ii.mon.processBatch(ctx, tenantID, rows)
}

func (m *Monitor) GetIIngest() IIngest {
	return &IIngestImpl{mon: m}
}
