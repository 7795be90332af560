package monitor

import (
	"context"
	"errors"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/db"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidState reports a rejected alert transition. Duplicate operator
	// actions surface this instead of silently no-oping.
	ErrInvalidState = errors.New("invalid alert state transition")
	ErrInvalidInput = errors.New("invalid input")
)

type IIngest interface {
	ProcessBatch(ctx context.Context, tenantID string, rows []ReadingInput) (*IngestResult, error)
}

type IAlert interface {
	Acknowledge(ctx context.Context, alertID string, actor *models.Profile) (*models.Alert, error)
	Resolve(ctx context.Context, alertID string, actor *models.Profile, notes string) (*models.Alert, error)
	AcknowledgeBulk(ctx context.Context, alertIDs []string, actor *models.Profile) []BulkResult
	ResolveBulk(ctx context.Context, alertIDs []string, actor *models.Profile, notes string) []BulkResult
	ListAlerts(ctx context.Context, actor *models.Profile, q AlertQuery) (*AlertPage, error)
}

type IThreshold interface {
	UpsertThreshold(ctx context.Context, actor *models.Profile, input *models.Threshold) (*models.Threshold, error)
	GetThreshold(ctx context.Context, actor *models.Profile, level models.ThresholdLevel, levelRef string) (*models.Threshold, error)
	EffectiveThresholdForSensor(ctx context.Context, actor *models.Profile, sensorID string) (*models.Threshold, error)
}

type Monitor struct {
	Db        db.DB
	Ingest    IIngest
	Alert     IAlert
	Threshold IThreshold
}

type ServiceOpts struct {
	Ingest    IIngest
	Alert     IAlert
	Threshold IThreshold
}

func (m *Monitor) WithServices(opts ServiceOpts) *Monitor {
	if opts.Ingest != nil {
		m.Ingest = opts.Ingest
	}
	if opts.Alert != nil {
		m.Alert = opts.Alert
	}
	if opts.Threshold != nil {
		m.Threshold = opts.Threshold
	}
	return m
}
