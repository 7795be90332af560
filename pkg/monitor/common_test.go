package monitor

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/db"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

func GetTestMonitor(t *testing.T) *Monitor {
	t.Helper()

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector())
	mon := &Monitor{Db: *dbInstance}
	mon.WithServices(ServiceOpts{
		Ingest:    mon.GetIIngest(),
		Alert:     mon.GetIAlert(),
		Threshold: mon.GetIThreshold(),
	})
	return mon
}

// seedTenantChain creates tenant -> site -> environment -> sensor and returns
// them; each test gets its own ids so the shared in-memory db stays isolated.
func seedTenantChain(t *testing.T, mon *Monitor) (*models.Tenant, *models.Site, *models.Environment, *models.Sensor) {
	t.Helper()

	tenant := &models.Tenant{
		ID:     uuid.NewString(),
		Name:   "tenant",
		Plan:   "standard",
		Status: models.TenantStatusActive,
	}
	require.NoError(t, mon.Db.Conn.Create(tenant).Error)

	site := &models.Site{ID: uuid.NewString(), TenantID: tenant.ID, Name: "site"}
	require.NoError(t, mon.Db.Conn.Create(site).Error)

	env := &models.Environment{
		ID:       uuid.NewString(),
		SiteID:   site.ID,
		TenantID: tenant.ID,
		Name:     "cold room",
		Type:     models.EnvironmentTypeColdStorage,
	}
	require.NoError(t, mon.Db.Conn.Create(env).Error)

	sensor := &models.Sensor{
		ID:            uuid.NewString(),
		EnvironmentID: env.ID,
		SiteID:        site.ID,
		TenantID:      tenant.ID,
		LocalID:       "probe-1",
		Property:      "temperature",
		Status:        models.SensorStatusActive,
	}
	require.NoError(t, mon.Db.Conn.Create(sensor).Error)

	return tenant, site, env, sensor
}

func seedOpenAlert(t *testing.T, mon *Monitor, tenant *models.Tenant, site *models.Site, sensor *models.Sensor) *models.Alert {
	t.Helper()

	alert := &models.Alert{
		ID:            uuid.NewString(),
		TenantID:      tenant.ID,
		SiteID:        site.ID,
		EnvironmentID: sensor.EnvironmentID,
		SensorID:      sensor.ID,
		Severity:      models.AlertSeverityWarning,
		Status:        models.AlertStatusOpen,
		Message:       "temperature out of range",
		OpenedAt:      time.Now().Add(-time.Hour),
	}
	require.NoError(t, mon.Db.Conn.Create(alert).Error)
	return alert
}

func operatorFor(tenant *models.Tenant, sites ...*models.Site) *models.Profile {
	granted := make(models.StringList, 0, len(sites))
	for _, s := range sites {
		granted = append(granted, s.ID)
	}
	return &models.Profile{
		ID:           uuid.NewString(),
		Email:        "operator@example.com",
		Role:         models.RoleUser,
		TenantID:     tenant.ID,
		GrantedSites: granted,
	}
}

func masterFor(tenant *models.Tenant) *models.Profile {
	return &models.Profile{
		ID:       uuid.NewString(),
		Email:    "master@example.com",
		Role:     models.RoleMaster,
		TenantID: tenant.ID,
	}
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
