package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/chetansierra/temperature-dashboard-sub001/pkg/testing"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/auth"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/db"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/monitor"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/store"
)

const testJWTSecret = "test-secret"

func setupTestServer() *RestfulServer {
	gin.SetMode(gin.TestMode)

	mon := &monitor.Monitor{
		Db: *db.GetInstance(db.UseMemorySqliteDialector()),
	}
	mon.WithServices(monitor.ServiceOpts{
		Ingest:    mon.GetIIngest(),
		Alert:     mon.GetIAlert(),
		Threshold: mon.GetIThreshold(),
	})

	kv := store.NewMemoryKV()
	rs := &RestfulServer{
		Server: gin.New(),
		Mon:    mon,
		// no budgets means every class is unlimited; rate tests install
		// their own limiter
		Limiter:  monitor.NewWindowLimiter(kv, time.Minute, nil),
		Idem:     monitor.NewIdempotencyCache(kv, time.Hour),
		Verifier: monitor.NewSignatureVerifier(5 * time.Minute),
		Tokens:   auth.NewTokenManager(testJWTSecret, ""),
	}

	rs.Setup()

	return rs
}

// seedChain creates tenant -> site -> environment -> sensor with fresh ids so
// tests sharing the in-memory db stay isolated.
func seedChain(t *testing.T, rs *RestfulServer) (*models.Tenant, *models.Site, *models.Environment, *models.Sensor) {
	t.Helper()

	tenant := &models.Tenant{
		ID:     uuid.NewString(),
		Name:   "tenant",
		Plan:   "standard",
		Status: models.TenantStatusActive,
	}
	require.NoError(t, rs.Mon.Db.Conn.Create(tenant).Error)

	site := &models.Site{ID: uuid.NewString(), TenantID: tenant.ID, Name: "site"}
	require.NoError(t, rs.Mon.Db.Conn.Create(site).Error)

	env := &models.Environment{
		ID:       uuid.NewString(),
		SiteID:   site.ID,
		TenantID: tenant.ID,
		Name:     "cold room",
		Type:     models.EnvironmentTypeColdStorage,
	}
	require.NoError(t, rs.Mon.Db.Conn.Create(env).Error)

	sensor := &models.Sensor{
		ID:            uuid.NewString(),
		EnvironmentID: env.ID,
		SiteID:        site.ID,
		TenantID:      tenant.ID,
		LocalID:       "s-1",
		Property:      "temperature",
		Status:        models.SensorStatusActive,
	}
	require.NoError(t, rs.Mon.Db.Conn.Create(sensor).Error)

	return tenant, site, env, sensor
}

func seedCredential(t *testing.T, rs *RestfulServer, tenantID string) *models.DeviceCredential {
	t.Helper()

	cred := &models.DeviceCredential{
		DeviceID: uuid.NewString(),
		TenantID: tenantID,
		Secret:   uuid.NewString(),
	}
	require.NoError(t, rs.Mon.Db.Conn.Create(cred).Error)
	return cred
}

func seedProfile(t *testing.T, rs *RestfulServer, tenantID string, role models.Role, siteIDs ...string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		Role:         role,
		TenantID:     tenantID,
		GrantedSites: models.StringList(siteIDs),
	}
	require.NoError(t, rs.Mon.Db.Conn.Create(profile).Error)
	return profile
}

func seedOpenAlert(t *testing.T, rs *RestfulServer, tenant *models.Tenant, site *models.Site, sensor *models.Sensor) *models.Alert {
	t.Helper()

	alert := &models.Alert{
		ID:       uuid.NewString(),
		TenantID: tenant.ID,
		SiteID:   site.ID,
		SensorID: sensor.ID,
		Severity: models.AlertSeverityWarning,
		Status:   models.AlertStatusOpen,
		Message:  "temperature out of range",
		OpenedAt: time.Now().UTC(),
	}
	require.NoError(t, rs.Mon.Db.Conn.Create(alert).Error)
	return alert
}

func tokenFor(t *testing.T, rs *RestfulServer, profile *models.Profile) string {
	t.Helper()

	token, err := rs.Tokens.GenerateToken(profile.ID, profile.TenantID, time.Hour)
	require.NoError(t, err)
	return token
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	rs := setupTestServer()

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/alerts", nil)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/alerts", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for deleted profile", func(t *testing.T) {
		token, err := rs.Tokens.GenerateToken(uuid.NewString(), uuid.NewString(), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/alerts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("suspended tenant", func(t *testing.T) {
		tenant, site, _, _ := seedChain(t, rs)
		profile := seedProfile(t, rs, tenant.ID, models.RoleMaster, site.ID)
		token := tokenFor(t, rs, profile)

		require.NoError(t, rs.Mon.Db.Conn.Model(&models.Tenant{}).
			Where("id = ?", tenant.ID).
			Update("status", models.TenantStatusSuspended).Error)

		req := httptest.NewRequest("GET", "/api/alerts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		rs.Server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
