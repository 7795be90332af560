package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/auth"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/monitor"
)

type RestfulServer struct {
	Server   *gin.Engine
	Mon      *monitor.Monitor
	Limiter  *monitor.WindowLimiter
	Idem     *monitor.IdempotencyCache
	Verifier *monitor.SignatureVerifier
	Tokens   *auth.TokenManager
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	ingest := rs.Server.Group("/api/ingest")
	ingest.Use(rs.rateLimit(monitor.ClassIngest))
	ingest.POST("/readings", rs.IngestReadings)

	api := rs.Server.Group("/api")
	api.Use(rs.requireProfile())
	{
		alerts := api.Group("/alerts")
		alerts.GET("", rs.rateLimit(monitor.ClassRead), rs.ListAlerts)
		alerts.POST("/:alert_id/acknowledge", rs.rateLimit(monitor.ClassWrite), rs.AcknowledgeAlert)
		alerts.POST("/:alert_id/resolve", rs.rateLimit(monitor.ClassWrite), rs.ResolveAlert)
		alerts.POST("/bulk/acknowledge", rs.rateLimit(monitor.ClassWrite), rs.AcknowledgeAlertsBulk)
		alerts.POST("/bulk/resolve", rs.rateLimit(monitor.ClassWrite), rs.ResolveAlertsBulk)

		api.GET("/thresholds", rs.rateLimit(monitor.ClassRead), rs.GetThreshold)
		api.POST("/thresholds", rs.rateLimit(monitor.ClassWrite), rs.UpsertThreshold)
		api.GET("/sensors/:sensor_id/threshold", rs.rateLimit(monitor.ClassRead), rs.GetSensorThreshold)
		api.GET("/sensors/:sensor_id/readings", rs.rateLimit(monitor.ClassQuery), rs.GetSensorReadings)
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
