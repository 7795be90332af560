package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/monitor"
)

const (
	headerDeviceID       = "X-Device-Id"
	headerTimestamp      = "X-Timestamp"
	headerSignature      = "X-Signature"
	headerIdempotencyKey = "Idempotency-Key"
)

const ingestTimeout = 10 * time.Second

type ReadingPayload struct {
	SensorID string    `json:"sensor_id"`
	Ts       time.Time `json:"ts"`
	Value    float64   `json:"value"`
	Humidity *float64  `json:"humidity,omitempty"`
}

type IngestRequest struct {
	Readings []ReadingPayload `json:"readings"`
}

var readingPayloadSchema = z.Struct(z.Shape{
	// Ts is validated separately
	"SensorID": z.String().Min(1).Required(),
})

func validateIngestRequest(req *IngestRequest) error {
	if len(req.Readings) == 0 {
		return fmt.Errorf("readings can not be empty")
	}
	for i := range req.Readings {
		if issues := readingPayloadSchema.Validate(&req.Readings[i]); issues != nil {
			return fmt.Errorf("reading %d: %v", i, issues)
		}
		if req.Readings[i].Ts.IsZero() {
			return fmt.Errorf("reading %d: ts can not be empty", i)
		}
	}
	return nil
}

// IngestReadings accepts a signed device batch. Authentication happens before
// the idempotency claim so forged requests never occupy a key, and the final
// status plus body are cached verbatim for replays.
func (rs *RestfulServer) IngestReadings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ingestTimeout)
	defer cancel()

	idemKey := c.GetHeader(headerIdempotencyKey)
	if idemKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key header required"})
		return
	}

	deviceID := c.GetHeader(headerDeviceID)
	timestamp := c.GetHeader(headerTimestamp)
	signature := c.GetHeader(headerSignature)
	if deviceID == "" || timestamp == "" || signature == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing signature headers"})
		return
	}

	var cred models.DeviceCredential
	if err := rs.Mon.Db.Conn.WithContext(ctx).First(&cred, "device_id = ?", deviceID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown device"})
		return
	}

	var tenant models.Tenant
	if err := rs.Mon.Db.Conn.WithContext(ctx).First(&tenant, "id = ?", cred.TenantID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown device"})
		return
	}
	if tenant.Status == models.TenantStatusSuspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "tenant suspended"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	if err := rs.Verifier.Verify(body, timestamp, deviceID, signature, cred.Secret); err != nil {
		httpLogger().Info("Rejected ingest signature",
			zap.String("device_id", deviceID), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	cached, err := rs.Idem.Begin(ctx, idemKey)
	if err != nil {
		if errors.Is(err, monitor.ErrInFlight) {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusConflict, gin.H{"error": "request with this idempotency key is in flight"})
			return
		}
		httpLogger().Error("Idempotency store unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "idempotency store unavailable"})
		return
	}
	if cached != nil {
		c.Data(cached.StatusCode, "application/json; charset=utf-8", cached.Body)
		return
	}

	var req IngestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		rs.abortClaim(ctx, idemKey)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed json body"})
		return
	}
	if err := validateIngestRequest(&req); err != nil {
		rs.abortClaim(ctx, idemKey)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := common.Mapper(req.Readings, func(r ReadingPayload) monitor.ReadingInput {
		return monitor.ReadingInput{
			SensorID:  r.SensorID,
			Timestamp: r.Ts,
			Value:     r.Value,
			Humidity:  r.Humidity,
		}
	})

	result, err := rs.Mon.Ingest.ProcessBatch(ctx, cred.TenantID, rows)
	if err != nil {
		rs.abortClaim(ctx, idemKey)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ingestion temporarily unavailable"})
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}

	respBody, err := json.Marshal(result)
	if err != nil {
		rs.abortClaim(ctx, idemKey)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encoding failure"})
		return
	}

	if err := rs.Idem.Commit(ctx, idemKey, &monitor.CachedResponse{StatusCode: status, Body: respBody}); err != nil {
		httpLogger().Error("Idempotency commit failed", zap.String("key", idemKey), zap.Error(err))
	}

	c.Data(status, "application/json; charset=utf-8", respBody)
}

func (rs *RestfulServer) abortClaim(ctx context.Context, key string) {
	if err := rs.Idem.Abort(ctx, key); err != nil {
		httpLogger().Warn("Idempotency abort failed", zap.String("key", key), zap.Error(err))
	}
}
