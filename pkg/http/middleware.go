package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/auth"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/monitor"
)

const ctxKeyProfile = "profile"

func httpLogger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

// rateLimit applies a fixed-window budget check for the given endpoint
// class. The limit headers are set on every response, allowed or not.
func (rs *RestfulServer) rateLimit(class monitor.EndpointClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rs.Limiter == nil {
			c.Next()
			return
		}

		caller := rs.callerKey(c)
		decision, err := rs.Limiter.Allow(c.Request.Context(), class, caller)
		if err != nil {
			httpLogger().Warn("Rate limiter backend error, failing open",
				zap.String("class", string(class)), zap.Error(err))
		}

		if decision.Remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		}
		if !decision.Reset.IsZero() {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))
		}

		if !decision.Allowed {
			retryAfter := int64(time.Until(decision.Reset).Seconds()) + 1
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// callerKey identifies the request principal for rate accounting:
// the authenticated profile when one is attached, the device id
// header for ingestion traffic, and the client IP as a last resort.
func (rs *RestfulServer) callerKey(c *gin.Context) string {
	if profile := profileFromContext(c); profile != nil {
		return "profile:" + profile.ID
	}
	if deviceID := c.GetHeader("X-Device-Id"); deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + c.ClientIP()
}

// requireProfile validates the bearer token, loads the profile it
// names and rejects requests from suspended tenants.
func (rs *RestfulServer) requireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := auth.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := rs.Tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var profile models.Profile
		if err := rs.Mon.Db.Conn.WithContext(c.Request.Context()).
			First(&profile, "id = ?", claims.ProfileID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown profile"})
			return
		}

		if profile.TenantID != "" {
			var tenant models.Tenant
			if err := rs.Mon.Db.Conn.WithContext(c.Request.Context()).
				First(&tenant, "id = ?", profile.TenantID).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "tenant unavailable"})
				return
			}
			if tenant.Status == models.TenantStatusSuspended {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "tenant suspended"})
				return
			}
		}

		c.Set(ctxKeyProfile, &profile)
		c.Next()
	}
}

func profileFromContext(c *gin.Context) *models.Profile {
	value, ok := c.Get(ctxKeyProfile)
	if !ok {
		return nil
	}
	profile, ok := value.(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}
