package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

type ThresholdRequest struct {
	Level    string  `json:"level"`
	LevelRef string  `json:"level_ref"`
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
}

var thresholdRequestSchema = z.Struct(z.Shape{
	"Level": z.String().OneOf([]string{
		string(models.ThresholdLevelOrg),
		string(models.ThresholdLevelSite),
		string(models.ThresholdLevelEnvironment),
		string(models.ThresholdLevelSensor),
	}).Required(),
})

func (rs *RestfulServer) UpsertThreshold(c *gin.Context) {
	profile := profileFromContext(c)

	var req ThresholdRequest
	if err := thresholdRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	threshold, err := rs.Mon.Threshold.UpsertThreshold(c.Request.Context(), profile, &models.Threshold{
		Level:    models.ThresholdLevel(req.Level),
		LevelRef: req.LevelRef,
		MinValue: req.MinValue,
		MaxValue: req.MaxValue,
	})
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, threshold)
}

func (rs *RestfulServer) GetThreshold(c *gin.Context) {
	profile := profileFromContext(c)

	threshold, err := rs.Mon.Threshold.GetThreshold(c.Request.Context(), profile,
		models.ThresholdLevel(c.Query("level")), c.Query("level_ref"))
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, threshold)
}

// GetSensorThreshold answers the most specific limit configured for the
// sensor, walking sensor then environment then site then org scope.
func (rs *RestfulServer) GetSensorThreshold(c *gin.Context) {
	profile := profileFromContext(c)

	threshold, err := rs.Mon.Threshold.EffectiveThresholdForSensor(
		c.Request.Context(), profile, c.Param("sensor_id"))
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, threshold)
}

func (rs *RestfulServer) GetSensorReadings(c *gin.Context) {
	profile := profileFromContext(c)

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		to = parsed
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	readings, err := rs.Mon.ReadingsWindow(c.Request.Context(), profile, c.Param("sensor_id"), from, to, limit)
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings})
}
