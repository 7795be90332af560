package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/monitor"
)

type ResolveRequest struct {
	Notes string `json:"notes"`
}

type BulkAlertRequest struct {
	AlertIDs []string `json:"alert_ids"`
	Notes    string   `json:"notes"`
}

func (rs *RestfulServer) ListAlerts(c *gin.Context) {
	profile := profileFromContext(c)

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	result, err := rs.Mon.Alert.ListAlerts(c.Request.Context(), profile, monitor.AlertQuery{
		Status:   models.AlertStatus(c.Query("status")),
		Severity: models.AlertSeverity(c.Query("severity")),
		SiteID:   c.Query("site_id"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) AcknowledgeAlert(c *gin.Context) {
	profile := profileFromContext(c)

	alert, err := rs.Mon.Alert.Acknowledge(c.Request.Context(), c.Param("alert_id"), profile)
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (rs *RestfulServer) ResolveAlert(c *gin.Context) {
	profile := profileFromContext(c)

	var req ResolveRequest
	if c.Request.ContentLength > 0 {
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed json body"})
			return
		}
	}

	alert, err := rs.Mon.Alert.Resolve(c.Request.Context(), c.Param("alert_id"), profile, req.Notes)
	if err != nil {
		rs.renderMonitorError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (rs *RestfulServer) AcknowledgeAlertsBulk(c *gin.Context) {
	profile := profileFromContext(c)

	req, ok := rs.bindBulkAlertRequest(c)
	if !ok {
		return
	}

	results := rs.Mon.Alert.AcknowledgeBulk(c.Request.Context(), req.AlertIDs, profile)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (rs *RestfulServer) ResolveAlertsBulk(c *gin.Context) {
	profile := profileFromContext(c)

	req, ok := rs.bindBulkAlertRequest(c)
	if !ok {
		return
	}

	results := rs.Mon.Alert.ResolveBulk(c.Request.Context(), req.AlertIDs, profile, req.Notes)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (rs *RestfulServer) bindBulkAlertRequest(c *gin.Context) (*BulkAlertRequest, bool) {
	var req BulkAlertRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed json body"})
		return nil, false
	}
	if len(req.AlertIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert_ids can not be empty"})
		return nil, false
	}
	return &req, true
}

// renderMonitorError maps service sentinels onto HTTP statuses. Anything
// unrecognized is treated as a transient dependency failure the caller may
// retry.
func (rs *RestfulServer) renderMonitorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, monitor.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, monitor.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, monitor.ErrInvalidState), errors.Is(err, monitor.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
