package handlers

import (
	"net/http"
	"time"

	"callme/internal/models"
	"callme/internal/stats"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns the stat-card summary folded from the full list.
func (h *Handler) DashboardStats(c *gin.Context) {
	resp, err := h.syncer.List(c.Request.Context(), models.ReminderFilters{})
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Summarize(resp.Reminders, time.Now()))
}

// DashboardActivity returns the 7-day forward series of scheduled reminders.
func (h *Handler) DashboardActivity(c *gin.Context) {
	resp, err := h.syncer.List(c.Request.Context(), models.ReminderFilters{Status: models.StatusScheduled})
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": stats.UpcomingActivity(resp.Reminders, time.Now())})
}

// DashboardHistory returns the 7-day backward completed/failed series.
func (h *Handler) DashboardHistory(c *gin.Context) {
	resp, err := h.syncer.List(c.Request.Context(), models.ReminderFilters{})
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": stats.StatusHistory(resp.Reminders, time.Now())})
}

// CalendarEvents projects reminders onto timed calendar events.
func (h *Handler) CalendarEvents(c *gin.Context) {
	resp, err := h.syncer.List(c.Request.Context(), models.ReminderFilters{})
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": stats.CalendarEvents(resp.Reminders)})
}
