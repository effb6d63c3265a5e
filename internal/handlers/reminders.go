package handlers

import (
	"fmt"
	"net/http"

	"callme/internal/models"

	"github.com/gin-gonic/gin"
)

// ListReminders handles listing reminders with filtering, sorting, and
// pagination, served through the synchronization layer.
func (h *Handler) ListReminders(c *gin.Context) {
	var filters models.ReminderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid filters: %s", err.Error())})
		return
	}

	resp, err := h.syncer.List(c.Request.Context(), filters)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetReminder returns a single reminder by id.
func (h *Handler) GetReminder(c *gin.Context) {
	rem, err := h.syncer.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

// CreateReminder validates and submits a new reminder.
func (h *Handler) CreateReminder(c *gin.Context) {
	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	rem, err := h.syncer.Create(c.Request.Context(), req)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rem)
}

// UpdateReminder applies a partial update with optimistic cache semantics.
func (h *Handler) UpdateReminder(c *gin.Context) {
	var req models.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	rem, err := h.syncer.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

// DeleteReminder removes a reminder with optimistic cache semantics.
func (h *Handler) DeleteReminder(c *gin.Context) {
	if err := h.syncer.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Notifications returns the recent mutation-outcome feed.
func (h *Handler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.notifier.Recent(20)})
}
