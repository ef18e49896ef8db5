package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cocktail_rig/internal/service"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeOrder  = "'from' must be <= 'to'"
)

// queryLayouts are tried in order; the last one is date-only.
var queryLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// @Summary      List rig events
// @Description  Filter the event log by time and type. A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-03-01)
// @Param        to    query   string  false  "End of range, same formats"  example(2026-03-31)
// @Param        type  query   string  false  "Event type"  Enums(POUR_START,POUR_DONE,INGREDIENT_POURED,INGREDIENT_SKIPPED,PRIME,CLEAN,FAULT,CALIBRATION,CONFIG)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	f, msg := logFilterFromQuery(c)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err, "failed to load logs", "logs_list_failed", "from", f.From, "to", f.To, "type", f.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
}

// logFilterFromQuery reads from, to and type. A non-empty message means 400.
func logFilterFromQuery(c *gin.Context) (service.LogFilter, string) {
	f := service.LogFilter{Type: strings.ToUpper(strings.TrimSpace(c.Query("type")))}

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, errFromInvalid
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, errToInvalid
		}
		if !strings.ContainsAny(qs, "T ") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, errRangeOrder
	}
	return f, ""
}

// parseQueryTime tries each of queryLayouts and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
