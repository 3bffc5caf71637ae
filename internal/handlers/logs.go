package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"room_climate/internal/service"

	"github.com/gin-gonic/gin"
)

const errListEvents = "failed to load events"

// queryTimeLayouts are tried in order for from and to.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly}

// @Summary      List journal events
// @Description  Climate transitions, rejected requests and simulation ticks, oldest first. A date-only 'to' covers the whole day.
// @Tags         events
// @Produce      json
// @Param        from    query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to      query   string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        type    query   string  false  "Event type"  Enums(START,STOP,CONFLICT,TELEMETRY)
// @Param        system  query   string  false  "Actuator the event concerns"  Enums(cooling,heating,ventilation)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /events [get]
func (h *Handler) getEvents(c *gin.Context) {
	f, err := eventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	switch {
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errListEvents, "events_list_failed", err,
			"type", f.Type, "system", f.System)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// eventFilter reads the query string. Type and system are checked by the service.
func eventFilter(c *gin.Context) (service.LogFilter, error) {
	f := service.LogFilter{
		Type:   c.Query("type"),
		System: c.Query("system"),
	}
	var err error
	if s := c.Query("from"); s != "" {
		if f.From, err = parseQueryTime(s); err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
	}
	if s := c.Query("to"); s != "" {
		if f.To, err = parseQueryTime(s); err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
		if !strings.ContainsAny(s, "T ") {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f, nil
}

// parseQueryTime accepts any of queryTimeLayouts and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
