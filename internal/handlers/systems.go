package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"room_climate/internal/models"
	"room_climate/internal/runtime"
	"room_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	modeOn  = "on"
	modeOff = "off"

	errGetState     = "failed to load state"
	errSwitchSystem = "failed to switch system"
	errUnavailable  = "node is shutting down"
	errCanceled     = "request canceled; the switch may still be applied"
	errInvalidMode  = "invalid mode; use on or off"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// switchError maps controller errors to HTTP codes.
func (h *Handler) switchError(c *gin.Context, sys models.System, err error) {
	switch {
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotActive), errors.Is(err, service.ErrInvalidSystem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, runtime.ErrStopped):
		h.logAndJSONError(c, http.StatusServiceUnavailable, errUnavailable, "system_switch_unavailable", err, "system", sys)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// the queued switch is not withdrawn, so its outcome is unknown here
		h.logAndJSONError(c, http.StatusRequestTimeout, errCanceled, "system_switch_canceled", err, "system", sys)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSwitchSystem, "system_switch_failed", err, "system", sys)
	}
}

// parseMode reads the optional mode parameter from the query or a form body.
// An empty result means toggle.
func parseMode(c *gin.Context) (string, error) {
	mode, ok := c.GetQuery("mode")
	if !ok {
		mode = c.PostForm("mode")
	}
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case "", modeOn, modeOff:
		return mode, nil
	default:
		return "", fmt.Errorf("%s: %q", errInvalidMode, mode)
	}
}

// respondWithSystems writes the outcome together with the current systems.
func (h *Handler) respondWithSystems(c *gin.Context, extra gin.H) {
	resp := gin.H{"status": statusOK}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err == nil {
		resp["systems"] = st.Systems()
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Greeting
// @Description  Returns the greeting truncated to len bytes. A non-numeric len counts as 0.
// @Tags         info
// @Produce      plain
// @Param        len  query  int  false  "Number of bytes"
// @Success      200  {string}  string
// @Router       /info [get]
func (h *Handler) getInfo(c *gin.Context) {
	var length *int
	if raw, ok := c.GetQuery("len"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			n = 0
		}
		length = &n
	}
	msg := h.services.Info.Greeting(length)
	c.Header("ETag", strconv.Quote(strconv.Itoa(len(msg))))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(msg))
}

// @Summary      Current temperature
// @Tags         temperature
// @Produce      json,plain
// @Success      200  {object}  map[string]int
// @Failure      500  {object}  map[string]string
// @Router       /temperature [get]
func (h *Handler) getTemperature(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "temperature_get_failed", err)
		return
	}
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEPlain) == gin.MIMEPlain {
		c.String(http.StatusOK, "%d", st.Temperature)
		return
	}
	c.JSON(http.StatusOK, gin.H{"temperature": st.Temperature})
}

// @Summary      Systems status
// @Description  Boolean flags encoded as strings.
// @Tags         systems
// @Produce      json
// @Success      200  {object}  models.SystemsStatus
// @Failure      500  {object}  map[string]string
// @Router       /systems [get]
func (h *Handler) getSystems(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "systems_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, st.Systems())
}

// @Summary      Switch cooling or heating
// @Description  mode=on starts, mode=off stops, no mode toggles. Cooling and heating are mutually exclusive.
// @Tags         systems
// @Produce      json
// @Param        mode  query  string  false  "on or off"  Enums(on,off)
// @Success      200  {object}  map[string]interface{}  "status, climate, systems"
// @Failure      400  {object}  map[string]string
// @Failure      408  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /systems/cooling [post]
// @Router       /systems/heating [post]
func (h *Handler) switchClimate(kind models.ClimateStatus) gin.HandlerFunc {
	sys, _ := kind.System()
	return func(c *gin.Context) {
		mode, err := parseMode(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		switch mode {
		case modeOn:
			err = h.services.Climate.Start(ctx, kind)
		case modeOff:
			err = h.services.Climate.Stop(ctx, kind)
		default:
			_, err = h.services.Climate.Toggle(ctx, kind)
		}
		if err != nil {
			h.switchError(c, sys, err)
			return
		}
		h.respondWithSystems(c, gin.H{"system": sys})
	}
}

// @Summary      Switch ventilation
// @Description  mode=on starts, mode=off stops, no mode toggles. Independent of cooling and heating.
// @Tags         systems
// @Produce      json
// @Param        mode  query  string  false  "on or off"  Enums(on,off)
// @Success      200  {object}  map[string]interface{}  "status, ventilation, systems"
// @Failure      400  {object}  map[string]string
// @Failure      408  {object}  map[string]string
// @Router       /systems/ventilation [post]
func (h *Handler) switchVentilation(c *gin.Context) {
	mode, err := parseMode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var on bool
	if mode == "" {
		on, err = h.services.Ventilation.ToggleVentilation(ctx)
	} else {
		on, err = h.services.Ventilation.SetVentilation(ctx, mode == modeOn)
	}
	if err != nil {
		h.switchError(c, models.SystemVentilation, err)
		return
	}
	h.respondWithSystems(c, gin.H{"system": models.SystemVentilation, "ventilation": on})
}
