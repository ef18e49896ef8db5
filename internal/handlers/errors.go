package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktail_rig/internal/service"
)

const (
	statusOK = "ok"

	errInternal        = "internal error"
	errInvalidBodyPref = "invalid body: "
)

// statusFor maps service errors onto HTTP codes: validation is 400, unknown
// cocktails are 404, a held rig is 409 and the rest is 500.
func statusFor(err error) int {
	var calErr *service.InvalidCalibrationError
	switch {
	case errors.Is(err, service.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, service.ErrCocktailNotFound),
		errors.Is(err, service.ErrNothingSelected):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidPumpConfig),
		errors.Is(err, service.ErrInvalidCollection),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrUnknownEventType),
		errors.As(err, &calErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// logAndJSONError logs err under logKey and writes the user message.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError writes a service error. Caller errors carry their message;
// server errors are logged and answered with userMsg.
func (h *Handler) respondError(c *gin.Context, err error, userMsg, logKey string, kv ...interface{}) {
	code := statusFor(err)
	msg := userMsg
	if code < http.StatusInternalServerError {
		msg = err.Error()
	}
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}

// bindJSONOrBadRequest binds the body into dst and writes a 400 on failure.
// It returns false when the request was already answered.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// bindOptionalJSON is bindJSONOrBadRequest for bodies that may be empty.
func (h *Handler) bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
