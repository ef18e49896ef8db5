package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktail_rig/internal/models"
	"cocktail_rig/internal/service"
)

const (
	errStartPour        = "failed to start pour"
	errStartMaintenance = "failed to start maintenance"
	errNothingRunning   = "no operation running"
)

// pourRequest is bound from the body. Every field is optional: an empty
// cocktail pours the selection and an empty mode is single.
type pourRequest struct {
	Cocktail    string              `json:"cocktail"`
	Mode        string              `json:"mode"`
	Ingredients *models.Ingredients `json:"ingredients"`
}

// PourRequest is the Swagger model of the pour payload.
type PourRequest struct {
	// Safe or display name; empty pours the selected cocktail
	Cocktail string `json:"cocktail,omitempty" example:"moscow_mule"`
	// single or double
	Mode string `json:"mode,omitempty" example:"single"`
	// Per-pour measurement overrides, in recipe order
	Ingredients map[string]string `json:"ingredients,omitempty"`
}

// MaintenanceRequest sets how long each pump runs. Zero uses the default.
type MaintenanceRequest struct {
	DurationSec float64 `json:"duration_sec,omitempty" example:"5"`
}

// @Summary      Pour a cocktail
// @Description  Starts the pour in the background and returns the operation. Poll /operations/current or stream /ws for progress.
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      PourRequest  false  "Pour request"
// @Success      202   {object}  models.Operation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "another operation is running"
// @Router       /api/v1/pour [post]
// @Security     BearerAuth
func (h *Handler) pour(c *gin.Context) {
	var req pourRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	op, err := h.services.StartPour(service.PourParams{
		Cocktail:    req.Cocktail,
		Mode:        req.Mode,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		h.respondError(c, err, errStartPour, "pour_start_failed", "cocktail", req.Cocktail, "mode", req.Mode)
		return
	}
	h.log.Infow("pour_accepted", "operation", op.ID, "cocktail", req.Cocktail, "mode", op.Mode)
	c.JSON(http.StatusAccepted, op)
}

// @Summary      Prime every pump
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      MaintenanceRequest  false  "Seconds per pump"
// @Success      202   {object}  models.Operation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/maintenance/prime [post]
// @Security     BearerAuth
func (h *Handler) prime(c *gin.Context) {
	h.startMaintenance(c, models.OperationPrime, h.services.StartPrime)
}

// @Summary      Clean every pump (reverse)
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      MaintenanceRequest  false  "Seconds per pump"
// @Success      202   {object}  models.Operation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/maintenance/clean [post]
// @Security     BearerAuth
func (h *Handler) clean(c *gin.Context) {
	h.startMaintenance(c, models.OperationClean, h.services.StartClean)
}

func (h *Handler) startMaintenance(c *gin.Context, kind string, start func(seconds float64) (models.Operation, error)) {
	var req MaintenanceRequest
	if ok := h.bindOptionalJSON(c, &req); !ok {
		return
	}
	op, err := start(req.DurationSec)
	if err != nil {
		h.respondError(c, err, errStartMaintenance, "maintenance_start_failed", "kind", kind, "seconds", req.DurationSec)
		return
	}
	h.log.Infow("maintenance_accepted", "operation", op.ID, "kind", kind)
	c.JSON(http.StatusAccepted, op)
}

// @Summary      Current operation
// @Description  The running operation, or the last finished one. State is IDLE before the first operation.
// @Tags         operations
// @Produce      json
// @Success      200  {object}  models.Operation
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/operations/current [get]
// @Security     BearerAuth
func (h *Handler) currentOperation(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Current())
}

// @Summary      Cancel the running operation
// @Description  The pump already running finishes its step; remaining steps are reported CANCELED.
// @Tags         operations
// @Produce      json
// @Success      202  {object}  models.Operation
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/operations/current/cancel [post]
// @Security     BearerAuth
func (h *Handler) cancelOperation(c *gin.Context) {
	op, ok := h.services.CancelCurrent()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": errNothingRunning})
		return
	}
	h.log.Infow("operation_cancel_requested", "operation", op.ID, "kind", op.Kind)
	c.JSON(http.StatusAccepted, op)
}
