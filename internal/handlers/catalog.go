package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktail_rig/internal/models"
)

const (
	errLoadPumps       = "failed to load pump configuration"
	errSavePumps       = "failed to save pump configuration"
	errLoadCocktails   = "failed to load cocktails"
	errSaveCocktails   = "failed to save cocktails"
	errLoadSelection   = "failed to load selection"
	errSaveSelection   = "failed to save selection"
	errLoadCalibration = "failed to load calibration"
	errSaveCalibration = "failed to save calibration"
)

// SelectionRequest is the selected cocktail hand-off.
type SelectionRequest struct {
	// Safe name ("moscow_mule") or display name of a stored cocktail
	Cocktail string `json:"cocktail" binding:"required" example:"moscow_mule"`
}

// CalibrationRequest sets how long a pump runs to dispense one ounce.
type CalibrationRequest struct {
	SecondsPerOunce float64 `json:"seconds_per_ounce" binding:"required" example:"8"`
}

// @Summary      Get pump configuration
// @Tags         pumps
// @Produce      json
// @Success      200  {object}  map[string]string  "Pump N -> ingredient"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pumps [get]
// @Security     BearerAuth
func (h *Handler) getPumps(c *gin.Context) {
	cfg, err := h.services.PumpConfig(c.Request.Context())
	if err != nil {
		h.respondError(c, err, errLoadPumps, "pumps_load_failed")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Replace pump configuration
// @Description  Blank ingredients leave the pump unassigned. Labels must name pumps on the rig.
// @Tags         pumps
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]string  true  "Pump N -> ingredient"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/pumps [put]
// @Security     BearerAuth
func (h *Handler) putPumps(c *gin.Context) {
	var raw map[string]string
	if ok := h.bindJSONOrBadRequest(c, &raw); !ok {
		return
	}
	cfg, err := h.services.SavePumpConfig(c.Request.Context(), raw)
	if err != nil {
		h.respondError(c, err, errSavePumps, "pumps_save_failed")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      List cocktails
// @Tags         cocktails
// @Produce      json
// @Success      200  {object}  models.CocktailCollection
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/cocktails [get]
// @Security     BearerAuth
func (h *Handler) getCocktails(c *gin.Context) {
	list, err := h.services.Cocktails(c.Request.Context())
	if err != nil {
		h.respondError(c, err, errLoadCocktails, "cocktails_load_failed")
		return
	}
	if list == nil {
		list = []models.Cocktail{}
	}
	c.JSON(http.StatusOK, models.CocktailCollection{Cocktails: list})
}

// @Summary      Replace the cocktail collection
// @Tags         cocktails
// @Accept       json
// @Produce      json
// @Param        body  body      models.CocktailCollection  true  "Collection record"
// @Success      200   {object}  map[string]interface{}  "status, count"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/cocktails [put]
// @Security     BearerAuth
func (h *Handler) putCocktails(c *gin.Context) {
	var coll models.CocktailCollection
	if ok := h.bindJSONOrBadRequest(c, &coll); !ok {
		return
	}
	if err := h.services.ReplaceCocktails(c.Request.Context(), coll); err != nil {
		h.respondError(c, err, errSaveCocktails, "cocktails_save_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "count": len(coll.Cocktails)})
}

// @Summary      Get one cocktail
// @Tags         cocktails
// @Produce      json
// @Param        name  path      string  true  "Safe or display name"
// @Success      200   {object}  models.Cocktail
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/cocktails/{name} [get]
// @Security     BearerAuth
func (h *Handler) getCocktail(c *gin.Context) {
	name := c.Param("name")
	ct, err := h.services.Cocktail(c.Request.Context(), name)
	if err != nil {
		h.respondError(c, err, errLoadCocktails, "cocktail_load_failed", "name", name)
		return
	}
	c.JSON(http.StatusOK, ct)
}

// @Summary      Save adjusted ingredient measurements
// @Description  Replaces the cocktail's ingredients, keeping the order of the body.
// @Tags         cocktails
// @Accept       json
// @Produce      json
// @Param        name  path      string             true  "Safe or display name"
// @Param        body  body      map[string]string  true  "ingredient -> measurement"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/cocktails/{name}/ingredients [put]
// @Security     BearerAuth
func (h *Handler) putIngredients(c *gin.Context) {
	name := c.Param("name")
	ing := models.NewIngredients()
	if ok := h.bindJSONOrBadRequest(c, ing); !ok {
		return
	}
	if err := h.services.UpdateIngredients(c.Request.Context(), name, ing); err != nil {
		h.respondError(c, err, errSaveCocktails, "cocktail_ingredients_save_failed", "name", name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Get the selected cocktail
// @Tags         selection
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/selection [get]
// @Security     BearerAuth
func (h *Handler) getSelection(c *gin.Context) {
	sel, err := h.services.Selection(c.Request.Context())
	if err != nil {
		h.respondError(c, err, errLoadSelection, "selection_load_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cocktail": sel})
}

// @Summary      Select a cocktail
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        body  body      SelectionRequest  true  "Cocktail token"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/selection [put]
// @Security     BearerAuth
func (h *Handler) putSelection(c *gin.Context) {
	var req SelectionRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	safe, err := h.services.Select(c.Request.Context(), req.Cocktail)
	if err != nil {
		h.respondError(c, err, errSaveSelection, "selection_save_failed", "cocktail", req.Cocktail)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cocktail": safe})
}

// @Summary      Get calibration
// @Tags         calibration
// @Produce      json
// @Success      200  {object}  map[string]number
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/calibration [get]
// @Security     BearerAuth
func (h *Handler) getCalibration(c *gin.Context) {
	v, err := h.services.Calibration.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err, errLoadCalibration, "calibration_load_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"seconds_per_ounce": v})
}

// @Summary      Set calibration
// @Tags         calibration
// @Accept       json
// @Produce      json
// @Param        body  body      CalibrationRequest  true  "Seconds per ounce"
// @Success      200   {object}  map[string]number
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/calibration [put]
// @Security     BearerAuth
func (h *Handler) putCalibration(c *gin.Context) {
	var req CalibrationRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Calibration.Set(c.Request.Context(), req.SecondsPerOunce); err != nil {
		h.respondError(c, err, errSaveCalibration, "calibration_save_failed", "value", req.SecondsPerOunce)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seconds_per_ounce": req.SecondsPerOunce})
}
