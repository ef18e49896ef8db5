package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cocktail_rig/internal/logger"
	"cocktail_rig/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to the rig services.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: logger.OrNop(log)}
}

// InitRoutes builds the Gin router with every route registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// operation stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerCatalogRoutes(api)
		h.registerOperationRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	api.GET("/pumps", h.getPumps)
	// Body example: {"Pump 1":"vodka","Pump 2":"lime juice"}
	api.PUT("/pumps", h.putPumps)

	cocktails := api.Group("/cocktails")
	{
		cocktails.GET("", h.getCocktails)
		cocktails.PUT("", h.putCocktails)
		cocktails.GET("/:name", h.getCocktail)
		cocktails.PUT("/:name/ingredients", h.putIngredients)
	}

	api.GET("/selection", h.getSelection)
	api.PUT("/selection", h.putSelection)

	api.GET("/calibration", h.getCalibration)
	api.PUT("/calibration", h.putCalibration)
}

func (h *Handler) registerOperationRoutes(api *gin.RouterGroup) {
	// Body example: {"cocktail":"moscow_mule","mode":"double"}
	api.POST("/pour", h.pour)

	maintenance := api.Group("/maintenance")
	{
		maintenance.POST("/prime", h.prime)
		maintenance.POST("/clean", h.clean)
	}

	ops := api.Group("/operations")
	{
		ops.GET("/current", h.currentOperation)
		ops.POST("/current/cancel", h.cancelOperation)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
