package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Storefront Backend API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /info [get]
func (h *SystemHandler) GetInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Storefront Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// TimeResponse represents the server time response
// @name HandlerTimeResponse
type TimeResponse struct {
	Time     string `json:"time" example:"2026-01-23T12:00:00Z"`
	Timezone string `json:"timezone" example:"UTC"`
	Unix     int64  `json:"unix" example:"1769169600"`
}

// GetTime godoc
// @ID           getSystemTime
// @Summary      Get server time
// @Description  Returns the current server time in RFC3339 and unix form
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[TimeResponse]
// @Router       /time [get]
func (h *SystemHandler) GetTime(c *gin.Context) {
	now := time.Now().UTC()
	c.JSON(http.StatusOK, dto.NewSuccessResponse(TimeResponse{
		Time:     now.Format(time.RFC3339),
		Timezone: "UTC",
		Unix:     now.Unix(),
	}))
}

// HealthResponse represents the health check response
// @name HandlerHealthResponse
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Liveness probe endpoint
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// RegisterRoutes registers the system endpoints on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/info", h.GetInfo)
	rg.GET("/time", h.GetTime)
	rg.GET("/health", h.Health)
}
