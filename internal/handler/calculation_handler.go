package handler

import (
	"net/http"

	"officebot/internal/service"
	"officebot/pkg/pagination"
	"officebot/pkg/response"

	"github.com/gin-gonic/gin"
)

type CalculationHandler struct {
	logService service.CalculationLogService
}

func NewCalculationHandler(logService service.CalculationLogService) *CalculationHandler {
	return &CalculationHandler{logService: logService}
}

func (h *CalculationHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/calculations")
	{
		group.GET("", h.List)
	}
}

// List returns the calculation log, newest first
// @Summary      Get calculation log
// @Tags         calculations
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20, max 100)"
// @Success      200    {object}  response.Response{data=response.Page{items=[]service.CalculationLogResponse}}
// @Router       /api/calculations [get]
func (h *CalculationHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	logs, total, err := h.logService.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve calculation log: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged(logs, total, p.Page, p.Limit)))
}
