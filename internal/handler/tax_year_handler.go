package handler

import (
	"net/http"
	"strconv"

	"officebot/internal/service"
	"officebot/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxYearHandler struct {
	taxYearService service.TaxYearService
	publishEnabled bool
}

func NewTaxYearHandler(taxYearService service.TaxYearService, publishEnabled bool) *TaxYearHandler {
	return &TaxYearHandler{taxYearService: taxYearService, publishEnabled: publishEnabled}
}

func (h *TaxYearHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/tax-years")
	{
		group.GET("", h.List)
		group.GET("/:year", h.Get)
		group.POST("", h.Publish)
	}
}

// List
// @Summary      List tax years
// @Tags         tax-years
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.TaxYearSummary}
// @Router       /api/tax-years [get]
func (h *TaxYearHandler) List(c *gin.Context) {
	years, err := h.taxYearService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, years))
}

// Get
// @Summary      Get a tax year table
// @Tags         tax-years
// @Produce      json
// @Param        year  path      int  true  "Tax year"
// @Success      200   {object}  response.Response{data=service.TaxYearResponse}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/tax-years/{year} [get]
func (h *TaxYearHandler) Get(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid year"))
		return
	}
	res, err := h.taxYearService.Get(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Publish validates and activates a tax year table
// @Summary      Publish a tax year
// @Description  Disabled unless TAX_YEAR_PUBLISH_ENABLED=true. Connected websocket clients receive tax_year.published.
// @Tags         tax-years
// @Accept       json
// @Produce      json
// @Param        request  body      service.PublishTaxYearRequest  true  "Year document"
// @Success      201      {object}  response.Response{data=service.TaxYearResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax-years [post]
func (h *TaxYearHandler) Publish(c *gin.Context) {
	if !h.publishEnabled {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Tax year publishing is disabled"))
		return
	}
	var req service.PublishTaxYearRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxYearService.Publish(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, res))
}
