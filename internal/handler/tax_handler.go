package handler

import (
	"net/http"
	"strconv"

	"officebot/internal/service"
	"officebot/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	tax := router.Group("/api/tax")
	{
		tax.POST("/pph21", h.CalculatePPh21)
		tax.POST("/pph23", h.CalculatePPh23)
		tax.POST("/ppn", h.CalculatePPN)
		tax.POST("/ppnbm", h.CalculatePPnBM)
		tax.POST("/corporate", h.CalculateCorporate)
		tax.GET("/ptkp", h.GetPTKP)
	}
}

// CalculatePPh21 computes employee income tax
// @Summary      Calculate PPh 21
// @Description  Annualises the income, applies occupational cost, PTKP and the progressive brackets of the year
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.PPh21Request  true  "Income and taxpayer profile"
// @Success      200      {object}  response.Response{data=service.PPh21Response}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/pph21 [post]
func (h *TaxHandler) CalculatePPh21(c *gin.Context) {
	var req service.PPh21Request
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.CalculatePPh21(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CalculatePPh23 computes withholding tax on a payment
// @Summary      Calculate PPh 23
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.PPh23Request  true  "Payment and category"
// @Success      200      {object}  response.Response{data=service.PPh23Response}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/pph23 [post]
func (h *TaxHandler) CalculatePPh23(c *gin.Context) {
	var req service.PPh23Request
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.CalculatePPh23(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CalculatePPN computes VAT on top of, or extracted from, an amount
// @Summary      Calculate PPN
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.PPNRequest  true  "Amount; set inclusive to extract VAT from a total"
// @Success      200      {object}  response.Response{data=service.PPNResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/ppn [post]
func (h *TaxHandler) CalculatePPN(c *gin.Context) {
	var req service.PPNRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.CalculatePPN(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CalculatePPnBM computes luxury goods sales tax plus PPN
// @Summary      Calculate PPnBM
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.PPnBMRequest  true  "Base and luxury rate"
// @Success      200      {object}  response.Response{data=service.PPnBMResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/ppnbm [post]
func (h *TaxHandler) CalculatePPnBM(c *gin.Context) {
	var req service.PPnBMRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.CalculatePPnBM(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CalculateCorporate computes corporate income tax
// @Summary      Calculate PPh Badan
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.CorporateRequest  true  "Taxable profit and turnover"
// @Success      200      {object}  response.Response{data=service.CorporateResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/corporate [post]
func (h *TaxHandler) CalculateCorporate(c *gin.Context) {
	var req service.CorporateRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.taxService.CalculateCorporate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetPTKP lists the non-taxable income thresholds of a year
// @Summary      Get PTKP table
// @Tags         tax
// @Produce      json
// @Param        year  query     int  false  "Tax year (default latest)"
// @Success      200   {object}  response.Response{data=service.PTKPResponse}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/tax/ptkp [get]
func (h *TaxHandler) GetPTKP(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid year"))
			return
		}
		year = y
	}
	res, err := h.taxService.GetPTKP(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
