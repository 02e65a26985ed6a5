package handler

import (
	"net/http"

	"itabus/internal/apierror"
	"itabus/internal/dto"
	"itabus/internal/service"

	"github.com/gin-gonic/gin"
)

type RatesHandler struct{ svc service.RatesService }

func NewRatesHandler(svc service.RatesService) *RatesHandler {
	return &RatesHandler{svc: svc}
}

// Get godoc
// @Summary Taxas globais vigentes
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Router /v1/global-rates [get]
func (h *RatesHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao obter taxas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RatesHandler) Update(c *gin.Context) {
	var req dto.UpdateRatesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
