package handler

import (
	"net/http"

	"itabus/internal/apierror"
	"itabus/internal/dto"
	"itabus/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemsHandler struct{ svc service.CatalogService }

func NewItemsHandler(svc service.CatalogService) *ItemsHandler {
	return &ItemsHandler{svc: svc}
}

// List godoc
// @Summary Lista o catálogo de itens com custo derivado e subárvore de filhos
// @Tags items
// @Produce json
// @Param level query int false "Nível (1-3)"
// @Param parent_id query string false "UUID do pai, ou 'null' para itens raiz"
// @Success 200 {array} dto.ItemResponse
// @Router /v1/items [get]
func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ItemsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
