package handler

import (
	"net/http"
	"time"

	"itabus/internal/apierror"
	"itabus/internal/dto"
	"itabus/internal/infra"
	"itabus/internal/repository"
	"itabus/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectsHandler struct {
	svc            service.ProjectService
	pdfStoragePath string
}

func NewProjectsHandler(svc service.ProjectService, pdfStoragePath string) *ProjectsHandler {
	return &ProjectsHandler{svc: svc, pdfStoragePath: pdfStoragePath}
}

// Create godoc
// @Summary Cria um projeto com linhas de itens e preços calculados
// @Tags projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "Projeto"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/projects [post]
func (h *ProjectsHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), caller(c).ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProjectsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), caller(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar projetos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), caller(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadPDF renders the stored quote as a PDF and streams it back.
// Ownership rules are the same as Get — the service enforces them.
func (h *ProjectsHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	project, err := h.svc.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	path, err := infra.GenerateQuotePDF(project, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar PDF"))
		return
	}
	c.FileAttachment(path, "proposta_"+project.ID+".pdf")
}

// Calculate godoc
// @Summary Cálculo de preço sem persistência (simulação)
// @Tags projects
// @Accept json
// @Produce json
// @Param body body dto.CalculatePriceRequest true "Linhas"
// @Success 200 {object} dto.CalculatePriceResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/calculate-price [post]
func (h *ProjectsHandler) Calculate(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Calculate(c.Request.Context(), caller(c).ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Quote events ─────────────────────────────────────────────────────────────

// QuoteEventsHandler lists the async audit trail (admin only).
type QuoteEventsHandler struct {
	repo repository.QuoteEventRepository
}

func NewQuoteEventsHandler(repo repository.QuoteEventRepository) *QuoteEventsHandler {
	return &QuoteEventsHandler{repo: repo}
}

func (h *QuoteEventsHandler) ListRecent(c *gin.Context) {
	events, err := h.repo.ListRecent(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar eventos"))
		return
	}
	resp := make([]dto.QuoteEventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.QuoteEventResponse{
			ID:          e.ID.String(),
			Kind:        e.Kind,
			UserID:      e.UserID.String(),
			TotalCost:   e.TotalCost,
			TargetPrice: e.TargetPrice,
			MinPrice:    e.MinPrice,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, resp)
}
