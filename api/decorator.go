package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/booking"
)

// DecoratorHandler serves the provider-facing project routes.
type DecoratorHandler struct {
	service booking.BookingUseCase
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateStageRequest struct {
	Status1 string `json:"status1"`
}

func NewDecoratorHandler(service booking.BookingUseCase) *DecoratorHandler {
	return &DecoratorHandler{service: service}
}

func (h *DecoratorHandler) Register(router *gin.RouterGroup) {
	router.GET("/projects", h.projects)
	router.PUT("/project/:id/status", h.updateStatus)
	router.PUT("/project/:id/status1", h.updateOnSiteStage)
}

func (h *DecoratorHandler) projects(c *gin.Context) {
	actor := actorFrom(c)
	projects, err := h.service.Projects(c.Request.Context(), *actor)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, projects, len(projects))
}

func (h *DecoratorHandler) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid booking id"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide status"))
		return
	}

	actor := actorFrom(c)
	updated, err := h.service.AdvanceStatus(c.Request.Context(), *actor, id, domain.BookingStatus(req.Status))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "booking status updated successfully", updated)
}

func (h *DecoratorHandler) updateOnSiteStage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid booking id"))
		return
	}

	var req updateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status1 == "" {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide status1"))
		return
	}

	actor := actorFrom(c)
	updated, err := h.service.AdvanceOnSiteStage(c.Request.Context(), *actor, id, domain.OnSiteStage(req.Status1))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "on-site service status updated successfully", updated)
}
