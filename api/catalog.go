package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/catalog"
)

// CatalogHandler serves the public service catalog routes.
type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/services", h.list)
	router.GET("/services/:id", h.get)
}

func (h *CatalogHandler) list(c *gin.Context) {
	services, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, services, len(services))
}

func (h *CatalogHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid service id"))
		return
	}

	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", svc)
}
