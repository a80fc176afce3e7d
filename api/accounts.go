package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/auth"
	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/account"
)

// AccountHandler serves registration and the public decorator listing.
// Registration verifies the token itself because it runs before the
// account-backed Authenticate middleware can resolve an actor.
type AccountHandler struct {
	verifier auth.TokenVerifier
	service  account.AccountUseCase
}

func NewAccountHandler(verifier auth.TokenVerifier, service account.AccountUseCase) *AccountHandler {
	return &AccountHandler{verifier: verifier, service: service}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.GET("/decorators/top", h.topDecorators)
}

func (h *AccountHandler) register(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		respondErr(c, domain.E(domain.KindUnauthenticated, "missing bearer token"))
		return
	}

	ident, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		respondErr(c, err)
		return
	}

	var input account.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide name"))
		return
	}

	created, err := h.service.Register(c.Request.Context(), *ident, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "account registered successfully", created)
}

func (h *AccountHandler) topDecorators(c *gin.Context) {
	decorators, err := h.service.TopDecorators(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, decorators, len(decorators))
}
