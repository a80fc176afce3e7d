package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/account"
	"github.com/styledecor/styledecor/internal/service/analytics"
	"github.com/styledecor/styledecor/internal/service/booking"
	"github.com/styledecor/styledecor/internal/service/catalog"
)

// AdminHandler serves the management surface: catalog CRUD, booking
// assignment, decorator lifecycle and analytics.
type AdminHandler struct {
	accounts  account.AccountUseCase
	bookings  booking.BookingUseCase
	catalog   catalog.CatalogUseCase
	analytics analytics.AnalyticsUseCase
}

type assignRequest struct {
	DecoratorID int64 `json:"decorator_id"`
}

type promoteRequest struct {
	Specialties []string `json:"specialties"`
}

func NewAdminHandler(
	accounts account.AccountUseCase,
	bookings booking.BookingUseCase,
	cat catalog.CatalogUseCase,
	an analytics.AnalyticsUseCase,
) *AdminHandler {
	return &AdminHandler{accounts: accounts, bookings: bookings, catalog: cat, analytics: an}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.POST("/services", h.createService)
	router.PUT("/services/:id", h.updateService)
	router.DELETE("/services/:id", h.deleteService)

	router.GET("/bookings", h.listBookings)
	router.PUT("/bookings/:id/assign", h.assignBooking)

	router.GET("/users", h.listUsers)
	router.PUT("/users/:id/make-decorator", h.promote)

	router.GET("/decorators", h.listDecorators)
	router.PUT("/decorators/:id/approve", h.approveDecorator)
	router.PUT("/decorators/:id/disable", h.disableDecorator)

	router.GET("/analytics/revenue", h.revenue)
	router.GET("/analytics/service-demand", h.serviceDemand)
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.E(domain.KindInvalidInput, "invalid id")
	}
	return id, nil
}

func (h *AdminHandler) createService(c *gin.Context) {
	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid service payload"))
		return
	}

	actor := actorFrom(c)
	created, err := h.catalog.Create(c.Request.Context(), *actor, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "service created successfully", created)
}

func (h *AdminHandler) updateService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid service payload"))
		return
	}

	updated, err := h.catalog.Update(c.Request.Context(), id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "service updated successfully", updated)
}

func (h *AdminHandler) deleteService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "service deleted successfully", nil)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	bookings, err := h.bookings.ListAll(
		c.Request.Context(),
		domain.BookingStatus(c.Query("status")),
		domain.PaymentState(c.Query("payment_status")),
	)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, bookings, len(bookings))
}

func (h *AdminHandler) assignBooking(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DecoratorID == 0 {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide decorator_id"))
		return
	}

	updated, err := h.bookings.Assign(c.Request.Context(), id, req.DecoratorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "decorator assigned successfully", updated)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.accounts.ListAccounts(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, users, len(users))
}

func (h *AdminHandler) promote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid promotion payload"))
		return
	}

	result, err := h.accounts.Promote(c.Request.Context(), id, req.Specialties)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "user promoted to decorator successfully", result)
}

func (h *AdminHandler) listDecorators(c *gin.Context) {
	decorators, err := h.accounts.ListDecorators(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, decorators, len(decorators))
}

func (h *AdminHandler) approveDecorator(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	updated, err := h.accounts.ApproveDecorator(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "decorator approved successfully", updated)
}

func (h *AdminHandler) disableDecorator(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	updated, err := h.accounts.DisableDecorator(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "decorator disabled successfully", updated)
}

func (h *AdminHandler) revenue(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		respondErr(c, err)
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		respondErr(c, err)
		return
	}

	report, err := h.analytics.Revenue(c.Request.Context(), from, to)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", report)
}

func (h *AdminHandler) serviceDemand(c *gin.Context) {
	report, err := h.analytics.ServiceDemand(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", report)
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return nil, domain.Ef(domain.KindInvalidInput, "invalid %s date", name)
	}
	return &parsed, nil
}
