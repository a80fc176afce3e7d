package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	Location  string `json:"location"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/me", h.mine)
	router.DELETE("/bookings/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide service_id, date, and location"))
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "date must be an RFC 3339 timestamp"))
		return
	}

	actor := actorFrom(c)
	created, err := h.service.Create(c.Request.Context(), *actor, booking.CreateBookingInput{
		ServiceID: req.ServiceID,
		Date:      date,
		Location:  req.Location,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	recordBookingCreated()
	respondOK(c, http.StatusCreated, "booking created successfully", created)
}

func (h *BookingHandler) mine(c *gin.Context) {
	actor := actorFrom(c)
	bookings, err := h.service.MyBookings(c.Request.Context(), *actor)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondList(c, bookings, len(bookings))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, domain.E(domain.KindInvalidInput, "invalid booking id"))
		return
	}

	actor := actorFrom(c)
	cancelled, err := h.service.Cancel(c.Request.Context(), *actor, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "booking cancelled successfully", cancelled)
}
