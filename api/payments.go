package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/payment"
)

// PaymentHandler serves the client payment routes.
type PaymentHandler struct {
	service payment.PaymentUseCase
}

type createIntentRequest struct {
	BookingID int64 `json:"booking_id"`
}

type confirmPaymentRequest struct {
	PaymentID int64  `json:"payment_id"`
	IntentID  string `json:"payment_intent_id"`
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/create-intent", h.createIntent)
	router.POST("/confirm", h.confirm)
}

func (h *PaymentHandler) createIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookingID == 0 {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide booking_id"))
		return
	}

	actor := actorFrom(c)
	result, err := h.service.CreateIntent(c.Request.Context(), *actor, req.BookingID)
	if err != nil {
		respondErr(c, err)
		return
	}
	// 200 rather than 201: the returned intent may be a reused pending one.
	respondOK(c, http.StatusOK, "payment intent ready", result)
}

func (h *PaymentHandler) confirm(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.PaymentID == 0 && req.IntentID == "") {
		respondErr(c, domain.E(domain.KindInvalidInput, "please provide payment_id or payment_intent_id"))
		return
	}

	actor := actorFrom(c)
	updated, err := h.service.Confirm(c.Request.Context(), *actor, payment.ConfirmInput{
		PaymentID: req.PaymentID,
		IntentID:  req.IntentID,
	})
	if err != nil {
		recordPaymentConfirmed("failure")
		respondErr(c, err)
		return
	}
	recordPaymentConfirmed("success")
	respondOK(c, http.StatusOK, "payment confirmed successfully", updated)
}
