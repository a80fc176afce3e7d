package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/payment"
)

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) CreateIntent(ctx context.Context, actor domain.Account, bookingID int64) (*payment.CreateIntentResult, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CreateIntentResult), args.Error(1)
}

func (m *MockPaymentUseCase) Confirm(ctx context.Context, actor domain.Account, input payment.ConfirmInput) (*payment.ConfirmResult, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ConfirmResult), args.Error(1)
}

func TestPaymentHandler_createIntent(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createIntentRequest{BookingID: 1})
	c.Request = httptest.NewRequest("POST", "/payments/create-intent", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	actor := testActor()
	c.Set(accountKey, actor)

	result := &payment.CreateIntentResult{ClientSecret: "pi_abc_secret", PaymentID: 9, Amount: 1250.50}
	mockService.On("CreateIntent", c.Request.Context(), *actor, int64(1)).Return(result, nil)

	handler.createIntent(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	mockService.AssertExpectations(t)
}

func TestPaymentHandler_createIntent_missingBookingID(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/payments/create-intent", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(accountKey, testActor())

	handler.createIntent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateIntent")
}

func TestPaymentHandler_confirm(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(confirmPaymentRequest{PaymentID: 9, IntentID: "pi_abc"})
	c.Request = httptest.NewRequest("POST", "/payments/confirm", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	actor := testActor()
	c.Set(accountKey, actor)

	result := &payment.ConfirmResult{
		Payment: &domain.Payment{ID: 9, Status: domain.PaymentStatusSucceeded},
		Booking: &domain.Booking{ID: 1, PaymentStatus: domain.PaymentStatePaid},
	}
	mockService.On("Confirm", c.Request.Context(), *actor, payment.ConfirmInput{PaymentID: 9, IntentID: "pi_abc"}).Return(result, nil)

	handler.confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestPaymentHandler_confirm_intentIDOnly(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(confirmPaymentRequest{IntentID: "pi_abc"})
	c.Request = httptest.NewRequest("POST", "/payments/confirm", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	actor := testActor()
	c.Set(accountKey, actor)

	result := &payment.ConfirmResult{
		Payment: &domain.Payment{ID: 9, Status: domain.PaymentStatusSucceeded},
		Booking: &domain.Booking{ID: 1, PaymentStatus: domain.PaymentStatePaid},
	}
	mockService.On("Confirm", c.Request.Context(), *actor, payment.ConfirmInput{IntentID: "pi_abc"}).Return(result, nil)

	handler.confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestPaymentHandler_confirm_paymentIDOnly(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(confirmPaymentRequest{PaymentID: 9})
	c.Request = httptest.NewRequest("POST", "/payments/confirm", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	actor := testActor()
	c.Set(accountKey, actor)

	result := &payment.ConfirmResult{
		Payment: &domain.Payment{ID: 9, Status: domain.PaymentStatusSucceeded},
		Booking: &domain.Booking{ID: 1, PaymentStatus: domain.PaymentStatePaid},
	}
	mockService.On("Confirm", c.Request.Context(), *actor, payment.ConfirmInput{PaymentID: 9}).Return(result, nil)

	handler.confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestPaymentHandler_confirm_bothMissing(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/payments/confirm", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(accountKey, testActor())

	handler.confirm(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Confirm")
}

func TestPaymentHandler_confirm_providerPending(t *testing.T) {
	mockService := &MockPaymentUseCase{}
	handler := NewPaymentHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(confirmPaymentRequest{PaymentID: 9, IntentID: "pi_abc"})
	c.Request = httptest.NewRequest("POST", "/payments/confirm", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	actor := testActor()
	c.Set(accountKey, actor)

	mockService.On("Confirm", c.Request.Context(), *actor, mock.Anything).Return(nil, domain.E(domain.KindInvalidState, "payment not completed; current status: requires_action"))

	handler.confirm(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "requires_action")
}
