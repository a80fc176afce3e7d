package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/styledecor/styledecor/internal/auth"
	"github.com/styledecor/styledecor/internal/domain"
)

const accountKey = "account"

// AccountResolver maps a verified subject to a local account.
type AccountResolver interface {
	ResolveSubject(ctx context.Context, subjectID string) (*domain.Account, error)
}

// Authenticate verifies the bearer credential and attaches the local
// account. Handlers then pass the account explicitly into services.
func Authenticate(verifier auth.TokenVerifier, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response{Success: false, Message: "no token provided; include a Bearer token in the Authorization header"})
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondErr(c, err)
			c.Abort()
			return
		}

		account, err := accounts.ResolveSubject(c.Request.Context(), ident.SubjectID)
		if err != nil {
			if domain.IsKind(err, domain.KindNotFound) {
				err = domain.E(domain.KindNotFound, "account not found; please complete your profile registration")
			}
			respondErr(c, err)
			c.Abort()
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := actorFrom(c)
		if account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response{Success: false, Message: "authentication required"})
			return
		}
		for _, role := range roles {
			if account.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response{Success: false, Message: "access denied for role " + string(account.Role)})
	}
}

func actorFrom(c *gin.Context) *domain.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, _ := v.(*domain.Account)
	return account
}

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("http request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	bookingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	paymentsConfirmedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_confirmed_total",
			Help: "Total number of payment confirmation attempts",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(bookingsCreatedTotal)
	prometheus.MustRegister(paymentsConfirmedTotal)
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func recordBookingCreated() {
	bookingsCreatedTotal.Inc()
}

func recordPaymentConfirmed(outcome string) {
	paymentsConfirmedTotal.WithLabelValues(outcome).Inc()
}
