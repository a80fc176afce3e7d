package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/styledecor/styledecor/api"
	"github.com/styledecor/styledecor/config"
	"github.com/styledecor/styledecor/internal/auth"
	"github.com/styledecor/styledecor/internal/domain"
	"github.com/styledecor/styledecor/internal/service/account"
	"github.com/styledecor/styledecor/internal/service/analytics"
	"github.com/styledecor/styledecor/internal/service/booking"
	"github.com/styledecor/styledecor/internal/service/catalog"
	"github.com/styledecor/styledecor/internal/service/payment"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Verifier  auth.TokenVerifier
	Accounts  account.AccountUseCase
	Bookings  booking.BookingUseCase
	Catalog   catalog.CatalogUseCase
	Payments  payment.PaymentUseCase
	Analytics analytics.AnalyticsUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, svcs Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, logger, svcs),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, logger *zap.Logger, svcs Services) *gin.Engine {
	if !cfg.HTTP.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), api.Logger(logger), api.Metrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", api.PrometheusHandler())

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/styledecor.swagger.json"),
		)))
	}

	authn := api.Authenticate(svcs.Verifier, svcs.Accounts)

	public := router.Group("/api/v1")
	api.NewCatalogHandler(svcs.Catalog).Register(public)
	api.NewAccountHandler(svcs.Verifier, svcs.Accounts).Register(public)

	user := router.Group("/api/v1", authn)
	api.NewBookingHandler(svcs.Bookings).Register(user)

	paymentsGroup := router.Group("/api/v1/payments", authn)
	api.NewPaymentHandler(svcs.Payments).Register(paymentsGroup)

	decorator := router.Group("/api/v1/decorator", authn, api.RequireRole(domain.RoleDecorator))
	api.NewDecoratorHandler(svcs.Bookings).Register(decorator)

	admin := router.Group("/api/v1/admin", authn, api.RequireRole(domain.RoleAdmin))
	api.NewAdminHandler(svcs.Accounts, svcs.Bookings, svcs.Catalog, svcs.Analytics).Register(admin)

	return router
}
