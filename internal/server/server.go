package server

import (
	"context"
	"net/http"
	"time"

	"caelis-storefront/internal/config"
	"caelis-storefront/internal/handler"
	"caelis-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo                *echo.Echo
	orderHandler        *handler.OrderHandler
	subscriptionHandler *handler.SubscriptionHandler
	startedAt           time.Time
}

func NewServer(orderService service.OrderService, cfg *config.Config, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error))
			return nil
		},
	}))

	orderHandler := handler.NewOrderHandler(orderService, cfg.Environment.Production(), logger)
	subscriptionHandler := handler.NewSubscriptionHandler(orderService, logger)

	s := &Server{
		echo:                e,
		orderHandler:        orderHandler,
		subscriptionHandler: subscriptionHandler,
		startedAt:           time.Now(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", s.health)

	api.POST("/create-order", s.orderHandler.CreateOrder)
	api.POST("/verify-payment", s.orderHandler.VerifyPayment)
	api.POST("/webhook", s.orderHandler.Webhook)
	api.GET("/order/:orderId", s.orderHandler.GetOrder)

	api.POST("/subscribe", s.subscriptionHandler.Subscribe)

	s.echo.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Route not found",
		})
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Seconds(),
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
