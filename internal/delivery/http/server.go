package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vladima-ai/payment-service/internal/delivery/http/handlers"
)

type Server struct {
	echo             *echo.Echo
	robokassaHandler *handlers.RobokassaHandler
}

func NewServer(robokassaHandler *handlers.RobokassaHandler) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		echo:             e,
		robokassaHandler: robokassaHandler,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// ResultURL is configured in the gateway's shop settings as GET or POST.
	s.echo.GET("/robokassa/result", s.robokassaHandler.HandleResult)
	s.echo.POST("/robokassa/result", s.robokassaHandler.HandleResult)
	s.echo.GET("/robokassa/success", s.robokassaHandler.HandleSuccess)
	s.echo.GET("/robokassa/fail", s.robokassaHandler.HandleFail)

	api := s.echo.Group("/api")
	api.POST("/payments", s.robokassaHandler.HandleCreatePayment)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
