package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Table UI
	s.echo.GET("/", s.handleIndex)

	api := s.echo.Group("/api")

	// Collections
	api.GET("/collections", s.handleListCollections)
	api.GET("/collections/:id", s.handleGetCollection)

	// Copy actions are the only write-heavy endpoints; rate limit per IP
	copyLimiter := newRateLimiter(s.config.CopyRatePerSecond, s.config.CopyRateBurst)
	api.POST("/collections/:source/add-to/:target", s.handleCopySelected, copyLimiter)
	api.POST("/collections/:source/add-all-to/:target", s.handleCopyAll, copyLimiter)

	// Operation status polling
	api.GET("/operations/:id", s.handleOperationStatus)

	// Companies
	api.GET("/companies", s.handleListCompanies)
	api.POST("/companies/:id/like", s.handleLikeCompany)
	api.DELETE("/companies/:id/like", s.handleUnlikeCompany)
}
