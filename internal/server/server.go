package server

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/app"
	"github.com/ariqM1/fullstack-jam/internal/config"
	"github.com/ariqM1/fullstack-jam/internal/domain"
	apperrors "github.com/ariqM1/fullstack-jam/internal/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

// AppService is the application surface the handlers depend on.
type AppService interface {
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	GetCollectionPage(ctx context.Context, id uuid.UUID, offset, limit int) (*domain.CollectionPage, error)
	ListCompanies(ctx context.Context, offset, limit int) (*domain.CompanyPage, error)
	LikeCompany(ctx context.Context, companyID int64) error
	UnlikeCompany(ctx context.Context, companyID int64) error
	CopySelected(ctx context.Context, sourceID, targetID uuid.UUID, companyIDs []int64) (*app.CopyAccepted, error)
	CopyAll(ctx context.Context, sourceID, targetID uuid.UUID) (*app.CopyAccepted, error)
	OperationStatus(ctx context.Context, id uuid.UUID) (*domain.Operation, error)
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

// redisHealthChecker is a minimal interface for Redis health checks.
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

type Server struct {
	echo          *echo.Echo
	config        *config.Config
	app           AppService
	db            postgresHealthChecker
	redis         redisHealthChecker
	indexTemplate *template.Template
	startTime     time.Time
}

func NewServer(cfg *config.Config, appSvc AppService, pool *pgxpool.Pool, rdb *goredis.Client) (*Server, error) {
	// Parse the UI template once at startup
	indexTmpl, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:          e,
		config:        cfg,
		app:           appSvc,
		db:            pool,
		redis:         rdb,
		indexTemplate: indexTmpl,
		startTime:     time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
