package app

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/you/expensefront/domain"
	"github.com/you/expensefront/internal/config"
	"github.com/you/expensefront/internal/infrastructure/api"
	"github.com/you/expensefront/internal/infrastructure/auth"
	"github.com/you/expensefront/internal/infrastructure/storage"
	"github.com/you/expensefront/internal/routing"
	"github.com/you/expensefront/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	RedisClient *redis.Client
	APIClient   *api.Client

	// Stores and clients
	SessionStore domain.SessionStore
	AuthAPI      domain.AuthAPI
	ExpensesAPI  *api.ExpensesClient
	ReportsAPI   *api.ReportsClient

	// Services
	Sessions    *services.SessionService
	RoutePolicy domain.RoutePolicy
	Router      *routing.Router
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	container := &Container{Config: cfg, Logger: logger}

	if err := container.initStorage(); err != nil {
		return nil, err
	}
	container.initAPIClients()
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initStorage() error {
	switch c.Config.SessionStorage {
	case config.StorageRedis:
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		c.SessionStore = storage.NewRedisSessionStore(c.RedisClient, c.Config.SessionTTL)
	case config.StorageFile:
		store, err := storage.NewFileSessionStore(c.Config.SessionStateFile)
		if err != nil {
			return fmt.Errorf("failed to open session file: %w", err)
		}
		c.SessionStore = store
	default:
		return fmt.Errorf("unknown session storage backend %q", c.Config.SessionStorage)
	}
	return nil
}

func (c *Container) initAPIClients() {
	c.APIClient = api.NewClient(c.Config.APIBaseURL, c.Config.APITimeout)
	c.AuthAPI = api.NewAuthClient(c.APIClient)
	c.ExpensesAPI = api.NewExpensesClient(c.APIClient)
	c.ReportsAPI = api.NewReportsClient(c.APIClient)
}

func (c *Container) initServices() error {
	policy, err := routing.NewRoutePolicy()
	if err != nil {
		return fmt.Errorf("failed to build route policy: %w", err)
	}
	c.RoutePolicy = policy
	c.Router = routing.NewRouter(policy, c.Logger)

	c.Sessions = services.NewSessionService(
		c.SessionStore,
		c.AuthAPI,
		auth.NewJWTInspector(),
		c.Logger,
		services.Redirects{
			Login:     routing.PathLogin,
			AdminHome: routing.PathAdminDashboard,
			SalesHome: routing.PathDashboard,
		},
	)
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
