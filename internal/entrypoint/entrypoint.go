package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/librarian/internal/auth"
	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/borrows"
	"github.com/mrlokans/librarian/internal/database/mongodb"
	"github.com/mrlokans/librarian/internal/database/users"
	http_controllers "github.com/mrlokans/librarian/internal/http"
	"github.com/mrlokans/librarian/internal/services"
)

// Backend bundles the stores of one persistence driver.
type Backend struct {
	Users   services.UserStore
	Books   services.BookStore
	Borrows services.BorrowStore
	Store   http_controllers.Pinger
	close   func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend connects to the configured store. Opening also creates the
// schema (sqlite) or indexes (mongo).
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewDatabase(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Users:   users.NewRepository(db.DB),
			Books:   books.NewRepository(db.DB),
			Borrows: borrows.NewRepository(db.DB),
			Store:   db,
			close:   db.Close,
		}, nil

	case config.DriverMongo:
		store, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Users:   store.Users(),
			Books:   store.Books(),
			Borrows: store.Borrows(),
			Store:   store,
			close:   store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// NewRouter wires services on top of backend and builds the HTTP router.
func NewRouter(cfg *config.Config, backend *Backend, version string) (*gin.Engine, error) {
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	if err != nil {
		return nil, err
	}

	routerCfg := http_controllers.RouterConfig{
		Users:          services.NewUserService(backend.Users, tokens, cfg.Auth.BcryptCost),
		Books:          services.NewBookService(backend.Books),
		Borrows:        services.NewBorrowService(backend.Borrows, backend.Users, backend.Books),
		AuthMiddleware: auth.NewMiddleware(tokens),
		Store:          backend.Store,
		Version:        version,
	}
	return http_controllers.NewRouter(routerCfg), nil
}

// Serve runs the server until ctx is cancelled, then shuts it down within
// the configured timeout.
func Serve(ctx context.Context, router http.Handler, cfg *config.Config) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Infof("Shutdown Server, waiting %v before killing", timeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logrus.Info("Server exiting")
	return nil
}

// Run starts the API and blocks until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	logrus.WithFields(logrus.Fields{
		"version": version,
		"driver":  cfg.Database.Driver,
	}).Info("Starting librarian")

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close store")
		}
	}()

	router, err := NewRouter(cfg, backend, version)
	if err != nil {
		return err
	}

	return Serve(ctx, router, cfg)
}

// Migrate creates the schema or indexes of the configured store and exits.
func Migrate(ctx context.Context, cfg *config.Config) error {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	logrus.WithField("driver", cfg.Database.Driver).Info("Migration complete")
	return backend.Close()
}
