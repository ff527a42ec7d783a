package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/adapters/http/site"
	"github.com/okian/pitchside/internal/adapters/http/swagger"
	"github.com/okian/pitchside/internal/adapters/mcptools"
	"github.com/okian/pitchside/internal/adapters/repository"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Our own system metrics replace the default Go collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "pitchside stopped with error", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	handler, err := newRouter(ctx, cfg, svc)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService builds the roster service over the configured source files.
func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	starting, err := repository.NewSource(cfg.StartingPath,
		repository.WithName("starting"), repository.WithSheet(cfg.SheetName))
	if err != nil {
		return nil, fmt.Errorf("starting source: %w", err)
	}
	bench, err := repository.NewSource(cfg.BenchPath,
		repository.WithName("bench"), repository.WithSheet(cfg.SheetName))
	if err != nil {
		return nil, fmt.Errorf("bench source: %w", err)
	}

	return service.New(
		service.WithLogger(log),
		service.WithSources(starting, bench),
		service.WithClubName(cfg.ClubName),
		service.WithAgeBins(cfg.AgeBins),
		service.WithImageBase(site.ImagePath),
		service.WithGeoJSONURL(cfg.GeoJSONURL),
		service.WithExportSheet(cfg.SheetName),
	), nil
}

// newRouter mounts every HTTP surface on one chi router.
func newRouter(ctx context.Context, cfg *config.Config, svc *service.Service) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusFound)
	})

	swagger.Register(ctx, r)
	site.Register(ctx, r, site.NewImageHandler(cfg.ImageDir, cfg.PlaceholderImage))
	api.NewServer(svc, svc).Register(ctx, r)

	if cfg.MCPEnabled {
		server, err := mcptools.NewServer(svc)
		if err != nil {
			return nil, fmt.Errorf("mcp server: %w", err)
		}
		mcptools.Register(ctx, r, cfg.MCPPath, server, func(next http.HandlerFunc) http.HandlerFunc {
			return api.MetricsMiddleware(next, "mcp")
		})
	}
	return r, nil
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
