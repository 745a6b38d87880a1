// Package web assembles the gateway that hosts the route guard in front of
// the marketplace pages.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/evmarket/internal/logging"
	"github.com/dmitrijs2005/evmarket/internal/web/config"
	"github.com/dmitrijs2005/evmarket/internal/web/guard"
	"github.com/dmitrijs2005/evmarket/internal/web/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pages, err := pageHandler(c.Upstream, logger)
	if err != nil {
		return nil, err
	}

	g := guard.New(guard.Options{
		Routes:           c.Routes,
		CheckExpiry:      c.CheckExpiry,
		EnforceAdminRole: c.EnforceAdminRole,
		Secret:           []byte(c.Secret),
		Logger:           logger.With("module", "guard"),
		Metrics:          guard.NewMetrics(reg),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", g.Middleware(pages))

	handler := httpx.Chain(mux,
		httpx.RequestID,
		httpx.Logging(logger),
		httpx.Recover(logger),
		httpx.NewMetrics(reg).Instrument,
		httpx.NewRateLimiter(c.RateLimitRPS, c.RateLimitBurst).Middleware,
	)

	return &App{config: c, logger: logger, handler: handler}, nil
}

// Handler is the fully assembled gateway handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until SIGINT/SIGTERM or until ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s := httpx.NewServer(app.config.ListenAddr, app.handler, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}

// pageHandler proxies to upstream, or serves placeholder pages when no
// upstream is configured.
func pageHandler(upstream string, logger logging.Logger) (http.Handler, error) {
	if upstream == "" {
		return http.HandlerFunc(placeholder), nil
	}

	u, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parse upstream: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream %q must be absolute", upstream)
	}

	proxy := httputil.NewSingleHostReverseProxy(u)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error(r.Context(), "upstream error", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
	}
	return proxy, nil
}

func placeholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "EV Marketplace %s\n", r.URL.Path)
	if c, ok := guard.ClaimsFromContext(r.Context()); ok {
		fmt.Fprintf(w, "signed in as %s (%s)\n", c.UserID, c.Role.Name())
	}
}
