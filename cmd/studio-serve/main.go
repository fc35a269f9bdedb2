//go:build !js && !wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/takneev/artisan-studio/internal/config"
	"github.com/takneev/artisan-studio/internal/telemetry"
	"github.com/takneev/artisan-studio/logging"
)

// proxiedPaths are forwarded to the marketplace API.
var proxiedPaths = []string{"/api/", "/login", "/signup"}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "studio-serve: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.Flags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	writers := []io.Writer{os.Stdout}
	if cfg.Log.Dir != "" {
		file, err := logging.NewRotatingFile(cfg.Log.Dir, "studio-serve.log", 0, 0)
		if err != nil {
			return err
		}
		defer file.Close()
		writers = append(writers, file)
	}
	logger := logging.New("studio-serve", logging.ParseLevel(cfg.Log.Level), writers...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	handler, err := newHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(closeCtx)
	}()

	logger.Info("server", "serving studio UI", map[string]any{
		"assets": cfg.Assets,
		"listen": cfg.Listen,
		"api":    cfg.API,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// newHandler validates cfg, audits the studio page and builds the served mux.
func newHandler(ctx context.Context, cfg config.Config, logger *logging.Logger) (http.Handler, error) {
	root, err := filepath.Abs(cfg.Assets)
	if err != nil {
		return nil, fmt.Errorf("resolve static directory: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("static directory %s is invalid: %v", root, err)
	}

	apiURL, err := url.Parse(cfg.API)
	if err != nil || apiURL.Scheme == "" || apiURL.Host == "" {
		return nil, fmt.Errorf("invalid API target %q: %v", cfg.API, err)
	}

	if cfg.Page != "" {
		auditPage(ctx, filepath.Join(root, cfg.Page), logger)
	}

	mime.AddExtensionType(".wasm", "application/wasm")

	mux := http.NewServeMux()
	proxy := apiProxyHandler(apiURL)
	for _, path := range proxiedPaths {
		mux.Handle(path, proxy)
	}
	mux.Handle("/", staticHandler(root))

	traced := otelhttp.NewHandler(mux, "studio-serve",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + spanRoute(r.URL.Path)
		}),
	)
	return logging.NewHTTPLogger(logger).Middleware(traced), nil
}

func apiProxyHandler(target *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Host = target.Host
		proxy.ServeHTTP(w, r)
	})
}

func staticHandler(root string) http.Handler {
	fileServer := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "" {
			http.ServeFile(w, r, filepath.Join(root, "index.html"))
			return
		}
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		fileServer.ServeHTTP(w, r)
	})
}

// spanRoute keeps span names low-cardinality.
func spanRoute(path string) string {
	for _, prefix := range proxiedPaths {
		if strings.HasPrefix(path, prefix) {
			if prefix == "/api/" {
				return "/api/*"
			}
			return prefix
		}
	}
	if strings.HasSuffix(path, ".wasm") {
		return "*.wasm"
	}
	return "static"
}
