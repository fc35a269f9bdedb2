package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/takneev/artisan-studio/internal/config"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "artisan-studio: %v\n", err)
		os.Exit(1)
	}

	if err := runAll(ctx, studioProcs(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "artisan-studio exited with error: %v\n", err)
		os.Exit(1)
	}
}

// studioProcs builds the wasm bundle into the assets directory and starts the
// dev server on the same settings, so STUDIO_ env vars and STUDIO_CONFIG
// apply to both.
func studioProcs(cfg config.Config) []procConfig {
	serve := []string{
		"go", "run", "./cmd/studio-serve",
		"--listen", cfg.Listen,
		"--api", cfg.API,
		"--assets", cfg.Assets,
		"--page", cfg.Page,
		"--log-level", cfg.Log.Level,
	}
	if cfg.Log.Dir != "" {
		serve = append(serve, "--log-dir", cfg.Log.Dir)
	}
	return []procConfig{
		{
			Name: "build-studio-wasm",
			Args: []string{"go", "build", "-o", filepath.Join(cfg.Assets, "main.wasm"), "./cmd/studio-wasm"},
			Env:  []string{"GOOS=js", "GOARCH=wasm"},
		},
		{
			Name: "studio-serve",
			Args: serve,
		},
	}
}

func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return fmt.Errorf("no processes configured")
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, cfg := range procs {
		wg.Add(1)
		go func(cfg procConfig) {
			defer wg.Done()
			cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if cfg.Dir != "" {
				cmd.Dir = cfg.Dir
			}
			if len(cfg.Env) > 0 {
				cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
			}
			if err := cmd.Start(); err != nil {
				errCh <- fmt.Errorf("%s start: %w", cfg.Name, err)
				return
			}
			if err := cmd.Wait(); err != nil {
				// If the context was cancelled, treat the exit as expected.
				select {
				case <-ctx.Done():
					return
				default:
				}
				errCh <- fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
		}(cfg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		shutdownDelay := time.After(2 * time.Second)
		select {
		case <-done:
		case <-shutdownDelay:
		}
	case err := <-errCh:
		return err
	case <-done:
	}
	return nil
}
