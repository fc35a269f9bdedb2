//go:build !js && !wasm

package main

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"github.com/takneev/artisan-studio/internal/telemetry"
	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/logging"
)

// auditPage loads the studio page into the headless document and warns about
// tab buttons and panels that do not pair up. A missing page is skipped.
func auditPage(ctx context.Context, path string, logger *logging.Logger) []dom.TabIssue {
	_, span := telemetry.Tracer().Start(ctx, "audit-page")
	defer span.End()
	span.SetAttributes(attribute.String("page", path))

	f, err := os.Open(path)
	if err != nil {
		logger.Debug("audit", "studio page not found, skipping tab audit", map[string]any{"page": path})
		return nil
	}
	defer f.Close()

	doc, err := dom.NewHTMLDocument(f)
	if err != nil {
		logger.Warn("audit", "studio page could not be parsed", map[string]any{"page": path, "error": err.Error()})
		return nil
	}
	issues := doc.AuditTabs()
	for _, issue := range issues {
		logger.Warn("audit", "tab markup mismatch", map[string]any{
			"page":    path,
			"tab":     issue.Tab,
			"problem": issue.Problem,
		})
	}
	span.SetAttributes(attribute.Int("issues", len(issues)))
	return issues
}
