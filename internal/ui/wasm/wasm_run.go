//go:build js && wasm

package wasm

import (
	"context"
	"os"
	"syscall/js"

	"github.com/takneev/artisan-studio/internal/ui/api"
	"github.com/takneev/artisan-studio/internal/ui/controller"
	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/forms"
	"github.com/takneev/artisan-studio/logging"
)

// RunApp binds the studio and community pages and blocks forever.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	Document = window.Get("document")
	origin := window.Get("location").Get("origin").String()

	logger := logging.New("studio", logging.INFO, os.Stdout)
	ctrl := controller.New(controller.Options{
		Document: dom.NewJSDocument(),
		API:      api.NewClient(origin, nil, logger),
		Storage:  localStorage{},
		Browser:  browserWindow{},
		Files:    fileInputs{},
		Logger:   logger,
		Origin:   origin,
	})

	defer ReleaseHandlers()
	bindDocumentClicks(ctrl)
	bindUploadArea(ctrl)
	bindForms(ctrl)
	bindAIButtons(ctrl)
	bindCommunity(ctrl)

	if byID(forms.ArtworkForm).Truthy() {
		spawn(func(ctx context.Context) { _, _ = ctrl.CheckSession(ctx) })
	}
	if Document.Call("querySelector", "#postFeed").Truthy() {
		spawn(func(ctx context.Context) { _ = ctrl.LoadPosts(ctx) })
	}
	<-done
}
