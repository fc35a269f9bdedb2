// Package controller drives the studio and community pages: tabs, session
// gating, file selection, uploads, listings, the profile panel and the
// auth/QR/post modals. All DOM and view-state access goes through one mutex;
// network calls run without it.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/takneev/artisan-studio/internal/ui/api"
	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/state"
	"github.com/takneev/artisan-studio/logging"
)

// ErrUnknownTab is returned when a tab has no button or no panel on the page.
var ErrUnknownTab = errors.New("unknown tab")

// ErrUnknownModal is returned for a modal kind the page does not define.
var ErrUnknownModal = errors.New("unknown modal")

// API is the subset of the marketplace API the controller calls.
type API interface {
	CheckAuth(ctx context.Context) (model.Session, error)
	Login(ctx context.Context, creds model.Credentials) error
	Signup(ctx context.Context, form model.SignupForm) error
	MyArtworks(ctx context.Context) ([]model.ArtworkSummary, error)
	UploadArtwork(ctx context.Context, fields model.ArtworkFields, files []model.Blob) error
	DeleteArtwork(ctx context.Context, id string) error
	SuggestPrice(ctx context.Context, fields model.ArtworkFields, file model.Blob) (string, error)
	GenerateDescription(ctx context.Context, fields model.ArtworkFields, file model.Blob) (string, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, draft model.PostDraft) error
}

// Browser covers the window-level effects: dialogs and navigation.
type Browser interface {
	Alert(message string)
	Confirm(message string) bool
	Navigate(path string)
	Reload()
	Download(href, filename string)
}

// FileInputs reads and rewrites the file lists of <input type="file"> elements.
type FileInputs interface {
	Selected(inputID string) []model.Blob
	Replace(inputID string, blobs []model.Blob)
}

// Thumbnailer produces an image data URL for a preview.
type Thumbnailer interface {
	DataURL(ctx context.Context, blob model.Blob) (string, error)
}

// Options wires a Controller.
type Options struct {
	Document   dom.Document
	API        API
	Storage    state.Storage
	Browser    Browser
	Files      FileInputs
	Thumbnails Thumbnailer
	Logger     *logging.Logger
	// Origin is the page origin, used for the profile QR link.
	Origin string
}

// Controller owns the page's view state.
type Controller struct {
	mu      sync.Mutex
	doc     dom.Document
	api     API
	storage state.Storage
	browser Browser
	inputs  FileInputs
	thumbs  Thumbnailer
	logger  *logging.Logger
	origin  string

	view          *state.ViewState
	thumbCache    map[string]string
	thumbInFlight map[string]bool
	pending       sync.WaitGroup
	onPostSuccess func()
}

// New constructs a Controller. Document, API and Browser are required.
func New(opts Options) *Controller {
	c := &Controller{
		doc:           opts.Document,
		api:           opts.API,
		storage:       opts.Storage,
		browser:       opts.Browser,
		inputs:        opts.Files,
		thumbs:        opts.Thumbnails,
		logger:        opts.Logger,
		origin:        opts.Origin,
		view:          state.New(),
		thumbCache:    make(map[string]string),
		thumbInFlight: make(map[string]bool),
	}
	if c.storage == nil {
		c.storage = state.NewMemoryStorage()
	}
	if c.inputs == nil {
		c.inputs = noFileInputs{}
	}
	if c.thumbs == nil {
		c.thumbs = DataURLThumbnailer{}
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// Wait blocks until pending thumbnail reads have finished.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Session returns the last session seen by CheckSession.
func (c *Controller) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Session
}

// ActiveTab returns the active studio tab.
func (c *Controller) ActiveTab() model.Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.ActiveTab
}

// SelectedFiles returns the current selection.
func (c *Controller) SelectedFiles() []model.SelectedFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Files.Files()
}

// ModalOpen reports whether kind is shown.
func (c *Controller) ModalOpen(kind model.ModalKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.ModalOpen(kind)
}

// busyLocked disables the control and swaps its label. The returned func
// restores both and takes the lock itself.
func (c *Controller) busyLocked(selector, label string) func() {
	original := c.doc.HTML(selector)
	wasDisabled := c.doc.Disabled(selector)
	c.doc.SetDisabled(selector, true)
	c.doc.SetHTML(selector, label)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.doc.SetHTML(selector, original)
		c.doc.SetDisabled(selector, wasDisabled)
	}
}

// reportFailure alerts the server message after prefix, or the generic text
// for transport failures.
func (c *Controller) reportFailure(category, prefix, generic string, err error) {
	c.logger.Error(category, "request failed", err, nil)
	if msg, ok := api.ServerMessage(err); ok {
		c.browser.Alert(prefix + msg)
		return
	}
	if errors.Is(err, api.ErrTransport) {
		c.browser.Alert(generic)
		return
	}
	c.browser.Alert(prefix + err.Error())
}

type noFileInputs struct{}

func (noFileInputs) Selected(string) []model.Blob { return nil }
func (noFileInputs) Replace(string, []model.Blob) {}
