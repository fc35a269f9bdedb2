package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/state"
	"github.com/takneev/artisan-studio/logging"
)

const studioPage = `<!doctype html>
<html><body>
<button id="logout-button">Logout</button>
<nav>
  <button class="studio-tab" data-tab="upload">Upload</button>
  <button class="studio-tab" data-tab="works">My Works</button>
  <button class="studio-tab" data-tab="profile">Profile</button>
</nav>
<div class="tab-content" id="uploadTab">
  <div class="form-card">
    <form id="artworkForm">
      <div id="uploadArea"></div>
      <input type="file" id="fileInput" multiple>
      <div id="filePreview"></div>
      <input id="artworkTitle" name="title">
      <select id="category"><option value="">Choose</option><option value="pottery">Pottery</option></select>
      <input id="materialUsed" name="material">
      <textarea id="description" name="description"></textarea>
      <input id="price" name="price">
      <button type="button" id="suggestPriceBtn">Suggest Fair Price</button>
      <button type="button" id="generateDescBtn">Generate</button>
      <button type="button" id="suggestPriceBtnInline">Suggest</button>
      <button type="submit">Upload Artwork</button>
    </form>
  </div>
</div>
<div class="tab-content" id="worksTab"><div class="works-grid"></div></div>
<div class="tab-content" id="profileTab">
  <h2 id="profileName">Loading...</h2>
  <p id="profileEmail"></p>
  <span id="totalArtworks">0</span><span id="totalViews">0</span><span id="totalLikes">0</span>
  <div id="profileQrContainer"></div>
</div>
<div id="authModal" class="modal" style="display: none;">
  <button class="auth-tab active" data-auth-tab="login">Login</button>
  <button class="auth-tab" data-auth-tab="signup">Sign up</button>
  <form id="loginForm" class="auth-form active"><input id="loginEmail"><input id="loginPassword" type="password"></form>
  <form id="signupForm" class="auth-form">
    <input id="signupName"><input id="signupEmail"><input id="signupPassword"><input id="signupConfirmPassword">
  </form>
</div>
<div id="qrCodeModal" class="modal" style="display: none;"><div id="qrCodeContainer"></div></div>
<div id="postModal" class="modal" style="display: none;">
  <form id="postForm"><textarea name="description"></textarea><input type="file" id="postImage"></form>
</div>
<div id="postFeed"></div>
</body></html>`

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	checkAuth    func(context.Context) (model.Session, error)
	login        func(model.Credentials) error
	signup       func(model.SignupForm) error
	myArtworks   func(context.Context) ([]model.ArtworkSummary, error)
	upload       func(model.ArtworkFields, []model.Blob) error
	deleteArt    func(string) error
	suggestPrice func(model.ArtworkFields, model.Blob) (string, error)
	generateDesc func(model.ArtworkFields, model.Blob) (string, error)
	listPosts    func() ([]model.Post, error)
	createPost   func(model.PostDraft) error
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) CheckAuth(ctx context.Context) (model.Session, error) {
	f.record("check-auth")
	if f.checkAuth == nil {
		return model.Session{}, nil
	}
	return f.checkAuth(ctx)
}

func (f *fakeAPI) Login(_ context.Context, creds model.Credentials) error {
	f.record("login")
	if f.login == nil {
		return nil
	}
	return f.login(creds)
}

func (f *fakeAPI) Signup(_ context.Context, form model.SignupForm) error {
	f.record("signup")
	if f.signup == nil {
		return nil
	}
	return f.signup(form)
}

func (f *fakeAPI) MyArtworks(ctx context.Context) ([]model.ArtworkSummary, error) {
	f.record("my-artworks")
	if f.myArtworks == nil {
		return []model.ArtworkSummary{}, nil
	}
	return f.myArtworks(ctx)
}

func (f *fakeAPI) UploadArtwork(_ context.Context, fields model.ArtworkFields, files []model.Blob) error {
	f.record("upload")
	if f.upload == nil {
		return nil
	}
	return f.upload(fields, files)
}

func (f *fakeAPI) DeleteArtwork(_ context.Context, id string) error {
	f.record("delete")
	if f.deleteArt == nil {
		return nil
	}
	return f.deleteArt(id)
}

func (f *fakeAPI) SuggestPrice(_ context.Context, fields model.ArtworkFields, file model.Blob) (string, error) {
	f.record("suggest-price")
	if f.suggestPrice == nil {
		return "", nil
	}
	return f.suggestPrice(fields, file)
}

func (f *fakeAPI) GenerateDescription(_ context.Context, fields model.ArtworkFields, file model.Blob) (string, error) {
	f.record("generate-description")
	if f.generateDesc == nil {
		return "", nil
	}
	return f.generateDesc(fields, file)
}

func (f *fakeAPI) ListPosts(context.Context) ([]model.Post, error) {
	f.record("list-posts")
	if f.listPosts == nil {
		return []model.Post{}, nil
	}
	return f.listPosts()
}

func (f *fakeAPI) CreatePost(_ context.Context, draft model.PostDraft) error {
	f.record("create-post")
	if f.createPost == nil {
		return nil
	}
	return f.createPost(draft)
}

type fakeBrowser struct {
	mu        sync.Mutex
	alerts    []string
	confirm   bool
	navigated []string
	reloads   int
	downloads [][2]string
}

func (b *fakeBrowser) Alert(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alerts = append(b.alerts, message)
}

func (b *fakeBrowser) Confirm(string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.confirm
}

func (b *fakeBrowser) Navigate(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.navigated = append(b.navigated, path)
}

func (b *fakeBrowser) Reload() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reloads++
}

func (b *fakeBrowser) Download(href, filename string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.downloads = append(b.downloads, [2]string{href, filename})
}

func (b *fakeBrowser) Alerts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.alerts...)
}

type fakeInputs struct {
	mu    sync.Mutex
	files map[string][]model.Blob
}

func (f *fakeInputs) Selected(id string) []model.Blob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Blob(nil), f.files[id]...)
}

func (f *fakeInputs) Replace(id string, blobs []model.Blob) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[id] = append([]model.Blob(nil), blobs...)
}

type harness struct {
	ctrl    *Controller
	doc     *dom.HTMLDocument
	api     *fakeAPI
	browser *fakeBrowser
	inputs  *fakeInputs
	storage *state.MemoryStorage
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	doc, err := dom.ParseHTML(studioPage)
	require.NoError(t, err)
	h := &harness{
		doc:     doc,
		api:     &fakeAPI{},
		browser: &fakeBrowser{},
		inputs:  &fakeInputs{files: make(map[string][]model.Blob)},
		storage: state.NewMemoryStorage(),
	}
	h.ctrl = New(Options{
		Document: doc,
		API:      h.api,
		Storage:  h.storage,
		Browser:  h.browser,
		Files:    h.inputs,
		Logger:   logging.Discard(),
		Origin:   "https://studio.example",
	})
	t.Cleanup(h.ctrl.Wait)
	return h
}

func (h *harness) find(selector string) *goquery.Selection {
	var sel *goquery.Selection
	h.doc.Inspect(func(d *goquery.Document) {
		sel = d.Find(selector)
	})
	return sel
}

func image(name string) model.Blob {
	return &model.MemoryBlob{FileName: name, MIME: "image/png", Data: []byte("png:" + name)}
}

func document(name string) model.Blob {
	return &model.MemoryBlob{FileName: name, MIME: "application/pdf", Data: []byte("pdf:" + name)}
}

func blobNames(blobs []model.Blob) []string {
	out := make([]string, len(blobs))
	for i, b := range blobs {
		out[i] = b.Name()
	}
	return out
}

func signedIn(name string) func(context.Context) (model.Session, error) {
	return func(context.Context) (model.Session, error) {
		return model.Session{LoggedIn: true, User: &model.User{Name: name, Email: "artist@example.com"}}, nil
	}
}
