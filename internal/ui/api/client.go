// Package api is the studio's typed client for the marketplace HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/logging"
)

// MarkerHeader and MarkerValue flag a request as script-initiated so the
// server answers auth failures with JSON instead of an HTML redirect.
const (
	MarkerHeader = "X-Requested-With"
	MarkerValue  = "XMLHttpRequest"
)

const (
	PathCheckAuth           = "/api/check-auth"
	PathLogin               = "/login"
	PathSignup              = "/signup"
	PathMyArtworks          = "/api/my-artworks"
	PathUploadArtwork       = "/api/upload-artwork"
	PathDeleteArtwork       = "/api/delete-artwork/"
	PathSuggestPrice        = "/api/suggest-price"
	PathGenerateDescription = "/api/generate-description"
	PathGenerateQR          = "/api/generate-qr/"
	PathCommunityPosts      = "/api/community/posts"
)

const maxResponseBytes = 4 << 20

// Client calls the marketplace API. The zero base URL issues origin-relative
// requests, which is what the browser build wants.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logging.Logger
}

// NewClient constructs a Client. A nil httpClient gets a 60s timeout, long
// enough for the AI helpers.
func NewClient(baseURL string, httpClient *http.Client, logger *logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// QRCodePath returns the image URL for an artwork's QR code.
func QRCodePath(artworkID string) string {
	return PathGenerateQR + url.PathEscape(artworkID)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s %s: %v", ErrTransport, method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(MarkerHeader, MarkerValue)
	req.Header.Set(logging.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	log := c.logger.WithRequestID(requestID).WithCategory("api").
		WithField("method", method).
		WithField("path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("read response", err)
		return nil, fmt.Errorf("%w: read %s: %v", ErrTransport, path, err)
	}
	log.WithField("status", resp.StatusCode).Debug("response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: extractMessage(data)}
	}
	return data, nil
}

func (c *Client) call(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	data, err := c.request(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrTransport, path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", out)
}

func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return msg
		}
		return strings.TrimSpace(envelope.Error)
	}
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<") {
		return ""
	}
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

func failed(message string) error {
	return &Error{Status: http.StatusOK, Message: message}
}

// CheckAuth reports the current session.
func (c *Client) CheckAuth(ctx context.Context) (model.Session, error) {
	var session model.Session
	if err := c.call(ctx, http.MethodGet, PathCheckAuth, nil, "", &session); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// Login starts a session for creds.
func (c *Client) Login(ctx context.Context, creds model.Credentials) error {
	var resp model.StatusResponse
	if err := c.postJSON(ctx, PathLogin, creds, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return failed(resp.Message)
	}
	return nil
}

// Signup creates an account and starts a session for it.
func (c *Client) Signup(ctx context.Context, form model.SignupForm) error {
	var resp model.StatusResponse
	if err := c.postJSON(ctx, PathSignup, form, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return failed(resp.Message)
	}
	return nil
}

// MyArtworks lists the signed-in artist's artworks.
func (c *Client) MyArtworks(ctx context.Context) ([]model.ArtworkSummary, error) {
	var resp model.ArtworksResponse
	if err := c.call(ctx, http.MethodGet, PathMyArtworks, nil, "", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, failed(resp.Message)
	}
	if resp.Artworks == nil {
		return []model.ArtworkSummary{}, nil
	}
	return resp.Artworks, nil
}

// UploadArtwork posts the form fields and files as one multipart request.
func (c *Client) UploadArtwork(ctx context.Context, fields model.ArtworkFields, files []model.Blob) error {
	form := newMultipartForm()
	form.field("title", fields.Title)
	form.field("category", fields.Category)
	form.field("material", fields.Material)
	form.field("description", fields.Description)
	form.field("price", fields.Price)
	for _, f := range files {
		form.file(ctx, "files", f)
	}
	body, contentType, err := form.finish()
	if err != nil {
		return err
	}
	var resp model.StatusResponse
	if err := c.call(ctx, http.MethodPost, PathUploadArtwork, body, contentType, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return failed(resp.Message)
	}
	return nil
}

// DeleteArtwork removes an artwork by ID.
func (c *Client) DeleteArtwork(ctx context.Context, id string) error {
	var resp model.StatusResponse
	if err := c.call(ctx, http.MethodDelete, PathDeleteArtwork+url.PathEscape(id), nil, "", &resp); err != nil {
		return err
	}
	if !resp.Success {
		return failed(resp.Message)
	}
	return nil
}

func (c *Client) aiForm(ctx context.Context, fields model.ArtworkFields, file model.Blob) (io.Reader, string, error) {
	form := newMultipartForm()
	form.field("title", fields.Title)
	form.field("category", fields.Category)
	form.field("material", fields.Material)
	form.field("description", fields.Description)
	form.file(ctx, "file", file)
	return form.finish()
}

// SuggestPrice asks the server for a fair price for the first selected image.
// The returned text is unnormalised.
func (c *Client) SuggestPrice(ctx context.Context, fields model.ArtworkFields, file model.Blob) (string, error) {
	body, contentType, err := c.aiForm(ctx, fields, file)
	if err != nil {
		return "", err
	}
	var resp model.PriceResponse
	if err := c.call(ctx, http.MethodPost, PathSuggestPrice, body, contentType, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", failed(resp.Message)
	}
	return resp.Price, nil
}

// GenerateDescription asks the server to write a description for the first selected image.
func (c *Client) GenerateDescription(ctx context.Context, fields model.ArtworkFields, file model.Blob) (string, error) {
	body, contentType, err := c.aiForm(ctx, fields, file)
	if err != nil {
		return "", err
	}
	var resp model.DescriptionResponse
	if err := c.call(ctx, http.MethodPost, PathGenerateDescription, body, contentType, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", failed(resp.Message)
	}
	return resp.Description, nil
}

// ListPosts fetches the community feed. Both a bare array and a {"posts": [...]} envelope are accepted.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	data, err := c.request(ctx, http.MethodGet, PathCommunityPosts, nil, "")
	if err != nil {
		return nil, err
	}
	var direct []model.Post
	if err := json.Unmarshal(data, &direct); err == nil {
		if direct == nil {
			direct = []model.Post{}
		}
		return direct, nil
	}
	var wrapped struct {
		Posts []model.Post `json:"posts"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Posts != nil {
		return wrapped.Posts, nil
	}
	return nil, fmt.Errorf("%w: unexpected posts response", ErrTransport)
}

// CreatePost publishes a community post. Any 2xx status counts as success.
func (c *Client) CreatePost(ctx context.Context, draft model.PostDraft) error {
	form := newMultipartForm()
	form.field("description", draft.Description)
	if draft.Image != nil {
		form.file(ctx, "image", draft.Image)
	}
	body, contentType, err := form.finish()
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, PathCommunityPosts, body, contentType, nil)
}
