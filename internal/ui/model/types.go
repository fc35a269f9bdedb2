package model

import (
	"bytes"
	"context"
	"io"
	"strings"
)

// User identifies the signed-in artist.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session mirrors the /api/check-auth response.
type Session struct {
	LoggedIn bool  `json:"logged_in"`
	User     *User `json:"user,omitempty"`
}

// Tab names one mutually-exclusive panel of the studio page.
type Tab string

const (
	TabUpload  Tab = "upload"
	TabWorks   Tab = "works"
	TabProfile Tab = "profile"
)

// DefaultTab is selected when nothing valid was persisted.
const DefaultTab = TabUpload

// ActiveTabStorageKey identifies the localStorage entry for the last active studio tab.
const ActiveTabStorageKey = "activeStudioTab"

// ArtworkSummary is a read-only listing entry returned by /api/my-artworks.
type ArtworkSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Material    string   `json:"material"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Files       []string `json:"files"`
	Views       int      `json:"views"`
	Likes       int      `json:"likes"`
}

// HasPrice reports whether a non-zero price was set.
func (a ArtworkSummary) HasPrice() bool {
	return a.Price != nil && *a.Price != 0
}

// ArtworksResponse is the JSON envelope served by /api/my-artworks.
type ArtworksResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Artworks []ArtworkSummary `json:"artworks"`
}

// StatusResponse is the generic {success, message} envelope used by mutation endpoints.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PriceResponse is returned by /api/suggest-price.
type PriceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Price   string `json:"price,omitempty"`
}

// DescriptionResponse is returned by /api/generate-description.
type DescriptionResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Description string `json:"description,omitempty"`
}

// ArtworkFields are the text fields of the studio upload form.
type ArtworkFields struct {
	Title       string
	Category    string
	Material    string
	Description string
	Price       string
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupForm holds the signup form, including the confirmation field that is never sent.
type SignupForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// Post is one community feed entry.
type Post struct {
	ArtistName  string `json:"artist_name"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// PostDraft is the content of the post-creation modal.
type PostDraft struct {
	Description string
	Image       Blob
}

// ProfileStats summarises the artist profile tab.
type ProfileStats struct {
	Name          string
	Email         string
	TotalArtworks int
	TotalViews    int
	TotalLikes    int
}

// NewProfileStats sums views and likes across the artist's artworks.
func NewProfileStats(user User, artworks []ArtworkSummary) ProfileStats {
	stats := ProfileStats{
		Name:          user.Name,
		Email:         user.Email,
		TotalArtworks: len(artworks),
	}
	for _, art := range artworks {
		stats.TotalViews += art.Views
		stats.TotalLikes += art.Likes
	}
	return stats
}

// ModalKind names an overlay controlled by the studio.
type ModalKind string

const (
	ModalAuth ModalKind = "auth"
	ModalQR   ModalKind = "qr"
	ModalPost ModalKind = "post"
)

// Blob is a user-selected file. The browser build wraps a DOM File; tests use MemoryBlob.
type Blob interface {
	Name() string
	Type() string
	Size() int64
	Open(ctx context.Context) (io.ReadCloser, error)
}

// IsImage reports whether b carries an image MIME type.
func IsImage(b Blob) bool {
	return b != nil && strings.HasPrefix(b.Type(), "image/")
}

// SelectedFile pairs a blob with the stable preview slot key assigned when it was chosen.
type SelectedFile struct {
	Key  string
	Blob Blob
}

// MemoryBlob is an in-memory Blob.
type MemoryBlob struct {
	FileName string
	MIME     string
	Data     []byte
}

func (b *MemoryBlob) Name() string { return b.FileName }
func (b *MemoryBlob) Type() string { return b.MIME }
func (b *MemoryBlob) Size() int64  { return int64(len(b.Data)) }

func (b *MemoryBlob) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}
