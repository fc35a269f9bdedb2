// Package render turns studio view state into HTML fragments. Nothing here
// touches the DOM; the controller attaches the output.
package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

const descriptionPreviewRunes = 100

// ArtworkGrid renders the artist's listing cards.
func ArtworkGrid(artworks []model.ArtworkSummary) string {
	if len(artworks) == 0 {
		return EmptyWorks()
	}
	var b strings.Builder
	for _, art := range artworks {
		id := html.EscapeString(art.ID)
		b.WriteString(`<div class="artwork-card" data-artwork-id="` + id + `">`)
		b.WriteString(`<div class="artwork-image">`)
		if len(art.Files) > 0 {
			b.WriteString(`<img src="/static/` + html.EscapeString(art.Files[0]) + `" alt="` + html.EscapeString(art.Title) + `">`)
		}
		if len(art.Files) > 1 {
			b.WriteString(`<span class="file-count">+` + strconv.Itoa(len(art.Files)-1) + `</span>`)
		}
		b.WriteString(`</div>`)

		b.WriteString(`<div class="artwork-info">`)
		b.WriteString(`<h3 class="artwork-title">` + html.EscapeString(art.Title) + `</h3>`)
		b.WriteString(`<p class="artwork-category">` + html.EscapeString(art.Category) + `</p>`)
		b.WriteString(`<p class="artwork-material">` + html.EscapeString(art.Material) + `</p>`)
		b.WriteString(`<p class="artwork-description">` + html.EscapeString(truncate(art.Description, descriptionPreviewRunes)) + `</p>`)
		b.WriteString(`<p class="artwork-price">` + html.EscapeString(PriceLabel(art)) + `</p>`)
		b.WriteString(`<div class="artwork-stats">`)
		b.WriteString(`<span><i class="fas fa-eye"></i> ` + strconv.Itoa(art.Views) + `</span>`)
		b.WriteString(`<span><i class="fas fa-heart"></i> ` + strconv.Itoa(art.Likes) + `</span>`)
		b.WriteString(`</div>`)

		b.WriteString(`<div class="product-actions">`)
		b.WriteString(`<button type="button" class="btn-buy" data-view-product="` + id + `">`)
		b.WriteString(`<span class="material-symbols-outlined">visibility</span> View Artwork</button>`)
		b.WriteString(`<div class="secondary-actions">`)
		b.WriteString(`<button type="button" class="btn-contact" data-qr-artwork="` + id + `">`)
		b.WriteString(`<span class="material-symbols-outlined">qr_code_2</span> QR Code</button>`)
		b.WriteString(`<button type="button" class="btn-contact" data-delete-artwork="` + id + `">`)
		b.WriteString(`<span class="material-symbols-outlined">delete</span> Delete</button>`)
		b.WriteString(`</div></div>`)
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

// PriceLabel formats an artwork's price in rupees.
func PriceLabel(art model.ArtworkSummary) string {
	if !art.HasPrice() {
		return "Price not set"
	}
	return "₹" + strconv.FormatFloat(*art.Price, 'f', -1, 64)
}

// EmptyWorks is shown in place of the grid when the artist has no artworks.
func EmptyWorks() string {
	return `<div class="empty-state">` +
		`<span class="material-symbols-outlined empty-icon">inventory_2</span>` +
		`<h3>No artworks yet</h3>` +
		`<p>Start by uploading your first creation</p>` +
		`<button type="button" class="btn-primary" data-switch-tab="upload">Upload Artwork</button>` +
		`</div>`
}

// FilePreviews renders one slot per selected file. Image slots carry an
// empty thumbnail placeholder keyed by the file's slot key.
func FilePreviews(files []model.SelectedFile) string {
	var b strings.Builder
	for i, f := range files {
		key := html.EscapeString(f.Key)
		b.WriteString(`<div class="file-item" data-file-slot="` + key + `">`)
		if model.IsImage(f.Blob) {
			b.WriteString(`<span class="file-thumb" data-thumb-slot="` + key + `"></span>`)
		} else {
			b.WriteString(`<span class="material-symbols-outlined">description</span>`)
		}
		b.WriteString(`<span class="file-name">` + html.EscapeString(f.Blob.Name()) + `</span>`)
		b.WriteString(`<button type="button" data-remove-file="` + strconv.Itoa(i) + `" aria-label="Remove">&times;</button>`)
		b.WriteString(`</div>`)
	}
	return b.String()
}

// ThumbSlotSelector addresses the thumbnail placeholder of a preview slot.
func ThumbSlotSelector(key string) string {
	return `[data-thumb-slot="` + cssString(key) + `"]`
}

// Thumbnail renders an image preview from a data URL.
func Thumbnail(dataURL string) string {
	return `<img src="` + html.EscapeString(dataURL) + `" alt="Preview" style="width: 50px; height: 50px; object-fit: cover; border-radius: 4px; margin-right: 10px;">`
}

// AuthOverlay is the banner placed over the upload form for signed-out visitors.
func AuthOverlay() string {
	return `<div id="authOverlay">` +
		`<div class="auth-overlay-banner">` +
		`<div class="auth-overlay-icon"><span class="material-symbols-outlined">lock</span></div>` +
		`<div class="auth-overlay-text">` +
		`<h3>Authentication Required</h3>` +
		`<p>Create an account or login to start uploading your artworks</p>` +
		`</div>` +
		`<button type="button" class="auth-overlay-btn" data-open-modal="auth">` +
		`<span class="material-symbols-outlined">login</span> Get Started</button>` +
		`</div></div>`
}

// QRImage renders an artwork QR code image.
func QRImage(src string) string {
	return `<img src="` + html.EscapeString(src) + `" alt="Artwork QR Code">`
}

// ProfileQRSource builds the external QR image URL pointing at the artist's public page.
func ProfileQRSource(origin, artistName string) string {
	target := strings.TrimSuffix(origin, "/") + ArtistPath(artistName)
	return "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data=" +
		encodeURIComponent(target) + "&bgcolor=F5F0E8&color=3E2723"
}

// ProfileQR renders the profile QR image.
func ProfileQR(src string) string {
	return `<img src="` + html.EscapeString(src) + `" alt="Artist Profile QR Code" style="width: 250px; height: 250px;">`
}

// ArtistPath is the marketplace path of an artist's public page.
func ArtistPath(artistName string) string {
	return "/artist/" + encodeURIComponent(artistName)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func cssString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
