package render

import (
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

// ReadMoreRunes is the description length above which a post gets a read-more toggle.
const ReadMoreRunes = 280

const postAvatar = "/static/assets/hero-artisans.jpg"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// PostFeed renders the community feed.
func PostFeed(posts []model.Post) string {
	if len(posts) == 0 {
		return `<p class="post-feed-empty">No posts yet.</p>`
	}
	var b strings.Builder
	for i, post := range posts {
		idx := strconv.Itoa(i)
		b.WriteString(`<div class="post-card">`)
		b.WriteString(`<div class="post-header">`)
		b.WriteString(`<img src="` + postAvatar + `" alt="Artist Avatar" class="artist-avatar">`)
		b.WriteString(`<div class="artist-info">`)
		b.WriteString(`<h4>` + html.EscapeString(post.ArtistName) + `</h4>`)
		b.WriteString(`<p class="post-timestamp">` + html.EscapeString(FormatTimestamp(post.Timestamp)) + `</p>`)
		b.WriteString(`</div></div>`)

		b.WriteString(`<div class="post-content">`)
		b.WriteString(`<p class="post-description" data-post-description="` + idx + `">` + html.EscapeString(post.Description) + `</p>`)
		if NeedsReadMore(post.Description) {
			b.WriteString(`<button type="button" class="read-more-btn" data-read-more="` + idx + `">Read more</button>`)
		}
		if strings.TrimSpace(post.Image) != "" {
			b.WriteString(`<img src="` + html.EscapeString(post.Image) + `" alt="Post Image" class="post-image">`)
		}
		b.WriteString(`</div></div>`)
	}
	return b.String()
}

// PostFeedError replaces the feed when it could not be fetched.
func PostFeedError() string {
	return `<p>Could not load posts. Please try again later.</p>`
}

// NeedsReadMore reports whether a description is long enough to be clamped.
func NeedsReadMore(description string) bool {
	return len([]rune(description)) > ReadMoreRunes
}

// FormatTimestamp renders a server timestamp for display, falling back to
// the raw value when it cannot be parsed.
func FormatTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006, 3:04 PM")
		}
	}
	return raw
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
