package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div id=\"root\">" + fragment + "</div>"))
	require.NoError(t, err)
	return doc
}

func price(v float64) *float64 { return &v }

func TestArtworkGridEscapesAndFormats(t *testing.T) {
	long := strings.Repeat("á", 120)
	doc := parse(t, ArtworkGrid([]model.ArtworkSummary{
		{ID: "a1", Title: `<b>Vase</b>`, Files: []string{"uploads/a.png", "uploads/b.png", "uploads/c.png"}, Price: price(1250.5), Views: 4, Likes: 2, Description: long},
		{ID: "a2", Title: "Rug", Files: []string{"uploads/r.png"}, Price: price(0), Description: "short"},
	}))

	cards := doc.Find(".artwork-card")
	require.Equal(t, 2, cards.Length())

	first := cards.Eq(0)
	assert.Equal(t, "<b>Vase</b>", first.Find(".artwork-title").Text())
	assert.Equal(t, 0, first.Find(".artwork-title b").Length())
	src, _ := first.Find(".artwork-image img").Attr("src")
	assert.Equal(t, "/static/uploads/a.png", src)
	assert.Equal(t, "+2", first.Find(".file-count").Text())
	assert.Equal(t, "₹1250.5", first.Find(".artwork-price").Text())
	assert.Equal(t, strings.Repeat("á", 100)+"...", first.Find(".artwork-description").Text())
	assert.Contains(t, first.Find(".artwork-stats").Text(), "4")

	for _, attr := range []string{"data-view-product", "data-qr-artwork", "data-delete-artwork"} {
		v, ok := first.Find("[" + attr + "]").Attr(attr)
		assert.True(t, ok, attr)
		assert.Equal(t, "a1", v)
	}

	second := cards.Eq(1)
	assert.Equal(t, "Price not set", second.Find(".artwork-price").Text())
	assert.Equal(t, "short", second.Find(".artwork-description").Text())
	assert.Equal(t, 0, second.Find(".file-count").Length())
}

func TestEmptyWorksOffersUploadTab(t *testing.T) {
	doc := parse(t, ArtworkGrid(nil))
	assert.Equal(t, "No artworks yet", doc.Find(".empty-state h3").Text())
	tab, ok := doc.Find("[data-switch-tab]").Attr("data-switch-tab")
	assert.True(t, ok)
	assert.Equal(t, "upload", tab)
}

func TestFilePreviewsSlotPerFile(t *testing.T) {
	files := []model.SelectedFile{
		{Key: "k1", Blob: &model.MemoryBlob{FileName: "a.png", MIME: "image/png"}},
		{Key: "k2", Blob: &model.MemoryBlob{FileName: "<notes>.pdf", MIME: "application/pdf"}},
	}
	doc := parse(t, FilePreviews(files))

	slots := doc.Find("[data-file-slot]")
	require.Equal(t, 2, slots.Length())
	assert.Equal(t, 1, doc.Find(ThumbSlotSelector("k1")).Length())
	assert.Equal(t, 0, doc.Find(ThumbSlotSelector("k2")).Length())
	assert.Equal(t, "description", slots.Eq(1).Find(".material-symbols-outlined").Text())
	assert.Equal(t, "<notes>.pdf", slots.Eq(1).Find(".file-name").Text())

	idx, _ := slots.Eq(1).Find("[data-remove-file]").Attr("data-remove-file")
	assert.Equal(t, "1", idx)
}

func TestAuthOverlayHasSingleRoot(t *testing.T) {
	doc := parse(t, AuthOverlay())
	assert.Equal(t, 1, doc.Find("#authOverlay").Length())
	assert.Equal(t, "Authentication Required", doc.Find("#authOverlay h3").Text())
	kind, _ := doc.Find("[data-open-modal]").Attr("data-open-modal")
	assert.Equal(t, "auth", kind)
}

func TestProfileQRSource(t *testing.T) {
	got := ProfileQRSource("https://studio.example/", "Asha Rao")
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=250x250&data=https%3A%2F%2Fstudio.example%2Fartist%2FAsha%2520Rao&bgcolor=F5F0E8&color=3E2723",
		got)
	assert.Equal(t, "/artist/Asha%20Rao", ArtistPath("Asha Rao"))
}

func TestPostFeedReadMoreAndImages(t *testing.T) {
	doc := parse(t, PostFeed([]model.Post{
		{ArtistName: "Asha", Timestamp: "2024-03-05T14:30:00", Description: strings.Repeat("x", ReadMoreRunes+1), Image: "/static/p.jpg"},
		{ArtistName: "Ravi", Timestamp: "yesterday", Description: "short"},
	}))

	cards := doc.Find(".post-card")
	require.Equal(t, 2, cards.Length())
	assert.Equal(t, "Mar 5, 2024, 2:30 PM", cards.Eq(0).Find(".post-timestamp").Text())
	assert.Equal(t, 1, cards.Eq(0).Find("[data-read-more]").Length())
	assert.Equal(t, 1, cards.Eq(0).Find(".post-image").Length())

	assert.Equal(t, "yesterday", cards.Eq(1).Find(".post-timestamp").Text())
	assert.Equal(t, 0, cards.Eq(1).Find("[data-read-more]").Length())
	assert.Equal(t, 0, cards.Eq(1).Find(".post-image").Length())
}

func TestPostFeedError(t *testing.T) {
	doc := parse(t, PostFeedError())
	assert.Equal(t, "Could not load posts. Please try again later.", doc.Find("p").Text())
}
