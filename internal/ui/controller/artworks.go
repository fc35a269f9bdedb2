package controller

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/takneev/artisan-studio/internal/ui/api"
	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/forms"
	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/render"
)

const (
	worksGrid      = ".works-grid"
	panelWorks     = "works"
	uploadingLabel = `<span class="material-symbols-outlined">hourglass_empty</span> Uploading...`
)

// Buttons of the AI helpers.
const (
	SuggestPriceButton       = "suggestPriceBtn"
	SuggestPriceInlineButton = "suggestPriceBtnInline"
	GenerateDescButton       = "generateDescBtn"
	GenerateDescAIButton     = "generateDescBtnAi"
)

// SubmitArtwork uploads the form fields and the selected files. The submit
// button is busy for the duration and restored whatever the outcome. On
// success the form and selection are cleared and the works tab is shown.
func (c *Controller) SubmitArtwork(ctx context.Context) error {
	c.mu.Lock()
	files := c.view.Files.Files()
	if err := forms.ValidateArtwork(files); err != nil {
		c.mu.Unlock()
		c.browser.Alert("Please upload at least one file")
		return err
	}
	fields := forms.ReadArtwork(c.doc)
	blobs := c.view.Files.Blobs()
	restore := c.busyLocked(forms.SubmitButton, uploadingLabel)
	c.mu.Unlock()
	defer restore()

	if err := c.api.UploadArtwork(ctx, fields, blobs); err != nil {
		c.reportFailure("upload", "Upload failed: ", "An error occurred while uploading", err)
		return err
	}
	c.logger.Info("upload", "artwork uploaded", map[string]any{"title": fields.Title, "files": len(blobs)})
	c.browser.Alert("Artwork uploaded successfully!")

	c.mu.Lock()
	c.doc.ResetForm(dom.ID(forms.ArtworkForm))
	c.view.Files.Clear()
	c.syncFilesLocked()
	c.mu.Unlock()

	err := c.SwitchTab(ctx, string(model.TabWorks))
	if errors.Is(err, ErrUnknownTab) {
		return c.LoadListing(ctx)
	}
	return err
}

// LoadListing fetches the artist's artworks into the works grid. A response
// overtaken by a newer request for the grid is dropped.
func (c *Controller) LoadListing(ctx context.Context) error {
	token := c.view.Tokens.Issue(panelWorks)
	artworks, err := c.api.MyArtworks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.Tokens.IsLatest(panelWorks, token) {
		c.logger.Debug("works", "stale listing discarded", map[string]any{"token": token})
		return nil
	}
	if err != nil {
		c.reportFailure("works", "Failed to load artworks: ", "An error occurred while loading your artworks.", err)
		return err
	}
	if !c.doc.Exists(worksGrid) {
		c.logger.Warn("works", "works grid not found", nil)
		return nil
	}
	c.doc.SetHTML(worksGrid, render.ArtworkGrid(artworks))
	return nil
}

// DeleteArtwork removes an artwork after the user confirms, then reloads the listing.
func (c *Controller) DeleteArtwork(ctx context.Context, id string) error {
	if !c.browser.Confirm("Are you sure you want to delete this artwork?") {
		return nil
	}
	if err := c.api.DeleteArtwork(ctx, id); err != nil {
		c.reportFailure("works", "Delete failed: ", "An error occurred while deleting", err)
		return err
	}
	c.browser.Alert("Artwork deleted successfully")
	return c.LoadListing(ctx)
}

// ViewProduct opens the product page of an artwork.
func (c *Controller) ViewProduct(id string) {
	c.browser.Navigate("/product/" + url.PathEscape(id))
}

// aiRequestLocked collects what the AI helpers send.
func (c *Controller) aiRequestLocked() (model.ArtworkFields, model.Blob, error) {
	blob, err := forms.FirstImage(c.view.Files.Files())
	if err != nil {
		return model.ArtworkFields{}, nil, err
	}
	return forms.ReadArtwork(c.doc), blob, nil
}

// SuggestPrice fills the price field with the server's suggestion for the
// first selected image. buttonID is the control that triggered it.
func (c *Controller) SuggestPrice(ctx context.Context, buttonID string) error {
	c.mu.Lock()
	fields, blob, err := c.aiRequestLocked()
	if err != nil {
		c.mu.Unlock()
		c.browser.Alert("Please select an image first.")
		return err
	}
	restore := c.busyLocked(dom.ID(buttonID), "Suggesting...")
	c.mu.Unlock()
	defer restore()

	price, err := c.api.SuggestPrice(ctx, fields, blob)
	if err != nil {
		c.reportFailure("ai", "Failed to suggest price: ", "An error occurred while suggesting the price.", err)
		return err
	}
	c.mu.Lock()
	c.doc.SetValue(dom.ID(forms.PriceField), forms.NormalizePrice(price))
	c.mu.Unlock()
	return nil
}

// GenerateDescription fills the description field with a generated one.
func (c *Controller) GenerateDescription(ctx context.Context, buttonID string) error {
	c.mu.Lock()
	fields, blob, err := c.aiRequestLocked()
	if err != nil {
		c.mu.Unlock()
		c.browser.Alert("Please select an image first.")
		return err
	}
	restore := c.busyLocked(dom.ID(buttonID), "Generating...")
	c.mu.Unlock()
	defer restore()

	desc, err := c.api.GenerateDescription(ctx, fields, blob)
	if err != nil {
		c.reportFailure("ai", "Failed to generate description: ", "An error occurred while generating the description.", err)
		return err
	}
	c.mu.Lock()
	c.doc.SetValue(dom.ID(forms.DescField), desc)
	c.mu.Unlock()
	return nil
}

// SuggestPriceInline generates a description first when the field is empty,
// then suggests a price. A failed description stops it.
func (c *Controller) SuggestPriceInline(ctx context.Context) error {
	c.mu.Lock()
	desc := strings.TrimSpace(c.doc.Value(dom.ID(forms.DescField)))
	c.mu.Unlock()
	if desc == "" {
		if err := c.GenerateDescription(ctx, GenerateDescButton); err != nil {
			return err
		}
	}
	return c.SuggestPrice(ctx, SuggestPriceInlineButton)
}

// OpenQRModal shows the QR code of an artwork.
func (c *Controller) OpenQRModal(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.SetHTML("#qrCodeContainer", render.QRImage(api.QRCodePath(id)))
	return c.openModalLocked(model.ModalQR)
}
