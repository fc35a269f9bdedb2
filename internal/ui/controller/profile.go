package controller

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/render"
)

const (
	panelProfile       = "profile"
	profileName        = "#profileName"
	profileEmail       = "#profileEmail"
	profileQRContainer = "#profileQrContainer"
	profileQRImage     = "#profileQrContainer img"
	profileQRFilename  = "artist-profile-qr.png"
	profileLoadingText = "Loading..."
)

// LoadProfile fetches the session and the artist's artworks concurrently and
// fills the profile panel with totals and the public-page QR code.
func (c *Controller) LoadProfile(ctx context.Context) error {
	token := c.view.Tokens.Issue(panelProfile)

	var (
		session  model.Session
		artworks []model.ArtworkSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.api.CheckAuth(gctx)
		session = s
		return err
	})
	g.Go(func() error {
		a, err := c.api.MyArtworks(gctx)
		artworks = a
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.Tokens.IsLatest(panelProfile, token) {
		c.logger.Debug("profile", "stale profile discarded", map[string]any{"token": token})
		return nil
	}
	if err != nil {
		c.reportFailure("profile", "Failed to load profile: ", "An error occurred while loading your profile.", err)
		return err
	}
	if !session.LoggedIn || session.User == nil {
		c.logger.Warn("profile", "profile requested without a session", nil)
		return nil
	}

	stats := model.NewProfileStats(*session.User, artworks)
	c.view.Profile = &stats
	c.doc.SetText(profileName, stats.Name)
	c.doc.SetText(profileEmail, stats.Email)
	c.doc.SetText("#totalArtworks", strconv.Itoa(stats.TotalArtworks))
	c.doc.SetText("#totalViews", strconv.Itoa(stats.TotalViews))
	c.doc.SetText("#totalLikes", strconv.Itoa(stats.TotalLikes))
	if c.doc.Exists(profileQRContainer) {
		c.doc.SetHTML(profileQRContainer, render.ProfileQR(render.ProfileQRSource(c.origin, stats.Name)))
	}
	return nil
}

// Profile returns the last loaded profile stats.
func (c *Controller) Profile() (model.ProfileStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view.Profile == nil {
		return model.ProfileStats{}, false
	}
	return *c.view.Profile, true
}

// DownloadProfileQR saves the profile QR image.
func (c *Controller) DownloadProfileQR() {
	c.mu.Lock()
	src, ok := c.doc.Attr(profileQRImage, "src")
	c.mu.Unlock()
	if !ok || src == "" {
		c.browser.Alert("QR code not available")
		return
	}
	c.browser.Download(src, profileQRFilename)
}

// GoToMarketplace opens the artist's public marketplace page.
func (c *Controller) GoToMarketplace() {
	c.mu.Lock()
	name := strings.TrimSpace(c.doc.Text(profileName))
	c.mu.Unlock()
	if name == "" || name == profileLoadingText {
		c.browser.Alert("Profile not loaded yet")
		return
	}
	c.browser.Navigate(render.ArtistPath(name))
}
