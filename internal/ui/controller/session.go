package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/forms"
	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/render"
)

const (
	uploadArea    = "#uploadArea"
	logoutButton  = "#logout-button"
	formCard      = ".form-card"
	authOverlayID = "#authOverlay"
)

// CheckSession asks the server whether a visitor is signed in. A failed
// check counts as signed out: the studio form is locked behind the auth
// overlay and the auth modal opens. A signed-in visitor gets the form back
// and the persisted tab, which loads its data.
func (c *Controller) CheckSession(ctx context.Context) (model.Session, error) {
	session, err := c.api.CheckAuth(ctx)

	c.mu.Lock()
	if err != nil || !session.LoggedIn {
		if err != nil {
			c.logger.Error("session", "auth check failed", err, nil)
		}
		c.view.Session = model.Session{}
		c.disableStudioLocked()
		_ = c.openModalLocked(model.ModalAuth)
		c.mu.Unlock()
		return model.Session{}, err
	}
	c.view.Session = session
	c.enableStudioLocked()
	tab := c.restoredTabLocked()
	c.mu.Unlock()

	if err := c.SwitchTab(ctx, string(tab)); err != nil && !errors.Is(err, ErrUnknownTab) {
		return session, err
	}
	return session, nil
}

func (c *Controller) restoredTabLocked() model.Tab {
	if stored, ok := c.storage.Get(model.ActiveTabStorageKey); ok && c.tabExistsLocked(stored) {
		return model.Tab(stored)
	}
	return model.DefaultTab
}

func (c *Controller) disableStudioLocked() {
	c.doc.SetDisabled(dom.FormControls(dom.ID(forms.ArtworkForm)), true)
	c.doc.SetStyle(uploadArea, "opacity", "0.5")
	c.doc.SetStyle(uploadArea, "cursor", "not-allowed")
	c.doc.SetStyle(uploadArea, "pointer-events", "none")
	c.doc.SetStyle(logoutButton, "display", "none")
	if c.doc.Exists(authOverlayID) || !c.doc.Exists(formCard) {
		return
	}
	c.doc.SetStyle(formCard, "position", "relative")
	c.doc.Prepend(formCard, render.AuthOverlay())
}

func (c *Controller) enableStudioLocked() {
	c.doc.SetDisabled(dom.FormControls(dom.ID(forms.ArtworkForm)), false)
	c.doc.SetStyle(uploadArea, "opacity", "1")
	c.doc.SetStyle(uploadArea, "cursor", "pointer")
	c.doc.SetStyle(uploadArea, "pointer-events", "auto")
	c.doc.SetStyle(logoutButton, "display", "")
	c.doc.Remove(authOverlayID)
}

// SwitchAuthTab shows the login or signup form of the auth modal.
func (c *Controller) SwitchAuthTab(tab string) error {
	if tab != "login" && tab != "signup" {
		return fmt.Errorf("%w: auth %q", ErrUnknownTab, tab)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.RemoveClass(".auth-tab", "active")
	c.doc.RemoveClass(".auth-form", "active")
	c.doc.AddClass(`.auth-tab[data-auth-tab="`+tab+`"]`, "active")
	c.doc.AddClass(dom.ID(tab+"Form"), "active")
	return nil
}

// Login submits the login form. A successful login reloads the page.
func (c *Controller) Login(ctx context.Context, creds model.Credentials) error {
	if err := c.api.Login(ctx, creds); err != nil {
		c.reportFailure("auth", "Login failed: ", "An error occurred.", err)
		return err
	}
	c.signedIn()
	return nil
}

// SubmitLogin reads the login form and calls Login.
func (c *Controller) SubmitLogin(ctx context.Context) error {
	c.mu.Lock()
	creds := forms.ReadCredentials(c.doc)
	c.mu.Unlock()
	return c.Login(ctx, creds)
}

// Signup creates an account. Mismatched passwords are rejected before any request.
func (c *Controller) Signup(ctx context.Context, form model.SignupForm) error {
	if err := forms.ValidateSignup(form); err != nil {
		c.browser.Alert("Passwords do not match!")
		return err
	}
	if err := c.api.Signup(ctx, form); err != nil {
		c.reportFailure("auth", "Signup failed: ", "An error occurred.", err)
		return err
	}
	c.signedIn()
	return nil
}

// SubmitSignup reads the signup form and calls Signup.
func (c *Controller) SubmitSignup(ctx context.Context) error {
	c.mu.Lock()
	form := forms.ReadSignup(c.doc)
	c.mu.Unlock()
	return c.Signup(ctx, form)
}

func (c *Controller) signedIn() {
	c.mu.Lock()
	_ = c.closeModalLocked(model.ModalAuth)
	c.mu.Unlock()
	c.browser.Reload()
}
