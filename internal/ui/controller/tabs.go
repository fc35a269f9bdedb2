package controller

import (
	"context"
	"fmt"
	"regexp"

	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/model"
)

var tabName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func tabButton(name string) string {
	return `.studio-tab[data-tab="` + name + `"]`
}

func tabPanel(name string) string {
	return dom.ID(name + "Tab")
}

func (c *Controller) tabExistsLocked(name string) bool {
	return tabName.MatchString(name) && c.doc.Exists(tabButton(name)) && c.doc.Exists(tabPanel(name))
}

// SwitchTab activates the named tab and persists it. The works and profile
// tabs fetch fresh data every time they are shown. An unknown tab is logged
// and leaves the page untouched.
func (c *Controller) SwitchTab(ctx context.Context, name string) error {
	c.mu.Lock()
	if !c.tabExistsLocked(name) {
		c.mu.Unlock()
		c.logger.Warn("tabs", "tab not found", map[string]any{"tab": name})
		return fmt.Errorf("%w: %q", ErrUnknownTab, name)
	}
	c.doc.RemoveClass(".studio-tab", "active")
	c.doc.RemoveClass(".tab-content", "active")
	c.doc.AddClass(tabButton(name), "active")
	c.doc.AddClass(tabPanel(name), "active")
	c.storage.Set(model.ActiveTabStorageKey, name)
	c.view.ActiveTab = model.Tab(name)
	c.mu.Unlock()

	switch model.Tab(name) {
	case model.TabWorks:
		return c.LoadListing(ctx)
	case model.TabProfile:
		return c.LoadProfile(ctx)
	}
	return nil
}
