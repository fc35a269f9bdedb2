package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/takneev/artisan-studio/internal/ui/api"
	"github.com/takneev/artisan-studio/internal/ui/forms"
	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/render"
)

const (
	postFeed   = "#postFeed"
	panelPosts = "posts"
	// LoginForPost is where a signed-out visitor is sent after trying to post.
	LoginForPost = "/studio?next=community"
)

// LoadPosts renders the community feed.
func (c *Controller) LoadPosts(ctx context.Context) error {
	token := c.view.Tokens.Issue(panelPosts)
	posts, err := c.api.ListPosts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.Tokens.IsLatest(panelPosts, token) {
		c.logger.Debug("posts", "stale feed discarded", map[string]any{"token": token})
		return nil
	}
	if err != nil {
		c.logger.Error("posts", "load posts failed", err, nil)
		c.doc.SetHTML(postFeed, render.PostFeedError())
		return err
	}
	c.doc.SetHTML(postFeed, render.PostFeed(posts))
	return nil
}

// ToggleReadMore expands or collapses a long post description.
func (c *Controller) ToggleReadMore(index int) {
	idx := strconv.Itoa(index)
	c.mu.Lock()
	defer c.mu.Unlock()
	desc := `[data-post-description="` + idx + `"]`
	if !c.doc.Exists(desc) {
		return
	}
	label := "Read more"
	if c.doc.ToggleClass(desc, "expanded") {
		label = "Read less"
	}
	c.doc.SetText(`[data-read-more="`+idx+`"]`, label)
}

// SubmitPost publishes the post modal's content. A signed-out visitor is
// sent to the studio login with a hint to come back to the community.
func (c *Controller) SubmitPost(ctx context.Context) error {
	c.mu.Lock()
	draft := model.PostDraft{Description: strings.TrimSpace(c.doc.Value(forms.PostDesc))}
	if images := c.inputs.Selected(forms.PostImageInput); len(images) > 0 {
		draft.Image = images[0]
	}
	c.mu.Unlock()

	err := c.api.CreatePost(ctx, draft)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrUnauthenticated):
		c.logger.Info("posts", "post requires login", nil)
		c.browser.Navigate(LoginForPost)
		return err
	case errors.Is(err, api.ErrTransport):
		c.logger.Error("posts", "create post failed", err, nil)
		c.browser.Alert("An error occurred. Please try again.")
		return err
	default:
		c.logger.Error("posts", "create post failed", err, nil)
		if msg, ok := api.ServerMessage(err); ok {
			c.browser.Alert("Failed to create post: " + msg)
		} else {
			c.browser.Alert("Failed to create post. Please try again.")
		}
		return err
	}

	c.mu.Lock()
	_ = c.closeModalLocked(model.ModalPost)
	onSuccess := c.onPostSuccess
	c.mu.Unlock()
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}
