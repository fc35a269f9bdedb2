package controller

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/takneev/artisan-studio/internal/ui/forms"
	"github.com/takneev/artisan-studio/internal/ui/model"
	"github.com/takneev/artisan-studio/internal/ui/render"
)

const (
	filePreview      = "#filePreview"
	thumbnailTimeout = 30 * time.Second
	maxThumbnailSize = 20 << 20
)

// HandleFiles replaces the selection with blobs, rewrites the file input to
// match and renders one preview slot per file. Image thumbnails are read in
// the background and land in their own slot.
func (c *Controller) HandleFiles(blobs []model.Blob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Files.Replace(blobs)
	c.syncFilesLocked()
}

// HandleFileInput takes the selection from the upload form's file input.
func (c *Controller) HandleFileInput() {
	c.HandleFiles(c.inputs.Selected(forms.FileInput))
}

// RemoveFile drops the file at index. Out-of-range indexes are ignored.
func (c *Controller) RemoveFile(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.Files.Remove(index) {
		return false
	}
	c.syncFilesLocked()
	return true
}

func (c *Controller) syncFilesLocked() {
	files := c.view.Files.Files()
	c.inputs.Replace(forms.FileInput, c.view.Files.Blobs())
	c.doc.SetHTML(filePreview, render.FilePreviews(files))

	live := make(map[string]bool, len(files))
	for _, f := range files {
		live[f.Key] = true
	}
	for key := range c.thumbCache {
		if !live[key] {
			delete(c.thumbCache, key)
		}
	}

	for _, f := range files {
		if !model.IsImage(f.Blob) {
			continue
		}
		if url, ok := c.thumbCache[f.Key]; ok {
			c.doc.SetHTML(render.ThumbSlotSelector(f.Key), render.Thumbnail(url))
			continue
		}
		if c.thumbInFlight[f.Key] {
			continue
		}
		c.thumbInFlight[f.Key] = true
		c.pending.Add(1)
		go c.loadThumbnail(f)
	}
}

func (c *Controller) loadThumbnail(f model.SelectedFile) {
	defer c.pending.Done()
	ctx, cancel := context.WithTimeout(context.Background(), thumbnailTimeout)
	defer cancel()

	url, err := c.thumbs.DataURL(ctx, f.Blob)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.thumbInFlight, f.Key)
	if err != nil {
		c.logger.Warn("files", "thumbnail failed", map[string]any{"file": f.Blob.Name(), "error": err.Error()})
		return
	}
	slot := render.ThumbSlotSelector(f.Key)
	if !c.doc.Exists(slot) {
		return
	}
	c.thumbCache[f.Key] = url
	c.doc.SetHTML(slot, render.Thumbnail(url))
}

// DataURLThumbnailer reads the whole blob into a base64 data URL.
type DataURLThumbnailer struct{}

func (DataURLThumbnailer) DataURL(ctx context.Context, blob model.Blob) (string, error) {
	if blob.Size() > maxThumbnailSize {
		return "", fmt.Errorf("%s: too large for a preview", blob.Name())
	}
	rc, err := blob.Open(ctx)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return "data:" + blob.Type() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
