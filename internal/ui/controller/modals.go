package controller

import (
	"fmt"

	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/forms"
	"github.com/takneev/artisan-studio/internal/ui/model"
)

type modalElement struct {
	id      string
	display string
}

var modalElements = map[model.ModalKind]modalElement{
	model.ModalAuth: {id: "authModal", display: "flex"},
	model.ModalQR:   {id: "qrCodeModal", display: "flex"},
	model.ModalPost: {id: "postModal", display: "block"},
}

// OpenModal shows a modal.
func (c *Controller) OpenModal(kind model.ModalKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openModalLocked(kind)
}

// CloseModal hides a modal. Closing the post modal also resets its form.
func (c *Controller) CloseModal(kind model.ModalKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeModalLocked(kind)
}

// OpenPostModal shows the post modal. onSuccess runs after a post is
// published, so the opening page can refresh whatever it shows.
func (c *Controller) OpenPostModal(onSuccess func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPostSuccess = onSuccess
	return c.openModalLocked(model.ModalPost)
}

// HandleBackdropClick closes the modal whose backdrop element was clicked.
// Clicks inside a modal's body have a different target and are ignored.
func (c *Controller) HandleBackdropClick(targetID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for kind, el := range modalElements {
		if el.id == targetID {
			return c.closeModalLocked(kind) == nil
		}
	}
	return false
}

func (c *Controller) openModalLocked(kind model.ModalKind) error {
	el, ok := modalElements[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModal, kind)
	}
	c.doc.SetStyle(dom.ID(el.id), "display", el.display)
	c.view.SetModal(kind, true)
	return nil
}

func (c *Controller) closeModalLocked(kind model.ModalKind) error {
	el, ok := modalElements[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModal, kind)
	}
	c.doc.SetStyle(dom.ID(el.id), "display", "none")
	c.view.SetModal(kind, false)
	if kind == model.ModalPost {
		c.doc.ResetForm(dom.ID(forms.PostForm))
		c.inputs.Replace(forms.PostImageInput, nil)
	}
	return nil
}
