package state

import (
	"github.com/takneev/artisan-studio/internal/ui/model"
)

// ViewState is the studio page's view state. It is owned by one controller
// and replaces the page globals the studio used to keep.
type ViewState struct {
	Session   model.Session
	ActiveTab model.Tab
	Files     FileSet
	Profile   *model.ProfileStats
	Tokens    *RequestTokens

	modals map[model.ModalKind]bool
}

// New returns an empty, logged-out view state.
func New() *ViewState {
	return &ViewState{
		Tokens: NewRequestTokens(),
		modals: make(map[model.ModalKind]bool),
	}
}

// LoggedIn reports whether the last session check succeeded.
func (v *ViewState) LoggedIn() bool {
	return v.Session.LoggedIn
}

// SetModal records a modal's visibility.
func (v *ViewState) SetModal(kind model.ModalKind, open bool) {
	if open {
		v.modals[kind] = true
		return
	}
	delete(v.modals, kind)
}

// ModalOpen reports whether kind is currently shown.
func (v *ViewState) ModalOpen(kind model.ModalKind) bool {
	return v.modals[kind]
}
