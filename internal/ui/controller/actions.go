package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

// ErrUnknownAction is returned for a click action the controller does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Click actions, named after the dataset key of the data-* attribute that
// carries them (data-switch-tab is "switchTab").
const (
	ActionTab           = "tab"
	ActionSwitchTab     = "switchTab"
	ActionRemoveFile    = "removeFile"
	ActionViewProduct   = "viewProduct"
	ActionQRArtwork     = "qrArtwork"
	ActionDeleteArtwork = "deleteArtwork"
	ActionOpenModal     = "openModal"
	ActionCloseModal    = "closeModal"
	ActionAuthTab       = "authTab"
	ActionReadMore      = "readMore"
	ActionProfile       = "profileAction"
)

// ClickActions lists the actions in the order a click listener checks them.
var ClickActions = []string{
	ActionTab, ActionSwitchTab, ActionRemoveFile, ActionViewProduct, ActionQRArtwork,
	ActionDeleteArtwork, ActionOpenModal, ActionCloseModal, ActionAuthTab, ActionReadMore,
	ActionProfile,
}

// Values of ActionProfile.
const (
	ProfileDownloadQR  = "download-qr"
	ProfileMarketplace = "marketplace"
)

// HandleAction runs the click action named by a data-* attribute with its value.
func (c *Controller) HandleAction(ctx context.Context, action, value string) error {
	switch action {
	case ActionTab, ActionSwitchTab:
		return c.SwitchTab(ctx, value)
	case ActionRemoveFile:
		index, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrUnknownAction, action, value)
		}
		c.RemoveFile(index)
		return nil
	case ActionViewProduct:
		c.ViewProduct(value)
		return nil
	case ActionQRArtwork:
		return c.OpenQRModal(value)
	case ActionDeleteArtwork:
		return c.DeleteArtwork(ctx, value)
	case ActionOpenModal:
		return c.OpenModal(model.ModalKind(value))
	case ActionCloseModal:
		return c.CloseModal(model.ModalKind(value))
	case ActionAuthTab:
		return c.SwitchAuthTab(value)
	case ActionReadMore:
		index, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrUnknownAction, action, value)
		}
		c.ToggleReadMore(index)
		return nil
	case ActionProfile:
		switch value {
		case ProfileDownloadQR:
			c.DownloadProfileQR()
			return nil
		case ProfileMarketplace:
			c.GoToMarketplace()
			return nil
		}
	}
	c.logger.Warn("actions", "unhandled click action", map[string]any{"action": action, "value": value})
	return fmt.Errorf("%w: %s=%q", ErrUnknownAction, action, value)
}
