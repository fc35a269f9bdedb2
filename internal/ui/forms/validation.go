package forms

import (
	"errors"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

// Validation failures are reported before any request is sent.
var (
	ErrNoFiles          = errors.New("please upload at least one file")
	ErrNoImage          = errors.New("please select an image first")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ValidateArtwork requires at least one selected file.
func ValidateArtwork(files []model.SelectedFile) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	return nil
}

// ValidateSignup requires the confirmation to match the password.
func ValidateSignup(form model.SignupForm) error {
	if form.Password != form.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// FirstImage returns the first selected file for the AI helpers. Only the
// first file is sent, and it has to be an image.
func FirstImage(files []model.SelectedFile) (model.Blob, error) {
	if len(files) == 0 || !model.IsImage(files[0].Blob) {
		return nil, ErrNoImage
	}
	return files[0].Blob, nil
}
