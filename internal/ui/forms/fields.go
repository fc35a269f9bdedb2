// Package forms reads and validates the studio's forms.
package forms

import (
	"strings"

	"github.com/takneev/artisan-studio/internal/ui/dom"
	"github.com/takneev/artisan-studio/internal/ui/model"
)

// Element ids of the artwork upload form.
const (
	ArtworkForm   = "artworkForm"
	TitleField    = "artworkTitle"
	CategoryField = "category"
	MaterialField = "materialUsed"
	DescField     = "description"
	PriceField    = "price"
	FileInput     = "fileInput"
)

// SubmitButton selects the upload form's submit control.
const SubmitButton = `#artworkForm button[type="submit"]`

// Element ids of the auth modal forms.
const (
	LoginForm             = "loginForm"
	LoginEmail            = "loginEmail"
	LoginPassword         = "loginPassword"
	SignupFormID          = "signupForm"
	SignupName            = "signupName"
	SignupEmail           = "signupEmail"
	SignupPassword        = "signupPassword"
	SignupConfirmPassword = "signupConfirmPassword"
)

// Element ids of the community post form.
const (
	PostForm       = "postForm"
	PostImageInput = "postImage"
	PostDesc       = `#postForm [name="description"]`
)

// ReadArtwork collects the upload form's text fields.
func ReadArtwork(doc dom.Document) model.ArtworkFields {
	return model.ArtworkFields{
		Title:       strings.TrimSpace(doc.Value(dom.ID(TitleField))),
		Category:    strings.TrimSpace(doc.Value(dom.ID(CategoryField))),
		Material:    strings.TrimSpace(doc.Value(dom.ID(MaterialField))),
		Description: strings.TrimSpace(doc.Value(dom.ID(DescField))),
		Price:       strings.TrimSpace(doc.Value(dom.ID(PriceField))),
	}
}

// ReadCredentials collects the login form.
func ReadCredentials(doc dom.Document) model.Credentials {
	return model.Credentials{
		Email:    strings.TrimSpace(doc.Value(dom.ID(LoginEmail))),
		Password: doc.Value(dom.ID(LoginPassword)),
	}
}

// ReadSignup collects the signup form.
func ReadSignup(doc dom.Document) model.SignupForm {
	return model.SignupForm{
		Name:            strings.TrimSpace(doc.Value(dom.ID(SignupName))),
		Email:           strings.TrimSpace(doc.Value(dom.ID(SignupEmail))),
		Password:        doc.Value(dom.ID(SignupPassword)),
		ConfirmPassword: doc.Value(dom.ID(SignupConfirmPassword)),
	}
}

// NormalizePrice keeps only the digits and dots of a suggested price, so
// "₹1,500.00" becomes "1500.00".
func NormalizePrice(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
