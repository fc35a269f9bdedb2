//go:build js && wasm

package wasm

import (
	"context"
	"syscall/js"
	"time"

	"github.com/takneev/artisan-studio/internal/ui/controller"
	"github.com/takneev/artisan-studio/internal/ui/forms"
)

var (
	// Document references the global browser document for DOM interactions.
	Document js.Value
	// Handlers stores bound js.Func callbacks so they can be released later.
	Handlers []js.Func
)

const requestTimeout = 60 * time.Second

// CreatePostButton opens the post modal on the community page.
const CreatePostButton = "createPostBtn"

// delegated lists the data attributes handled by the document click listener.
const delegated = "[data-tab],[data-switch-tab],[data-remove-file],[data-view-product]," +
	"[data-qr-artwork],[data-delete-artwork],[data-open-modal],[data-close-modal]," +
	"[data-auth-tab],[data-read-more],[data-profile-action],.close-btn"

func bind(fn func(this js.Value, args []js.Value) any) js.Func {
	f := js.FuncOf(fn)
	Handlers = append(Handlers, f)
	return f
}

func listen(target js.Value, event string, fn func(this js.Value, args []js.Value) any) {
	if !target.Truthy() {
		return
	}
	target.Call("addEventListener", event, bind(fn))
}

func byID(id string) js.Value {
	return Document.Call("getElementById", id)
}

// spawn runs a network-bound action off the event loop with a request timeout.
func spawn(action func(ctx context.Context)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		action(ctx)
	}()
}

func preventDefault(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	args[0].Call("preventDefault")
	return args[0]
}

func dataset(el js.Value, key string) (string, bool) {
	v := el.Get("dataset").Get(key)
	if v.Type() != js.TypeString {
		return "", false
	}
	return v.String(), true
}

func bindDocumentClicks(ctrl *controller.Controller) {
	listen(Document, "click", func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		event := args[0]
		target := event.Get("target")
		if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
			return nil
		}
		if id := target.Get("id"); id.Type() == js.TypeString && id.String() != "" {
			targetID := id.String()
			go ctrl.HandleBackdropClick(targetID)
		}
		el := target.Call("closest", delegated)
		if !el.Truthy() {
			return nil
		}
		dispatchClick(ctrl, event, el)
		return nil
	})
}

func dispatchClick(ctrl *controller.Controller, event, el js.Value) {
	for _, action := range controller.ClickActions {
		value, ok := dataset(el, action)
		if !ok {
			continue
		}
		switch action {
		case controller.ActionTab:
			event.Call("preventDefault")
		case controller.ActionRemoveFile:
			event.Call("stopPropagation")
		}
		spawn(func(ctx context.Context) { _ = ctrl.HandleAction(ctx, action, value) })
		return
	}
	if modal := el.Call("closest", ".modal"); modal.Truthy() {
		modalID := modal.Get("id").String()
		go ctrl.HandleBackdropClick(modalID)
	}
}

func bindUploadArea(ctrl *controller.Controller) {
	area := byID("uploadArea")
	input := byID(forms.FileInput)
	listen(area, "click", func(this js.Value, args []js.Value) any {
		if input.Truthy() {
			input.Call("click")
		}
		return nil
	})
	listen(area, "dragover", func(this js.Value, args []js.Value) any {
		preventDefault(args)
		area.Get("classList").Call("add", "dragover")
		return nil
	})
	listen(area, "dragleave", func(this js.Value, args []js.Value) any {
		area.Get("classList").Call("remove", "dragover")
		return nil
	})
	listen(area, "drop", func(this js.Value, args []js.Value) any {
		event := preventDefault(args)
		area.Get("classList").Call("remove", "dragover")
		if !event.Truthy() {
			return nil
		}
		blobs := blobsFromFileList(event.Get("dataTransfer").Get("files"))
		go ctrl.HandleFiles(blobs)
		return nil
	})
	listen(input, "change", func(this js.Value, args []js.Value) any {
		go ctrl.HandleFileInput()
		return nil
	})
}

func bindForms(ctrl *controller.Controller) {
	submit := func(formID string, action func(ctx context.Context)) {
		listen(byID(formID), "submit", func(this js.Value, args []js.Value) any {
			preventDefault(args)
			spawn(action)
			return nil
		})
	}
	submit(forms.ArtworkForm, func(ctx context.Context) { _ = ctrl.SubmitArtwork(ctx) })
	submit(forms.LoginForm, func(ctx context.Context) { _ = ctrl.SubmitLogin(ctx) })
	submit(forms.SignupFormID, func(ctx context.Context) { _ = ctrl.SubmitSignup(ctx) })
	submit(forms.PostForm, func(ctx context.Context) { _ = ctrl.SubmitPost(ctx) })
}

func bindAIButtons(ctrl *controller.Controller) {
	click := func(id string, action func(ctx context.Context)) {
		listen(byID(id), "click", func(this js.Value, args []js.Value) any {
			preventDefault(args)
			spawn(action)
			return nil
		})
	}
	click(controller.SuggestPriceButton, func(ctx context.Context) {
		_ = ctrl.SuggestPrice(ctx, controller.SuggestPriceButton)
	})
	click(controller.SuggestPriceInlineButton, func(ctx context.Context) {
		_ = ctrl.SuggestPriceInline(ctx)
	})
	click(controller.GenerateDescButton, func(ctx context.Context) {
		_ = ctrl.GenerateDescription(ctx, controller.GenerateDescButton)
	})
	click(controller.GenerateDescAIButton, func(ctx context.Context) {
		_ = ctrl.GenerateDescription(ctx, controller.GenerateDescAIButton)
	})
}

func bindCommunity(ctrl *controller.Controller) {
	refresh := func() {
		spawn(func(ctx context.Context) { _ = ctrl.LoadPosts(ctx) })
	}
	listen(byID(CreatePostButton), "click", func(this js.Value, args []js.Value) any {
		go func() { _ = ctrl.OpenPostModal(refresh) }()
		return nil
	})
}

// ReleaseHandlers frees every bound callback.
func ReleaseHandlers() {
	for _, fn := range Handlers {
		fn.Release()
	}
	Handlers = nil
}
