//go:build js && wasm

package wasm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"syscall/js"

	"github.com/takneev/artisan-studio/internal/ui/model"
)

// localStorage backs state.Storage with window.localStorage. A missing or
// blocked store reads as empty and drops writes.
type localStorage struct{}

func (localStorage) Get(key string) (string, bool) {
	storage := js.Global().Get("localStorage")
	if !storage.Truthy() {
		return "", false
	}
	value := storage.Call("getItem", key)
	if value.Type() != js.TypeString {
		return "", false
	}
	return strings.TrimSpace(value.String()), true
}

func (localStorage) Set(key, value string) {
	storage := js.Global().Get("localStorage")
	if !storage.Truthy() {
		return
	}
	storage.Call("setItem", key, value)
}

type browserWindow struct{}

func (browserWindow) Alert(message string) {
	js.Global().Call("alert", message)
}

func (browserWindow) Confirm(message string) bool {
	return js.Global().Call("confirm", message).Truthy()
}

func (browserWindow) Navigate(path string) {
	js.Global().Get("location").Set("href", path)
}

func (browserWindow) Reload() {
	js.Global().Get("location").Call("reload")
}

func (browserWindow) Download(href, filename string) {
	link := Document.Call("createElement", "a")
	link.Set("href", href)
	link.Set("download", filename)
	body := Document.Get("body")
	body.Call("appendChild", link)
	link.Call("click")
	body.Call("removeChild", link)
}

// fileBlob wraps a DOM File.
type fileBlob struct {
	file js.Value
}

func (b fileBlob) Name() string { return b.file.Get("name").String() }
func (b fileBlob) Type() string { return b.file.Get("type").String() }
func (b fileBlob) Size() int64  { return int64(b.file.Get("size").Float()) }

func (b fileBlob) Open(ctx context.Context) (io.ReadCloser, error) {
	buf, err := await(ctx, b.file.Call("arrayBuffer"))
	if err != nil {
		return nil, err
	}
	arr := js.Global().Get("Uint8Array").New(buf)
	data := make([]byte, arr.Get("length").Int())
	js.CopyBytesToGo(data, arr)
	return io.NopCloser(bytes.NewReader(data)), nil
}

func blobsFromFileList(list js.Value) []model.Blob {
	if !list.Truthy() {
		return nil
	}
	n := list.Get("length").Int()
	out := make([]model.Blob, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fileBlob{file: list.Call("item", i)})
	}
	return out
}

// fileInputs reads and rewrites <input type="file"> lists through DataTransfer.
type fileInputs struct{}

func (fileInputs) Selected(inputID string) []model.Blob {
	input := Document.Call("getElementById", inputID)
	if !input.Truthy() {
		return nil
	}
	return blobsFromFileList(input.Get("files"))
}

func (fileInputs) Replace(inputID string, blobs []model.Blob) {
	input := Document.Call("getElementById", inputID)
	if !input.Truthy() {
		return
	}
	ctor := js.Global().Get("DataTransfer")
	if !ctor.Truthy() {
		if len(blobs) == 0 {
			input.Set("value", "")
		}
		return
	}
	transfer := ctor.New()
	items := transfer.Get("items")
	for _, blob := range blobs {
		file, ok := toJSFile(blob)
		if !ok {
			continue
		}
		items.Call("add", file)
	}
	input.Set("files", transfer.Get("files"))
}

func toJSFile(blob model.Blob) (js.Value, bool) {
	if fb, ok := blob.(fileBlob); ok {
		return fb.file, true
	}
	rc, err := blob.Open(context.Background())
	if err != nil {
		return js.Value{}, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return js.Value{}, false
	}
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	opts := map[string]any{"type": blob.Type()}
	return js.Global().Get("File").New([]any{arr}, blob.Name(), opts), true
}

// await blocks the calling goroutine until promise settles. It must not be
// called from inside a js.FuncOf callback.
func await(ctx context.Context, promise js.Value) (js.Value, error) {
	type result struct {
		value js.Value
		err   error
	}
	settled := make(chan result, 1)
	var onResolve, onReject js.Func
	release := func() {
		onResolve.Release()
		onReject.Release()
	}
	onResolve = js.FuncOf(func(this js.Value, args []js.Value) any {
		settled <- result{value: firstArg(args)}
		release()
		return nil
	})
	onReject = js.FuncOf(func(this js.Value, args []js.Value) any {
		settled <- result{err: jsError(firstArg(args))}
		release()
		return nil
	})
	promise.Call("then", onResolve, onReject)

	select {
	case r := <-settled:
		return r.value, r.err
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}

func firstArg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

func jsError(v js.Value) error {
	if !v.Truthy() {
		return errors.New("promise rejected")
	}
	return errors.New(v.Call("toString").String())
}
