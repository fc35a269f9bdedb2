//go:build js && wasm

package dom

import "syscall/js"

// JSDocument is the live browser document.
type JSDocument struct {
	doc js.Value
}

// NewJSDocument wraps window.document.
func NewJSDocument() *JSDocument {
	return &JSDocument{doc: js.Global().Get("document")}
}

func (d *JSDocument) first(selector string) js.Value {
	if !d.doc.Truthy() {
		return js.Null()
	}
	return d.doc.Call("querySelector", selector)
}

func (d *JSDocument) each(selector string, fn func(js.Value)) {
	if !d.doc.Truthy() {
		return
	}
	nodes := d.doc.Call("querySelectorAll", selector)
	length := nodes.Get("length").Int()
	for i := 0; i < length; i++ {
		fn(nodes.Index(i))
	}
}

func (d *JSDocument) Exists(selector string) bool {
	return d.first(selector).Truthy()
}

func (d *JSDocument) Count(selector string) int {
	if !d.doc.Truthy() {
		return 0
	}
	return d.doc.Call("querySelectorAll", selector).Get("length").Int()
}

func (d *JSDocument) HTML(selector string) string {
	el := d.first(selector)
	if !el.Truthy() {
		return ""
	}
	return el.Get("innerHTML").String()
}

func (d *JSDocument) SetHTML(selector, fragment string) {
	d.each(selector, func(el js.Value) { el.Set("innerHTML", fragment) })
}

func (d *JSDocument) Prepend(selector, fragment string) {
	d.each(selector, func(el js.Value) { el.Call("insertAdjacentHTML", "afterbegin", fragment) })
}

func (d *JSDocument) Remove(selector string) {
	d.each(selector, func(el js.Value) { el.Call("remove") })
}

func (d *JSDocument) Text(selector string) string {
	el := d.first(selector)
	if !el.Truthy() {
		return ""
	}
	return el.Get("textContent").String()
}

func (d *JSDocument) SetText(selector, text string) {
	d.each(selector, func(el js.Value) { el.Set("textContent", text) })
}

func (d *JSDocument) Attr(selector, name string) (string, bool) {
	el := d.first(selector)
	if !el.Truthy() || !el.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return el.Call("getAttribute", name).String(), true
}

func (d *JSDocument) HasClass(selector, class string) bool {
	el := d.first(selector)
	return el.Truthy() && el.Get("classList").Call("contains", class).Bool()
}

func (d *JSDocument) AddClass(selector, class string) {
	d.each(selector, func(el js.Value) { el.Get("classList").Call("add", class) })
}

func (d *JSDocument) RemoveClass(selector, class string) {
	d.each(selector, func(el js.Value) { el.Get("classList").Call("remove", class) })
}

func (d *JSDocument) ToggleClass(selector, class string) bool {
	d.each(selector, func(el js.Value) { el.Get("classList").Call("toggle", class) })
	return d.HasClass(selector, class)
}

func (d *JSDocument) Style(selector, property string) string {
	el := d.first(selector)
	if !el.Truthy() {
		return ""
	}
	return el.Get("style").Call("getPropertyValue", property).String()
}

func (d *JSDocument) SetStyle(selector, property, value string) {
	d.each(selector, func(el js.Value) {
		if value == "" {
			el.Get("style").Call("removeProperty", property)
			return
		}
		el.Get("style").Call("setProperty", property, value)
	})
}

func (d *JSDocument) Disabled(selector string) bool {
	el := d.first(selector)
	return el.Truthy() && el.Get("disabled").Truthy()
}

func (d *JSDocument) SetDisabled(selector string, disabled bool) {
	d.each(selector, func(el js.Value) { el.Set("disabled", disabled) })
}

func (d *JSDocument) Value(selector string) string {
	el := d.first(selector)
	if !el.Truthy() {
		return ""
	}
	return el.Get("value").String()
}

func (d *JSDocument) SetValue(selector, value string) {
	d.each(selector, func(el js.Value) { el.Set("value", value) })
}

func (d *JSDocument) ResetForm(selector string) {
	d.each(selector, func(el js.Value) {
		if el.Get("reset").Type() == js.TypeFunction {
			el.Call("reset")
		}
	})
}
