//go:build js && wasm

package main

import "github.com/takneev/artisan-studio/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
