//go:build js && wasm

// Command scrollfx-wasm runs the scroll effects engine in the browser.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o scrollfx.wasm ./cmd/scrollfx-wasm
//
// and load it with wasm_exec.js after the page markup.
package main

import (
	_ "embed"
	"log"
	"syscall/js"

	"github.com/phanxgames/scrollfx"
	"github.com/phanxgames/scrollfx/dom"
)

//go:embed scrollfx.yaml
var configYAML []byte

func main() {
	cfg, err := scrollfx.LoadConfig(configYAML)
	if err != nil {
		log.Fatalf("scrollfx: %v", err)
	}

	waitForDOM()

	page := dom.NewPage()
	eng, err := scrollfx.New(page, dom.NewScheduler(), cfg)
	if err != nil {
		log.Fatalf("scrollfx: %v", err)
	}
	if js.Global().Get("location").Get("search").String() == "?scrollfx-debug" {
		eng.SetDebugMode(true)
	}

	binding := dom.Bind(eng, page)
	eng.Start()
	log.Printf("[scrollfx] started: %d cards, %d nav links", len(page.Cards()), len(page.NavLinks()))

	<-pageHidden()
	binding.Release()
	log.Printf("[scrollfx] released")
}

// pageHidden is closed when the page is unloaded for good. A pagehide for a
// page kept in the back/forward cache does not count.
func pageHidden() <-chan struct{} {
	done := make(chan struct{})
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].Get("persisted").Truthy() {
			return nil
		}
		js.Global().Call("removeEventListener", "pagehide", cb)
		cb.Release()
		close(done)
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", cb)
	return done
}

// waitForDOM blocks until the document has been parsed.
func waitForDOM() {
	doc := js.Global().Get("document")
	if doc.Get("readyState").String() != "loading" {
		return
	}
	ready := make(chan struct{})
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		close(ready)
		return nil
	})
	doc.Call("addEventListener", "DOMContentLoaded", cb, map[string]any{"once": true})
	<-ready
}
