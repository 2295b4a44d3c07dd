//go:build js && wasm

// Command bookpage is the WebAssembly module loaded by published book pages.
package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/bookbuilder/internal/page"
	"git.home.luguber.info/inful/bookbuilder/internal/page/dom/jsdom"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	win := jsdom.NewWindow()
	win.WhenReady(func() {
		page.Init(win, page.Options{Logger: logger})
		logger.Debug("Page behaviors initialized")
	})
	select {}
}
