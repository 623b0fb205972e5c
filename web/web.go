// Package web holds the embedded reservation page and chat widget assets.
package web

import "embed"

//go:embed static
var Static embed.FS

// WidgetJS returns the embeddable chat widget script.
func WidgetJS() []byte {
	data, err := Static.ReadFile("static/widget.js")
	if err != nil {
		return nil
	}
	return data
}

// IndexHTML returns the two-pane reservation page.
func IndexHTML() []byte {
	data, err := Static.ReadFile("static/index.html")
	if err != nil {
		return nil
	}
	return data
}
