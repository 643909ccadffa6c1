// Command web runs the draft analytics dashboard: the JSON API, the
// websocket progress stream, Prometheus metrics, and the embedded
// single-page frontend.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"draftpulse/internal/app"
)

//go:embed web
var webFS embed.FS

func main() {
	frontend, err := fs.Sub(webFS, "web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load embedded frontend: %v\n", err)
		os.Exit(1)
	}

	application, err := app.NewApplication(frontend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
