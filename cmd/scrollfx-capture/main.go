// Command scrollfx-capture measures a page in headless Chrome and writes a
// YAML layout snapshot for the preview and for offline tests.
//
//	scrollfx-capture -w 1600 -h 900 -o page.yaml http://localhost:8080/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/phanxgames/scrollfx/capture"
)

func main() {
	width := flag.Int64("w", 1600, "viewport width")
	height := flag.Int64("h", 900, "viewport height")
	output := flag.String("o", "", "snapshot output path (default: stdout)")
	reduced := flag.Bool("reduced-motion", false, "emulate prefers-reduced-motion: reduce")
	settle := flag.Duration("settle", 500*time.Millisecond, "wait after load before measuring")
	shot := flag.String("screenshot", "", "also write a PNG of the viewport to this path")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <url>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := capture.Capture(ctx, capture.Options{
		URL:           flag.Arg(0),
		Width:         *width,
		Height:        *height,
		ReducedMotion: *reduced,
		Settle:        *settle,
		Screenshot:    *shot != "",
		Timeout:       *timeout,
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	data, err := res.Snapshot.Encode()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("Error writing snapshot: %v", err)
		}
	} else {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			log.Fatalf("Error writing snapshot '%s': %v", *output, err)
		}
		log.Printf("Snapshot written to %s", *output)
	}

	if *shot != "" {
		if err := os.WriteFile(*shot, res.Screenshot, 0o644); err != nil {
			log.Fatalf("Error writing screenshot '%s': %v", *shot, err)
		}
		log.Printf("Screenshot written to %s", *shot)
	}
}
