// Command ukeview shows a rendered document in a desktop window.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"ukechug/internal/config"
	"ukechug/pkg/pipeline"
	"ukechug/pkg/resource"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ukeview [flags] <file.html>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	font, err := cfg.Font()
	if err != nil {
		log.Fatal("loading font", "err", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           cfg.LogLevel(),
	})
	renderer, err := pipeline.NewRenderer(font, cfg.Options(),
		pipeline.WithLogger(logger),
		pipeline.WithFetcher(resource.NewFileFetcher(filepath.Dir(path))),
	)
	if err != nil {
		log.Fatal("creating renderer", "err", err)
	}

	opts := renderer.Options()
	a := app.New()
	w := a.NewWindow("ukeview - " + filepath.Base(path))
	w.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)+40))

	blank := image.NewRGBA(image.Rect(0, 0, int(opts.Width), int(opts.Height)))
	canvasImg := canvas.NewImageFromImage(blank)
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel("Loading " + path + "...")

	var reloadButton *widget.Button
	reload := func() {
		status.SetText("Loading " + path + "...")
		reloadButton.Disable()
		go func() {
			img, msg := render(renderer, path)
			fyne.Do(func() {
				if img != nil {
					canvasImg.Image = img
					canvasImg.Refresh()
				}
				status.SetText(msg)
				reloadButton.Enable()
			})
		}()
	}

	reloadButton = widget.NewButton("Reload", reload)
	bottom := container.NewBorder(nil, nil, nil, reloadButton, status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, canvasImg))

	reload()
	w.ShowAndRun()
}

// render reads and renders the document, returning the image and a status
// line. The image is nil on failure.
func render(r *pipeline.Renderer, path string) (image.Image, string) {
	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, "Error: " + err.Error()
	}
	raster, res, err := r.RenderRaster(context.Background(), string(markup))
	if err != nil {
		return nil, "Render error: " + err.Error()
	}
	return raster.Image(), fmt.Sprintf("%s: %d draw commands", path, len(res.Display))
}
