package js

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"ukechug/pkg/html"
)

// Engine executes JavaScript against an HTML document's DOM. Scripts run
// before styling, so everything they change is visible to the cascade.
type Engine struct {
	vm     *goja.Runtime
	logger *log.Logger
}

type Option func(*Engine)

// WithLogger routes console output to l instead of the default logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates a new JS engine with a fresh goja runtime.
func New(opts ...Option) *Engine {
	e := &Engine{vm: goja.New(), logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}

	c := &consoleAPI{logger: e.logger}
	c.register(e.vm)
	return e
}

// Execute runs all scripts from the document against the DOM.
func (e *Engine) Execute(doc *html.Document) error {
	return e.ExecuteContext(context.Background(), doc)
}

// ExecuteContext runs the document's scripts in order. A failing script does
// not stop later ones; the returned error joins every failure. Cancelling
// ctx interrupts the running script.
func (e *Engine) ExecuteContext(ctx context.Context, doc *html.Document) error {
	registerDocument(e.vm, doc)

	stop := context.AfterFunc(ctx, func() {
		e.vm.Interrupt(ctx.Err())
	})
	defer e.vm.ClearInterrupt()
	defer stop()

	var errs []error
	for i, script := range doc.Scripts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := e.vm.RunString(script); err != nil {
			errs = append(errs, fmt.Errorf("script %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
