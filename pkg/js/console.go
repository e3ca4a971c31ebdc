package js

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
)

// consoleAPI implements console.log, console.warn, and console.error.
type consoleAPI struct {
	logger *log.Logger
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.print(c.logger.Info))
	console.Set("info", c.print(c.logger.Info))
	console.Set("debug", c.print(c.logger.Debug))
	console.Set("warn", c.print(c.logger.Warn))
	console.Set("error", c.print(c.logger.Error))
	vm.Set("console", console)
}

func (c *consoleAPI) print(logf func(msg interface{}, keyvals ...interface{})) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		logf(formatArgs(call.Arguments), "source", "console")
		return goja.Undefined()
	}
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
