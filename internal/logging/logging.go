// Package logging holds the process-wide zap logger and the optional
// hotkey trace file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how Init builds the process logger.
type Options struct {
	Debug bool

	// TraceFile is the path of the append-only hotkey trace log. Empty
	// disables the trace core entirely.
	TraceFile string

	// Trace is the initial state of the trace switch.
	Trace bool
}

// Components whose debug output is teed into the trace file.
var tracedComponents = map[string]bool{
	"capture":  true,
	"hotkey":   true,
	"keyevent": true,
}

var (
	mu        sync.Mutex
	current   atomic.Pointer[zap.Logger]
	traceOn   atomic.Bool
	traceFile *os.File
)

func init() {
	current.Store(zap.NewNop())
}

// L returns the process logger. It is a no-op logger until Init runs.
func L() *zap.Logger {
	return current.Load()
}

// For returns the process logger tagged with a component field.
func For(component string) *zap.Logger {
	return L().With(zap.String("component", component))
}

// SetTrace turns the trace file on or off at runtime.
func SetTrace(enabled bool) {
	traceOn.Store(enabled)
}

// TraceEnabled reports the current state of the trace switch.
func TraceEnabled() bool {
	return traceOn.Load()
}

// Init builds the process logger and installs it for L and For.
// Calling Init again replaces the previous logger and trace file.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	level := zapcore.InfoLevel
	var enc zapcore.Encoder
	if opts.Debug {
		level = zapcore.DebugLevel
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)}

	closeTraceLocked()
	if opts.TraceFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.TraceFile), 0o755); err != nil {
			return fmt.Errorf("failed to create trace log directory: %w", err)
		}
		f, err := os.OpenFile(opts.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open trace log '%s': %w", opts.TraceFile, err)
		}
		traceFile = f
		fileEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, &traceCore{
			Core: zapcore.NewCore(fileEnc, zapcore.AddSync(f), zapcore.DebugLevel),
		})
	}
	traceOn.Store(opts.Trace)

	current.Store(zap.New(zapcore.NewTee(cores...)))
	return nil
}

// Close flushes the logger, closes the trace file and reverts to a no-op logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	_ = current.Load().Sync()
	current.Store(zap.NewNop())
	closeTraceLocked()
}

func closeTraceLocked() {
	if traceFile != nil {
		_ = traceFile.Close()
		traceFile = nil
	}
}

// traceCore only accepts entries from loggers tagged with a traced
// component, and only while the trace switch is on.
type traceCore struct {
	zapcore.Core
	traced bool
}

func (c *traceCore) With(fields []zapcore.Field) zapcore.Core {
	traced := c.traced
	for _, f := range fields {
		if f.Key == "component" && tracedComponents[f.String] {
			traced = true
		}
	}
	return &traceCore{Core: c.Core.With(fields), traced: traced}
}

func (c *traceCore) Enabled(level zapcore.Level) bool {
	return c.traced && traceOn.Load() && c.Core.Enabled(level)
}

func (c *traceCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
