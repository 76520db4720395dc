package app

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors used by the console encoder.
const (
	grey          = "\033[38;5;240m"
	boldLightGrey = "\033[1;38;5;240m"
	red           = "\033[38;5;9m"
	yellow        = "\033[38;5;11m"
	reset         = "\033[0m"
)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	// Level is the minimum level, e.g. "info". Empty means info.
	Level string

	// Color enables full-line level coloring.
	Color bool
}

// colorLevelEncoder colors the whole line by level; the line ending
// resets it.
func colorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch l {
	case zapcore.DebugLevel:
		color = grey
	case zapcore.InfoLevel:
		color = boldLightGrey
	case zapcore.WarnLevel:
		color = yellow
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		color = red
	default:
		color = reset
	}
	enc.AppendString(color + l.CapitalString())
}

// ParseLogLevel parses a level name such as "debug" or "WARN".
func ParseLogLevel(s string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// NewLogger builds a console logger writing to w (os.Stderr if nil).
func NewLogger(w io.Writer, opts LoggerOptions) (*zap.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level, err := ParseLogLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.FunctionKey = ""
	encCfg.LevelKey = "L"
	encCfg.NameKey = "N"
	encCfg.MessageKey = "M"
	encCfg.StacktraceKey = "S"
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	encCfg.ConsoleSeparator = " "
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Color {
		encCfg.EncodeLevel = colorLevelEncoder
		encCfg.LineEnding = reset + zapcore.DefaultLineEnding
	}
	if level == zapcore.DebugLevel {
		encCfg.CallerKey = "C"
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	var zapOpts []zap.Option
	if level == zapcore.DebugLevel {
		zapOpts = append(zapOpts, zap.AddCaller())
	}
	return zap.New(core, zapOpts...).Named("keybind"), nil
}
