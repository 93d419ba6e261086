package observability

import (
	"context"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
)

// Options controls the process-wide logger.
type Options struct {
	Level string // debug, info, warn, error
	// File, when set, receives JSON logs through a rotating writer instead of stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Writer replaces stdout when File is empty. CLI commands log to stderr.
	Writer io.Writer
}

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init builds the global JSON logger. Safe to call more than once.
func Init(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	switch {
	case opts.File != "":
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		})
	case opts.Writer != nil:
		sink = zapcore.Lock(zapcore.AddSync(opts.Writer))
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, zap.NewAtomicLevelAt(level))
	SetLogger(zap.New(core))
	return nil
}

// SetLogger replaces the global logger (tests use zaptest/observer loggers).
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WithFields returns a logger with additional fields.
func WithFields(fields ...zap.Field) *zap.Logger {
	return Logger().With(fields...)
}

// WithRequestID stores a request_id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestID returns the request_id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	return reqID
}

// LoggerFromContext adds request_id if present.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	reqID := RequestID(ctx)
	if reqID == "" {
		return Logger()
	}
	return Logger().With(zap.String("request_id", reqID))
}
