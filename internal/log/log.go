package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// InitLogger builds the process logger once. An empty filepath logs to
// stdout only, which is what the browser host uses.
func InitLogger(filepath string, env string) zerolog.Logger {
	once.Do(func() {
		logger = NewLogger(filepath, env)
	})
	return logger
}

// NewLogger builds a logger writing to stdout and, when filepath is set, a
// rotating file. The development env logs at trace level, any other at info.
func NewLogger(filepath string, env string) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Microsecond
	zerolog.ErrorFieldName = "error"
	zerolog.ErrorStackFieldName = "stack-trace"
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimestampFieldName = "timestamp"

	logLevel := zerolog.InfoLevel
	if env == "development" {
		logLevel = zerolog.TraceLevel
	}

	var output io.Writer = os.Stdout
	if filepath != "" {
		fileWriter := &lumberjack.Logger{
			Filename: filepath,
			Compress: true,
		}
		output = zerolog.MultiLevelWriter(os.Stdout, fileWriter)
	}

	l := zerolog.New(output).
		Level(logLevel).
		Hook(AttachTraceIDFromContext()).
		With().
		Timestamp().
		Caller().
		Stack().
		Int("pid", os.Getpid()).
		Logger()

	l.Info().
		Str(KeyTag, "NewLogger").
		Str(KeyProcess, "NewLogger").
		Msg("finish initiating logging")
	return l
}
