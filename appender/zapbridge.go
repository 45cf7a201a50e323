package appender

import (
	"github.com/kdevops/pulselog/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapBridge forwards already-formatted messages into a *zap.Logger,
// adapted from the teacher's SlogHandler bridge-to-log/slog pattern: the
// conversion direction is reversed (pulselog is the source, zap the
// sink) but the shape is the same — a thin Appender/Handler adapter that
// translates one logging system's level enum into another's.
type ZapBridge struct {
	logger *zap.Logger
}

// NewZapBridge wraps an existing *zap.Logger as an Appender.
func NewZapBridge(logger *zap.Logger) *ZapBridge {
	return &ZapBridge{logger: logger}
}

func (z *ZapBridge) Write(msg LoggedMessage) error {
	ce := z.logger.Check(zapLevel(core.Level(msg.Level)), string(msg.Text))
	if ce == nil {
		return nil
	}
	ce.Write()
	return nil
}

func (z *ZapBridge) Flush() error { return z.logger.Sync() }

func (z *ZapBridge) Close() error { return z.logger.Sync() }

func (z *ZapBridge) SetEncoding(string) error { return nil }

func zapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.TraceLevel, core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.FatalLevel:
		return zapcore.ErrorLevel // never call zap's own Fatal/os.Exit from a bridged write
	default:
		return zapcore.InfoLevel
	}
}
