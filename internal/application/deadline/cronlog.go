package deadline

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes the cron engine's own logging (including skipped overlapping runs) to slog.
type cronLogger struct {
	log *slog.Logger
}

var _ cron.Logger = cronLogger{}

// Info keeps the engine's per-run chatter at debug; only skipped runs surface.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if msg == "skip" {
		l.log.Warn("deadline check still running, tick skipped", keysAndValues...)
		return
	}
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
