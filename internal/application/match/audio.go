package match

import (
	"log/slog"

	"github.com/younwookim/swordduel/internal/application/system"
)

// LogAudio stands in for a sound device and logs every effect at debug level
type LogAudio struct {
	log *slog.Logger
}

// NewLogAudio creates a logging audio sink
func NewLogAudio(logger *slog.Logger) *LogAudio {
	return &LogAudio{log: logger}
}

// Play implements system.Audio
func (a *LogAudio) Play(s system.Sound) {
	a.log.Debug("sound", "effect", s.String())
}
