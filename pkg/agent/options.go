package agent

import loggerpkg "github.com/botcampus-ai/gemini-chat-go/pkg/logger"

// Option configures optional runtime dependencies for Assistant.
type Option func(*assistantDeps)

type assistantDeps struct {
	logger loggerpkg.Logger
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *assistantDeps) {
		d.logger = l
	}
}
