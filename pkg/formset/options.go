package formset

import "log/slog"

// Option configures the editor, guard and formset constructors.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	validity Validity
}

// WithLogger routes diagnostics (malformed identifiers, refused operations)
// to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithValidity replaces the native constraint checks used by the guard.
func WithValidity(validity Validity) Option {
	return func(cfg *config) {
		if validity != nil {
			cfg.validity = validity
		}
	}
}

func newConfig(options ...Option) config {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default().With("component", "formset")
	}
	if cfg.validity == nil {
		cfg.validity = NewNativeValidity()
	}
	return cfg
}
