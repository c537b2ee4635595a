package classical

import "github.com/rs/zerolog"

// Option configures optional behaviour shared by the cipher constructors.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger routes diagnostic output to l. Ciphers are silent by default.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
