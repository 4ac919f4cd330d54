package event

// BusOption configures an event Bus.
type BusOption func(*busConfig)

type busConfig struct {
	// errorHandler receives handler errors and recovered panics.
	errorHandler ErrorHandler
}

func defaultBusConfig() busConfig {
	return busConfig{
		errorHandler: func(any, error) {},
	}
}

// WithErrorHandler sets the hook receiving handler errors and panics.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(c *busConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}
