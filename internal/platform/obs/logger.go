package obs

import "go.uber.org/zap"

// NewLogger builds the process logger. Production emits JSON to stdout;
// development uses the console encoder at debug level.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	return config.Build()
}
