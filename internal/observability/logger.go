package observability

import (
	"github.com/danmuck/psyc/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger(app string) zerolog.Logger {
	logging.ConfigureRuntime()
	logger := logging.Logger().With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
