package middleware

import (
	"net/http"

	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

const defaultRate = "120-M"

// RateLimit throttles the console API per client IP using an in-memory
// store. format uses limiter notation ("120-M" = 120 requests per minute).
func RateLimit(format string, log *zap.Logger) func(http.Handler) http.Handler {
	if format == "" {
		format = defaultRate
	}
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		log.Warn("invalid rate limit format, using default", zap.String("format", format))
		rate, _ = limiter.NewRateFromFormatted(defaultRate)
	}

	instance := limiter.New(memory.NewStore(), rate)
	middleware := mhttp.NewMiddleware(instance)

	return func(next http.Handler) http.Handler {
		return middleware.Handler(next)
	}
}
