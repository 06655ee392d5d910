package middleware

import (
	"net/http"
	"strconv"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig config for Redis-based RPS limiter.
type RateLimitConfig struct {
	Redis          *redis.Client // nil disables the limiter
	RPS            int           // requests per window per client IP; <= 0 disables
	KeyPrefix      string        // e.g. "rl:ip:"
	Window         time.Duration // usually 1s
	RetryAfterHint bool          // set Retry-After header when limited
	Now            func() time.Time
}

// RateLimit applies a fixed-window limit per client IP. Redis errors let the request through.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if cfg.Redis == nil || cfg.RPS <= 0 {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			// fixed-window key: rl:ip:{ip}:{window index}
			now := cfg.Now()
			slot := now.UnixNano() / int64(cfg.Window)
			key := cfg.KeyPrefix + c.RealIP() + ":" + strconv.FormatInt(slot, 10)

			// INCR and set expiry 2*window (safety)
			pipe := cfg.Redis.Pipeline()
			cnt := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, cfg.Window*2)
			if _, err := pipe.Exec(ctx); err != nil {
				return next(c)
			}

			if cnt.Val() > int64(cfg.RPS) {
				if cfg.RetryAfterHint {
					remain := cfg.Window - time.Duration(now.UnixNano()%int64(cfg.Window))
					secs := int((remain + time.Second - 1) / time.Second)
					if secs < 1 {
						secs = 1
					}
					c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				}
				return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limited"})
			}
			return next(c)
		}
	}
}
