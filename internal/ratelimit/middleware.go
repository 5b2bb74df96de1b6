package ratelimit

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/resume-server/pkg/util"
)

// KeyFunc derives the client key a request is throttled under.
type KeyFunc func(c *fiber.Ctx) string

// ClientKey keys by originating address: first X-Forwarded-For hop when
// present, remote IP otherwise.
func ClientKey(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// Middleware enforces the limiter before the handler chain. Every response
// carries the quota headers; a denied request terminates immediately with a
// rate-limited error and a Retry-After hint.
func Middleware(limiter *Limiter, keyFn KeyFunc) fiber.Handler {
	if keyFn == nil {
		keyFn = ClientKey
	}
	return func(c *fiber.Ctx) error {
		res := limiter.Allow(keyFn(c))

		c.Set("Rate-Limit-Total", strconv.Itoa(res.Limit))
		c.Set("Rate-Limit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("Rate-Limit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(retryAfterSeconds(res, limiter.now()), 10))
			return apperrors.NewRateLimited(res.Limit, res.Remaining, res.ResetAt.Unix())
		}
		return c.Next()
	}
}

func retryAfterSeconds(res Result, now time.Time) int64 {
	secs := int64(res.ResetAt.Sub(now).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}
