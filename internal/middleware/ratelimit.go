package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
)

// IPRateLimiter mantém um token bucket por IP; buckets ociosos expiram.
type IPRateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
}

func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &IPRateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		limiters: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	if v, ok := l.limiters.Get(ip); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.limiters.Add(ip, lim, cache.DefaultExpiration); err != nil {
		// outra requisição criou o bucket primeiro
		if v, ok := l.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

func (l *IPRateLimiter) Allow(ip string) bool {
	return l.get(ip).Allow()
}

func (l *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas tentativas. Tente novamente em instantes.")
			c.Abort()
			return
		}
		c.Next()
	}
}
