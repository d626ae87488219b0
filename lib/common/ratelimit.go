package common

import (
	"time"

	"github.com/ulule/limiter"
)

// RateLimitAPI is the default rate limit of the public API endpoints.
var RateLimitAPI = limiter.Rate{
	Period: 1 * time.Minute,
	Limit:  100,
}

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}
