package util

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

func NewValidLimiter(r rate.Limit, b int) (*rate.Limiter, error) {
	if b <= 0 || r <= 0 {
		return nil, fmt.Errorf("bad rate limit config, insufficient tokens (rate=%f, b=%d)", r, b)
	}
	return rate.NewLimiter(r, b), nil
}

// ParseRateLimitSyntax parses the rate limit syntax into the rate.Limiter parameters
// sample inputs:
//
//	2+1/5s (2 initial tokens, 1 token per 5 seconds)
//	5+3/1m (5 initial tokens, 3 tokens per minute)
//	3m     (1 token per 3 minutes)
//	1/3m   (1 token per 3 minutes)
func ParseRateLimitSyntax(desc string) (*rate.Limiter, error) {
	var b = 0
	var r = 1.0
	var durStr string

	if _, err := fmt.Sscanf(desc, "%d+%f/%s", &b, &r, &durStr); err != nil {
		b = 1
		r = 1.0
		if _, err = fmt.Sscanf(desc, "%f/%s", &r, &durStr); err != nil {
			durStr = desc
			r = 1.0
		}
	}

	duration, err := time.ParseDuration(durStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit syntax: b+n/duration, err: %v", err)
	}

	if r == 1.0 {
		return NewValidLimiter(rate.Every(duration), b)
	}

	return NewValidLimiter(rate.Every(time.Duration(float64(duration)/r)), b)
}
