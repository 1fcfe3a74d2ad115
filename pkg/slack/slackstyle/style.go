package slackstyle

import "strings"

const Green = "#228B22"
const Red = "#800000"
const Yellow = "#DAA520"

// TrendIcon maps a webhook trend value ("up", "bull", "down", ...) to a slack emoji.
func TrendIcon(trend string) string {
	switch strings.ToLower(trend) {
	case "up", "bull", "bullish", "long", "buy":
		return ":chart_with_upwards_trend:"
	case "down", "bear", "bearish", "short", "sell":
		return ":chart_with_downwards_trend:"
	}
	return ""
}
