// Package trend computes scoring-trend statistics per team: season average,
// recent form, momentum (OLS slope of score against week number), and
// volatility (relative dispersion of weekly scores).
package trend

import (
	"math"

	"luck-mcp/internal/config"
	"luck-mcp/internal/season"
)

// Direction classifies the momentum slope against the stability threshold.
type Direction string

const (
	Rising  Direction = "rising"
	Stable  Direction = "stable"
	Falling Direction = "falling"
)

// Record is one team's trend summary. When a team has fewer than two played
// weeks, MomentumSlope and Volatility are 0 and Insufficient is true; with
// zero played weeks every statistic is 0 and the record is still returned so
// sibling teams keep their numbers.
type Record struct {
	TeamID        string    `json:"team_id"`
	WeeksPlayed   int       `json:"weeks_played"`
	AverageScore  float64   `json:"average_score"`
	RecentForm    float64   `json:"recent_form"`
	MomentumSlope float64   `json:"momentum_slope"`
	Volatility    float64   `json:"volatility_pct"`
	Direction     Direction `json:"direction"`
	Insufficient  bool      `json:"insufficient_data"`
}

// Compute builds trend records for every team, keyed by team id. It fails
// only when the season has no completed weeks at all; per-team shortfalls
// degrade to flagged records instead.
func Compute(m *season.Matrix, cfg config.Engine) (map[string]Record, error) {
	if m.Weeks() < 1 {
		return nil, &season.InsufficientDataError{Weeks: m.Weeks(), Needed: 1}
	}

	out := make(map[string]Record, len(m.Teams()))
	for _, t := range m.Teams() {
		out[t.ID] = compute(t.ID, m.ScoresOf(t.ID), cfg)
	}
	return out, nil
}

func compute(teamID string, scores []season.WeekScore, cfg config.Engine) Record {
	r := Record{TeamID: teamID, WeeksPlayed: len(scores), Direction: Stable}
	if len(scores) == 0 {
		r.Insufficient = true
		return r
	}

	sum := 0.0
	for _, s := range scores {
		sum += s.Points
	}
	r.AverageScore = sum / float64(len(scores))

	window := cfg.RecentFormWindow
	if window > len(scores) {
		window = len(scores)
	}
	recent := 0.0
	for _, s := range scores[len(scores)-window:] {
		recent += s.Points
	}
	r.RecentForm = recent / float64(window)

	if len(scores) < 2 {
		r.Insufficient = true
		return r
	}

	r.MomentumSlope = olsSlope(scores)
	r.Volatility = volatility(scores, r.AverageScore)

	if r.MomentumSlope >= cfg.StabilityThreshold {
		r.Direction = Rising
	} else if r.MomentumSlope <= -cfg.StabilityThreshold {
		r.Direction = Falling
	}
	return r
}

// olsSlope fits score = a + b*week by ordinary least squares and returns b,
// in points per week. Week numbers are the actual calendar weeks, so a bye
// in the middle of the season leaves a gap rather than compressing the
// timeline.
func olsSlope(scores []season.WeekScore) float64 {
	n := float64(len(scores))
	var sumX, sumY, sumXY, sumXX float64
	for _, s := range scores {
		x := float64(s.Week)
		sumX += x
		sumY += s.Points
		sumXY += x * s.Points
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}

// volatility is the sample standard deviation (N−1 divisor) of the weekly
// scores expressed as a percentage of the mean. A zero mean yields 0 rather
// than a division blowup.
func volatility(scores []season.WeekScore, mean float64) float64 {
	if mean == 0 {
		return 0
	}
	var ss float64
	for _, s := range scores {
		d := s.Points - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(len(scores)-1))
	return sd / mean * 100
}
