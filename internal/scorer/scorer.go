// Package scorer derives red flags, strength tags, and a 0-100 opportunity
// score from a single establishment record. Every function here is pure.
package scorer

import (
	"github.com/sells-group/prospector-cli/internal/model"
)

// Rating and review-count thresholds.
const (
	lowRatingCeiling    = 3.0
	fewReviewsCeiling   = 10
	wellRatedFloor      = 4.2
	popularFloor        = 100
	needsDigitalFloor   = 3.5
	strugglingReviewMax = 30
)

// Opportunity score point values. The scale is weighted toward "no website"
// as the dominant sales lever; rating and popularity qualify lead quality.
const (
	pointsNoWebsite   = 35
	pointsNoPhone     = 10
	pointsRatingGood  = 20 // rating >= 3.5
	pointsRatingGreat = 10 // additional when rating >= 4.0
	pointsReviews50   = 15
	pointsReviews200  = 10 // additional when review count >= 200
	maxScore          = 100
)

// Opportunity bands for display.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

// Score derives all signals for one record. The source record is copied, not
// mutated.
func Score(r model.Record) model.ScoredRecord {
	return model.ScoredRecord{
		Record:           r,
		RedFlags:         redFlags(r),
		Strengths:        strengths(r),
		OpportunityScore: opportunity(r),
	}
}

// ScoreAll scores a slice of records, preserving order.
func ScoreAll(records []model.Record) []model.ScoredRecord {
	out := make([]model.ScoredRecord, len(records))
	for i, r := range records {
		out[i] = Score(r)
	}
	return out
}

// redFlags evaluates each flag independently; any subset may apply.
// A rating of exactly 0 means "unknown", not "low".
func redFlags(r model.Record) []model.RedFlag {
	flags := make([]model.RedFlag, 0, 4)
	if !model.Present(r.Website) {
		flags = append(flags, model.FlagNoWebsite)
	}
	if !model.Present(r.Phone) {
		flags = append(flags, model.FlagNoPhone)
	}
	if r.Rating > 0 && r.Rating < lowRatingCeiling {
		flags = append(flags, model.FlagLowRating)
	}
	if r.ReviewCount < fewReviewsCeiling {
		flags = append(flags, model.FlagFewReviews)
	}
	return flags
}

func strengths(r model.Record) []model.StrengthTag {
	tags := make([]model.StrengthTag, 0, 5)
	if r.Rating >= wellRatedFloor {
		tags = append(tags, model.TagWellRated)
	}
	if r.ReviewCount >= popularFloor {
		tags = append(tags, model.TagPopular)
	}
	if model.Present(r.Website) && model.Present(r.Phone) {
		tags = append(tags, model.TagDigitalReady)
	}
	if !model.Present(r.Website) && r.Rating >= needsDigitalFloor {
		tags = append(tags, model.TagNeedsDigital)
	}
	if r.Rating > 0 && r.Rating < lowRatingCeiling && r.ReviewCount < strugglingReviewMax {
		tags = append(tags, model.TagStruggling)
	}
	return tags
}

// opportunity computes the additive point score, capped at 100. Rating and
// review-count points are cumulative: a 4.3-rated record earns 20+10, a
// 250-review record earns 15+10.
func opportunity(r model.Record) int {
	score := 0
	if !model.Present(r.Website) {
		score += pointsNoWebsite
	}
	if !model.Present(r.Phone) {
		score += pointsNoPhone
	}
	if r.Rating >= needsDigitalFloor {
		score += pointsRatingGood
	}
	if r.Rating >= 4.0 {
		score += pointsRatingGreat
	}
	if r.ReviewCount >= 50 {
		score += pointsReviews50
	}
	if r.ReviewCount >= 200 {
		score += pointsReviews200
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

// Band maps a score to its display band: high >= 60, medium 35-59, low < 35.
// Bands are a presentation convention, not stored data.
func Band(score int) string {
	switch {
	case score >= 60:
		return BandHigh
	case score >= 35:
		return BandMedium
	default:
		return BandLow
	}
}
