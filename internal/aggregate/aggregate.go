// Package aggregate folds deduplicated, scored records into city-level,
// type-level, and region-level summaries. All entry points are pure functions
// of their inputs and safe to call concurrently.
package aggregate

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/dedupe"
	"github.com/sells-group/prospector-cli/internal/geo"
	"github.com/sells-group/prospector-cli/internal/model"
	"github.com/sells-group/prospector-cli/internal/normalize"
	"github.com/sells-group/prospector-cli/internal/scorer"
)

// highOpportunityThreshold is the minimum opportunity score counted as a
// high-opportunity establishment in aggregates.
const highOpportunityThreshold = 40

// ByCity groups sessions by normalized city, deduplicates and scores within
// each group, and computes summary stats. Output is sorted descending by
// establishment count; ties keep input order.
func ByCity(sessions []model.Session) []model.CityAggregate {
	groups, order := groupByCity(sessions)

	out := make([]model.CityAggregate, 0, len(order))
	for _, city := range order {
		group := groups[city]
		scored := scorer.ScoreAll(dedupe.Deduplicate(group))
		st := summarize(scored)

		out = append(out, model.CityAggregate{
			City:                city,
			TotalEstablishments: len(scored),
			Categories:          categories(group),
			AvgRating:           st.avgRating,
			WithPhone:           st.withPhone,
			WithWebsite:         st.withWebsite,
			HighOpportunity:     st.highOpportunity,
			Sessions:            sessionIDs(group),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalEstablishments > out[j].TotalEstablishments
	})
	return out
}

// ByType filters sessions to one normalized city and groups them by category
// label, deduplicating and scoring within each (city, category) pair. Output
// is sorted descending by establishment count.
func ByType(sessions []model.Session, city string) []model.TypeAggregate {
	target := normalize.City(city)

	groups := make(map[string][]model.Session)
	var order []string
	for _, s := range sessions {
		if normalize.City(s.City) != target {
			continue
		}
		if _, seen := groups[s.Category]; !seen {
			order = append(order, s.Category)
		}
		groups[s.Category] = append(groups[s.Category], s)
	}

	out := make([]model.TypeAggregate, 0, len(order))
	for _, category := range order {
		group := groups[category]
		scored := scorer.ScoreAll(dedupe.Deduplicate(group))
		st := summarize(scored)

		out = append(out, model.TypeAggregate{
			City:                target,
			Category:            category,
			TotalEstablishments: len(scored),
			AvgRating:           st.avgRating,
			AvgReviews:          st.avgReviews,
			WithPhone:           st.withPhone,
			WithWebsite:         st.withWebsite,
			HighOpportunity:     st.highOpportunity,
			Sessions:            sessionIDs(group),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalEstablishments > out[j].TotalEstablishments
	})
	return out
}

// ByRegion rolls city aggregates up into the fixed hierarchy. Every hierarchy
// unit appears in the output, zero-valued with HasData=false when no city
// resolves to it. Unresolved cities are skipped here but remain visible at
// the city level.
//
// The region rating mean is a two-term running average (old==0 ? city :
// (old+city)/2), not a count-weighted mean. That approximation is preserved
// for compatibility with the numbers consumers already see.
func ByRegion(cityAggs []model.CityAggregate, hierarchy []geo.RegionDefinition) []model.RegionAggregate {
	resolver := geo.NewResolver(hierarchy)

	out := make([]model.RegionAggregate, len(hierarchy))
	byCode := make(map[string]int, len(hierarchy))
	for i, region := range hierarchy {
		out[i] = model.RegionAggregate{Code: region.Code, Name: region.Name}
		byCode[region.Code] = i
	}

	for _, ca := range cityAggs {
		m, ok := resolver.Resolve(ca.City)
		if !ok {
			zap.L().Debug("aggregate: city unresolved, excluded from region rollup",
				zap.String("city", ca.City),
			)
			continue
		}

		agg := &out[byCode[m.Code]]
		agg.HasData = true
		agg.Cities = append(agg.Cities, ca)
		agg.TotalEstablishments += ca.TotalEstablishments
		agg.WithPhone += ca.WithPhone
		agg.WithWebsite += ca.WithWebsite
		agg.HighOpportunity += ca.HighOpportunity
		agg.Categories = unionInto(agg.Categories, ca.Categories)

		if agg.AvgRating == 0 {
			agg.AvgRating = ca.AvgRating
		} else {
			agg.AvgRating = round2((agg.AvgRating + ca.AvgRating) / 2)
		}
	}

	return out
}

type stats struct {
	withPhone       int
	withWebsite     int
	highOpportunity int
	avgRating       float64
	avgReviews      float64
}

// summarize computes per-group counters. Rating and review-count means
// exclude records with rating 0, so unrated entries do not deflate averages.
func summarize(scored []model.ScoredRecord) stats {
	var st stats
	var ratingSum float64
	var reviewSum, rated int

	for _, r := range scored {
		if model.Present(r.Phone) {
			st.withPhone++
		}
		if model.Present(r.Website) {
			st.withWebsite++
		}
		if r.OpportunityScore >= highOpportunityThreshold {
			st.highOpportunity++
		}
		if r.Rating > 0 {
			rated++
			ratingSum += r.Rating
			reviewSum += r.ReviewCount
		}
	}

	if rated > 0 {
		st.avgRating = round2(ratingSum / float64(rated))
		st.avgReviews = round2(float64(reviewSum) / float64(rated))
	}
	return st
}

func groupByCity(sessions []model.Session) (map[string][]model.Session, []string) {
	groups := make(map[string][]model.Session)
	var order []string
	for _, s := range sessions {
		city := normalize.City(s.City)
		if _, seen := groups[city]; !seen {
			order = append(order, city)
		}
		groups[city] = append(groups[city], s)
	}
	return groups, order
}

// categories collects the distinct category labels seen across a session
// group, in first-seen order.
func categories(sessions []model.Session) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range sessions {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}

func sessionIDs(sessions []model.Session) []string {
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	return ids
}

func unionInto(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, c := range dst {
		seen[c] = true
	}
	for _, c := range src {
		if !seen[c] {
			seen[c] = true
			dst = append(dst, c)
		}
	}
	return dst
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
