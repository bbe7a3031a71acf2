package model

// CityAggregate summarizes deduplicated establishments for one normalized
// city. Computed fresh from a collection of sessions; never persisted.
type CityAggregate struct {
	City                string   `json:"city"`
	TotalEstablishments int      `json:"total_establishments"`
	Categories          []string `json:"categories"`
	AvgRating           float64  `json:"avg_rating"` // over rated establishments only
	WithPhone           int      `json:"with_phone"`
	WithWebsite         int      `json:"with_website"`
	HighOpportunity     int      `json:"high_opportunity"` // establishments scoring >= 40
	Sessions            []string `json:"sessions"`         // contributing session ids
}

// TypeAggregate is a CityAggregate scoped to one (city, category) pair.
type TypeAggregate struct {
	City                string   `json:"city"`
	Category            string   `json:"category"`
	TotalEstablishments int      `json:"total_establishments"`
	AvgRating           float64  `json:"avg_rating"`
	AvgReviews          float64  `json:"avg_reviews"`
	WithPhone           int      `json:"with_phone"`
	WithWebsite         int      `json:"with_website"`
	HighOpportunity     int      `json:"high_opportunity"`
	Sessions            []string `json:"sessions"`
}

// RegionAggregate rolls CityAggregates up into one fixed geographic unit.
// Units with no resolved city stay zero-valued with HasData=false so
// consumers can render the complete hierarchy.
type RegionAggregate struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	Cities              []CityAggregate `json:"cities,omitempty"`
	TotalEstablishments int             `json:"total_establishments"`
	Categories          []string        `json:"categories,omitempty"`
	AvgRating           float64         `json:"avg_rating"`
	WithPhone           int             `json:"with_phone"`
	WithWebsite         int             `json:"with_website"`
	HighOpportunity     int             `json:"high_opportunity"`
	HasData             bool            `json:"has_data"`
}
