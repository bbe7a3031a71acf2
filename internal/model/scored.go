package model

// RedFlag signals a likely sales opportunity or weakness on an establishment.
type RedFlag string

const (
	FlagNoWebsite  RedFlag = "no-website"
	FlagNoPhone    RedFlag = "no-phone"
	FlagLowRating  RedFlag = "low-rating"
	FlagFewReviews RedFlag = "few-reviews"
)

// StrengthTag describes an establishment's market position.
type StrengthTag string

const (
	TagWellRated    StrengthTag = "well-rated"
	TagPopular      StrengthTag = "popular"
	TagDigitalReady StrengthTag = "digital-ready"
	TagNeedsDigital StrengthTag = "needs-digital"
	TagStruggling   StrengthTag = "struggling"
)

// ScoredRecord is a Record plus derived signals. Derived fields are pure
// functions of the record's own fields and are never stored independently of
// their source record.
type ScoredRecord struct {
	Record
	RedFlags         []RedFlag     `json:"red_flags"`
	Strengths        []StrengthTag `json:"strengths"`
	OpportunityScore int           `json:"opportunity_score"` // 0-100
}
