// Package dedupe collapses records observed across collection sessions into
// one record per establishment.
package dedupe

import (
	"github.com/sells-group/prospector-cli/internal/model"
)

// Deduplicate iterates all records across the given sessions in session order
// and keeps a single record per dedup key. The winning record replaces the
// loser wholesale; fields are never combined from two different records.
// Output order is first-occurrence insertion order. Empty input yields an
// empty result.
func Deduplicate(sessions []model.Session) []model.Record {
	index := make(map[string]int)
	out := make([]model.Record, 0)

	for _, s := range sessions {
		for _, r := range s.Records {
			key := model.DedupKey(r.Name, r.City)
			i, seen := index[key]
			if !seen {
				index[key] = len(out)
				out = append(out, r)
				continue
			}
			if moreComplete(r, out[i]) {
				out[i] = r
			}
		}
	}
	return out
}

// moreComplete reports whether the incoming record should replace the stored
// one. Completeness is compared field by field in fixed priority order: phone
// presence first, then website presence, then review count. The first field
// where the two records differ decides; ties on all three keep the stored
// record (first-seen wins). The comparison is non-commutative on purpose: a
// record with a phone number beats a phoneless one with more reviews.
func moreComplete(incoming, stored model.Record) bool {
	inPhone, stPhone := model.Present(incoming.Phone), model.Present(stored.Phone)
	if inPhone != stPhone {
		return inPhone
	}
	inSite, stSite := model.Present(incoming.Website), model.Present(stored.Website)
	if inSite != stSite {
		return inSite
	}
	return incoming.ReviewCount > stored.ReviewCount
}
