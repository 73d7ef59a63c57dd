package matching

import (
	"math"

	"bedmatch/backend/internal/models"
)

// MaxMarks is the score of a tenant answer that matches the landlord's
// rank-1 option for an attribute.
const MaxMarks = 10.0

// Score computes the 0-100% compatibility between a tenant's profile and a
// landlord's ranked preferences. Per attribute: the tenant's chosen option
// earns marks that decay linearly with its position in the landlord's
// ranking, rank 1 earning full marks. An unanswered tenant attribute, an
// unranked landlord attribute, or a choice outside the ranking all score 0 —
// and still count in the denominator, so a landlord who ranks nothing caps
// every tenant below 100%.
func Score(profile *models.PersonalityProfile, rankings []models.PreferenceRanking) float64 {
	byAttr := make(map[models.Attribute][]int64, len(rankings))
	for _, r := range rankings {
		byAttr[r.Attribute] = r.OptionIDs
	}

	var total float64
	for _, attr := range models.AllAttributes {
		total += attributeMarks(profile, attr, byAttr[attr])
	}

	pct := total / (float64(len(models.AllAttributes)) * MaxMarks) * 100
	return math.Round(pct*100) / 100
}

func attributeMarks(profile *models.PersonalityProfile, attr models.Attribute, ranked []int64) float64 {
	if profile == nil {
		return 0
	}
	choice, answered := profile.Choice(attr)
	if !answered || len(ranked) == 0 {
		return 0
	}
	for idx, optionID := range ranked {
		if optionID == choice {
			n := float64(len(ranked))
			return (n - float64(idx)) / n * MaxMarks
		}
	}
	return 0
}

// Applicable merges a landlord's base rankings with bed-level overrides:
// a bed-level ranking for an attribute replaces the base ranking for that
// attribute, everything else falls through to the base. Rows carrying an
// attribute outside the fixed set are dropped here, so a stale ranking row
// can never earn marks.
func Applicable(base, bedLevel []models.PreferenceRanking) []models.PreferenceRanking {
	overridden := make(map[models.Attribute]bool, len(bedLevel))
	merged := make([]models.PreferenceRanking, 0, len(base)+len(bedLevel))
	for _, r := range bedLevel {
		if !models.KnownAttribute(r.Attribute) {
			continue
		}
		overridden[r.Attribute] = true
		merged = append(merged, r)
	}
	for _, r := range base {
		if !models.KnownAttribute(r.Attribute) || overridden[r.Attribute] {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
