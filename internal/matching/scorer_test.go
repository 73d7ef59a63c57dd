package matching_test

import (
	"testing"

	"bedmatch/backend/internal/matching"
	"bedmatch/backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func opt(v int64) *int64 { return &v }

func ranking(attr models.Attribute, options ...int64) models.PreferenceRanking {
	return models.PreferenceRanking{Attribute: attr, OptionIDs: pq.Int64Array(options)}
}

func TestScore_TopRankEarnsFullMarks(t *testing.T) {
	profile := &models.PersonalityProfile{SmokingHabit: opt(1)}
	rankings := []models.PreferenceRanking{ranking(models.AttrSmoking, 1, 2, 3)}

	// 10 marks out of 100 possible across 10 attributes.
	assert.Equal(t, 10.0, matching.Score(profile, rankings))
}

func TestScore_SecondRankOfTwo(t *testing.T) {
	// Landlord ranks option A=7 first, B=9 second; tenant picked B.
	// raw = (2-1)/2*10 = 5 -> 5/100 overall.
	profile := &models.PersonalityProfile{SmokingHabit: opt(9)}
	rankings := []models.PreferenceRanking{ranking(models.AttrSmoking, 7, 9)}

	assert.Equal(t, 5.0, matching.Score(profile, rankings))
}

func TestScore_RankOneAlwaysBeatsLowerRanks(t *testing.T) {
	for n := 1; n <= 8; n++ {
		options := make([]int64, n)
		for i := range options {
			options[i] = int64(i + 100)
		}
		rankings := []models.PreferenceRanking{ranking(models.AttrCountry, options...)}

		top := matching.Score(&models.PersonalityProfile{Country: opt(options[0])}, rankings)
		for i := 1; i < n; i++ {
			lower := matching.Score(&models.PersonalityProfile{Country: opt(options[i])}, rankings)
			assert.Greater(t, top, lower, "N=%d idx=%d", n, i)
		}
	}
}

func TestScore_UnansweredAttributeScoresZero(t *testing.T) {
	rankings := []models.PreferenceRanking{ranking(models.AttrReligion, 1, 2)}

	assert.Equal(t, 0.0, matching.Score(&models.PersonalityProfile{}, rankings))
}

func TestScore_UnrankedAttributeStaysInDenominator(t *testing.T) {
	// Tenant answers everything, landlord ranks only one attribute: the nine
	// unranked attributes still divide the total.
	profile := &models.PersonalityProfile{
		Occupation: opt(1), Country: opt(1), Religion: opt(1), IncomeRange: opt(1),
		SmokingHabit: opt(1), DrinkingHabit: opt(1), SocializingHabit: opt(1),
		RelationshipStatus: opt(1), FoodHabit: opt(1), PetLover: opt(1),
	}
	rankings := []models.PreferenceRanking{ranking(models.AttrOccupation, 1)}

	assert.Equal(t, 10.0, matching.Score(profile, rankings))
}

func TestScore_ChoiceOutsideRankingScoresZero(t *testing.T) {
	profile := &models.PersonalityProfile{FoodHabit: opt(42)}
	rankings := []models.PreferenceRanking{ranking(models.AttrFoodHabit, 1, 2, 3)}

	assert.Equal(t, 0.0, matching.Score(profile, rankings))
}

func TestScore_BoundedAndFullHouse(t *testing.T) {
	profile := &models.PersonalityProfile{
		Occupation: opt(1), Country: opt(1), Religion: opt(1), IncomeRange: opt(1),
		SmokingHabit: opt(1), DrinkingHabit: opt(1), SocializingHabit: opt(1),
		RelationshipStatus: opt(1), FoodHabit: opt(1), PetLover: opt(1),
	}
	var rankings []models.PreferenceRanking
	for _, attr := range models.AllAttributes {
		rankings = append(rankings, ranking(attr, 1, 2))
	}

	score := matching.Score(profile, rankings)
	assert.Equal(t, 100.0, score)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestScore_NilProfile(t *testing.T) {
	assert.Equal(t, 0.0, matching.Score(nil, nil))
}

func TestScore_RoundsToTwoDecimals(t *testing.T) {
	// idx 1 of 3 -> (3-1)/3*10 = 6.666... marks -> 6.67% overall.
	profile := &models.PersonalityProfile{PetLover: opt(2)}
	rankings := []models.PreferenceRanking{ranking(models.AttrPetLover, 1, 2, 3)}

	assert.Equal(t, 6.67, matching.Score(profile, rankings))
}

func TestApplicable_BedLevelOverridesBase(t *testing.T) {
	bedID := "bed-1"
	base := []models.PreferenceRanking{
		ranking(models.AttrSmoking, 1, 2),
		ranking(models.AttrCountry, 3, 4),
	}
	bedLevel := []models.PreferenceRanking{
		{Attribute: models.AttrSmoking, BedID: &bedID, OptionIDs: pq.Int64Array{9}},
	}

	merged := matching.Applicable(base, bedLevel)
	assert.Len(t, merged, 2)

	byAttr := make(map[models.Attribute][]int64)
	for _, r := range merged {
		byAttr[r.Attribute] = r.OptionIDs
	}
	assert.Equal(t, []int64{9}, byAttr[models.AttrSmoking])
	assert.Equal(t, []int64{3, 4}, byAttr[models.AttrCountry])
}

func TestApplicable_DropsUnknownAttributes(t *testing.T) {
	bedID := "bed-1"
	base := []models.PreferenceRanking{
		ranking(models.AttrSmoking, 1, 2),
		ranking("favourite_colour", 5, 6),
	}
	bedLevel := []models.PreferenceRanking{
		{Attribute: "star_sign", BedID: &bedID, OptionIDs: pq.Int64Array{9}},
	}

	merged := matching.Applicable(base, bedLevel)

	assert.Len(t, merged, 1)
	assert.Equal(t, models.AttrSmoking, merged[0].Attribute)
}
