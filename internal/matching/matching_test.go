package matching

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

func profile(key string, species breed.Species, prefs breed.Preferences, w breed.Weights, tags ...string) breed.Profile {
	return breed.Profile{
		Key:         key,
		Name:        key,
		Species:     species,
		Preferences: prefs,
		Weights:     w,
		Why:         "because " + key,
		Tags:        tags,
	}
}

func evenWeights() breed.Weights {
	return breed.Weights{KidLevel: 10, SpaceScore: 10, Allergy: 10, Vibe: 10, Grooming: 10, Activity: 10}
}

func couchPotatoAnswers() quiz.Answers {
	return quiz.Answers{
		Species:    breed.Dog,
		KidLevel:   breed.KidsNone,
		SpaceScore: 5,
		Allergy:    breed.AllergyNone,
		Vibe:       breed.VibeCuddly,
		Grooming:   breed.LevelLow,
		Activity:   breed.LevelLow,
	}
}

func TestScenarioAPerfectCouchPotato(t *testing.T) {
	store := breed.NewMemoryStore(breed.Seed())

	result, err := Match(couchPotatoAnswers(), store)
	require.NoError(t, err)
	assert.Equal(t, "Couch Potato Companion", result.Name)
	assert.Equal(t, 100, result.FitScore)
	assert.Equal(t, []string{"affectionate", "easy-care", "low-energy"}, result.Tags)
	assert.False(t, result.Final)
}

func TestScenarioBAllergyDealbreakerYieldsNoMatch(t *testing.T) {
	only := profile("sheddy", breed.Dog, breed.Preferences{Allergy: []breed.Allergy{breed.AllergyNone}}, evenWeights())
	answers := couchPotatoAnswers()
	answers.Allergy = breed.AllergyHigh

	_, err := Match(answers, breed.NewMemoryStore([]breed.Profile{only}))
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestScenarioCSpeciesWithoutProfiles(t *testing.T) {
	store := breed.NewMemoryStore(breed.Seed())
	answers := couchPotatoAnswers()
	answers.Species = breed.Rabbit

	assert.Empty(t, Candidates(answers, store))
	_, err := Match(answers, store)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestScenarioDSpaceTwoStepsAwayContributesNothing(t *testing.T) {
	p := profile("roomy", breed.Dog, breed.Preferences{SpaceScore: []int{4, 5}}, evenWeights())

	scored := Score(quiz.Answers{SpaceScore: 2}, []breed.Profile{p})
	require.Len(t, scored, 1)
	assert.Zero(t, scored[0].Score)
}

func TestDealbreakerDisqualifiesEveryNonHypoallergenicProfile(t *testing.T) {
	answers := couchPotatoAnswers()
	answers.Allergy = breed.AllergyHigh

	for _, s := range Score(answers, breed.Seed()) {
		if s.Profile.AcceptsAllergy(breed.AllergyHigh) {
			assert.Greater(t, s.Score, DisqualifiedScore, s.Profile.Key)
		} else {
			assert.Equal(t, DisqualifiedScore, s.Score, s.Profile.Key)
		}
	}
}

func TestDealbreakerAppliesBeforeAnyOtherAxis(t *testing.T) {
	p := profile("strict", breed.Cat, breed.Preferences{
		KidLevel: []breed.KidLevel{breed.KidsNone},
		Allergy:  []breed.Allergy{breed.AllergyNone},
	}, evenWeights())

	scored := Score(quiz.Answers{Allergy: breed.AllergyHigh, KidLevel: breed.KidsNone}, []breed.Profile{p})
	assert.Equal(t, DisqualifiedScore, scored[0].Score)
}

func TestSpacePartialCredit(t *testing.T) {
	w := evenWeights()
	w.SpaceScore = 30
	p := profile("mid", breed.Dog, breed.Preferences{SpaceScore: []int{3}}, w)

	cases := map[int]float64{1: 0, 2: 15, 3: 30, 4: 15, 5: 0}
	for answer, want := range cases {
		t.Run(fmt.Sprintf("space=%d", answer), func(t *testing.T) {
			scored := Score(quiz.Answers{SpaceScore: answer}, []breed.Profile{p})
			assert.InDelta(t, want, scored[0].Score, 1e-9)
		})
	}
}

func TestSpaceUsesNearestPreferredValue(t *testing.T) {
	p := profile("split", breed.Dog, breed.Preferences{SpaceScore: []int{1, 5}}, evenWeights())

	scored := Score(quiz.Answers{SpaceScore: 4}, []breed.Profile{p})
	assert.InDelta(t, 5, scored[0].Score, 1e-9)
}

func TestUnsetAxesContributeNothing(t *testing.T) {
	p := breed.Seed()[0]
	partial := quiz.Answers{Species: breed.Dog, KidLevel: breed.KidsNone}

	scored := Score(partial, []breed.Profile{p})
	assert.InDelta(t, p.Weights.KidLevel, scored[0].Score, 1e-9)
}

func TestInvalidAxisValueIsNonMatching(t *testing.T) {
	p := breed.Seed()[0]
	scored := Score(quiz.Answers{Vibe: breed.Vibe("grumpy")}, []breed.Profile{p})
	assert.Zero(t, scored[0].Score)
}

func TestSelectUsesStableOrderForTies(t *testing.T) {
	a := profile("first", breed.Dog, breed.Preferences{}, evenWeights())
	b := profile("second", breed.Dog, breed.Preferences{}, evenWeights())

	result, err := Select([]Scored{{Profile: a, Score: 20}, {Profile: b, Score: 20}})
	require.NoError(t, err)
	assert.Equal(t, "first", result.Key)
}

func TestSelectRanksOnRawScore(t *testing.T) {
	small := profile("small-budget", breed.Dog, breed.Preferences{}, breed.Weights{Vibe: 10})
	big := profile("big-budget", breed.Dog, breed.Preferences{}, breed.Weights{Vibe: 10, Activity: 90})

	// small is a perfect 10/10 but big wins on raw score 40/100.
	result, err := Select([]Scored{{Profile: small, Score: 10}, {Profile: big, Score: 40}})
	require.NoError(t, err)
	assert.Equal(t, "big-budget", result.Key)
	assert.Equal(t, MinFitScore, result.FitScore)
}

func TestSelectEmpty(t *testing.T) {
	_, err := Select(nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSelectGuardsZeroWeightProfile(t *testing.T) {
	broken := profile("broken", breed.Dog, breed.Preferences{}, breed.Weights{})

	_, err := Select([]Scored{{Profile: broken, Score: 0}})
	assert.ErrorIs(t, err, breed.ErrInvalidProfile)
}

func TestFitScoreFloorAndRounding(t *testing.T) {
	assert.Equal(t, MinFitScore, FitScore(0, 100))
	assert.Equal(t, MinFitScore, FitScore(-25, 100))
	assert.Equal(t, MinFitScore, FitScore(59.4, 100))
	assert.Equal(t, 61, FitScore(60.5, 100))
	assert.Equal(t, 83, FitScore(100, 120))
	assert.Equal(t, MaxFitScore, FitScore(100, 100))
}

func TestSelectSortsTagsWithoutTouchingCatalog(t *testing.T) {
	p := profile("tagged", breed.Dog, breed.Preferences{}, evenWeights(), "zesty", "alpha", "mellow")

	result, err := Select([]Scored{{Profile: p, Score: 30}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mellow", "zesty"}, result.Tags)
	assert.Equal(t, []string{"zesty", "alpha", "mellow"}, p.Tags)
}

// allAnswerSets enumerates every complete answer set for one species.
func allAnswerSets(species breed.Species) []quiz.Answers {
	var out []quiz.Answers
	for _, k := range []breed.KidLevel{breed.KidsNone, breed.KidsToddlers, breed.KidsSchool, breed.KidsTeens} {
		for s := breed.MinSpaceScore; s <= breed.MaxSpaceScore; s++ {
			for _, al := range []breed.Allergy{breed.AllergyHigh, breed.AllergyNone, breed.AllergyOtherPets} {
				for _, v := range []breed.Vibe{breed.VibeCuddly, breed.VibePlayful, breed.VibeIndependent} {
					for _, g := range []breed.Level{breed.LevelLow, breed.LevelMedium, breed.LevelHigh} {
						for _, act := range []breed.Level{breed.LevelLow, breed.LevelMedium, breed.LevelHigh} {
							out = append(out, quiz.Answers{
								Species: species, KidLevel: k, SpaceScore: s,
								Allergy: al, Vibe: v, Grooming: g, Activity: act,
							})
						}
					}
				}
			}
		}
	}
	return out
}

func TestPropertiesOverEveryAnswerSet(t *testing.T) {
	store := breed.NewMemoryStore(breed.Seed())

	for _, species := range []breed.Species{breed.Cat, breed.Dog} {
		for _, answers := range allAnswerSets(species) {
			result, err := Match(answers, store)
			if err != nil {
				require.ErrorIs(t, err, ErrNoCandidates)
				continue
			}

			assert.GreaterOrEqual(t, result.FitScore, MinFitScore)
			assert.LessOrEqual(t, result.FitScore, MaxFitScore)

			p, ok := store.FindByKey(result.Key)
			require.True(t, ok)
			assert.Equal(t, species, p.Species)
			assert.True(t, sort.StringsAreSorted(result.Tags))

			again, err := Match(answers, store)
			require.NoError(t, err)
			assert.Equal(t, result, again)
		}
	}
}

func TestRankDoesNotReorderInput(t *testing.T) {
	scored := []Scored{
		{Profile: profile("low", breed.Dog, breed.Preferences{}, evenWeights()), Score: 10},
		{Profile: profile("high", breed.Dog, breed.Preferences{}, evenWeights()), Score: 50},
		{Profile: profile("out", breed.Dog, breed.Preferences{}, evenWeights()), Score: DisqualifiedScore},
	}

	ranked := Rank(scored)
	assert.Equal(t, "high", ranked[0].Profile.Key)
	assert.Equal(t, "out", ranked[2].Profile.Key)
	assert.Equal(t, "low", scored[0].Profile.Key)
}
