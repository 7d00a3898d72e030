// Package matching scores questionnaire answers against breed profiles and
// picks the presentable winner.
package matching

import (
	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

// DisqualifiedScore is assigned when the allergy dealbreaker applies.
const DisqualifiedScore = -1000.0

// Scored pairs a candidate with its raw score.
type Scored struct {
	Profile breed.Profile
	Score   float64
}

// Candidates applies the species filter. Unset species means no filter.
func Candidates(answers quiz.Answers, store breed.Store) []breed.Profile {
	return store.BySpecies(answers.Species)
}

// Score computes a raw score per profile, in input order. Unanswered axes
// contribute nothing so partial answers can be scored.
func Score(answers quiz.Answers, profiles []breed.Profile) []Scored {
	out := make([]Scored, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Scored{Profile: p, Score: scoreProfile(answers, p)})
	}
	return out
}

func scoreProfile(a quiz.Answers, p breed.Profile) float64 {
	if a.Allergy == breed.AllergyHigh && !p.AcceptsAllergy(breed.AllergyHigh) {
		return DisqualifiedScore
	}

	prefs, w := p.Preferences, p.Weights
	score := 0.0
	if a.KidLevel != "" && contains(prefs.KidLevel, a.KidLevel) {
		score += w.KidLevel
	}
	if a.Allergy != "" && contains(prefs.Allergy, a.Allergy) {
		score += w.Allergy
	}
	if a.Vibe != "" && contains(prefs.Vibe, a.Vibe) {
		score += w.Vibe
	}
	if a.Grooming != "" && contains(prefs.Grooming, a.Grooming) {
		score += w.Grooming
	}
	if a.Activity != "" && contains(prefs.Activity, a.Activity) {
		score += w.Activity
	}
	if a.SpaceScore != 0 {
		score += spaceContribution(a.SpaceScore, prefs.SpaceScore, w.SpaceScore)
	}
	return score
}

// spaceContribution gives full weight on an exact match and half weight
// when the nearest preferred value is one step away.
func spaceContribution(answer int, preferred []int, weight float64) float64 {
	if len(preferred) == 0 {
		return 0
	}
	minDist := -1
	for _, p := range preferred {
		d := answer - p
		if d < 0 {
			d = -d
		}
		if minDist < 0 || d < minDist {
			minDist = d
		}
	}
	switch minDist {
	case 0:
		return weight
	case 1:
		return weight / 2
	}
	return 0
}

func contains[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}
