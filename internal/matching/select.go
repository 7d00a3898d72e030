package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

// Fit score bounds. The floor keeps the reported percentage encouraging even
// when the raw match is weak.
const (
	MinFitScore = 60
	MaxFitScore = 100
)

// ErrNoCandidates means nothing survived the species filter and dealbreaker.
var ErrNoCandidates = errors.New("no matching breed")

// Select ranks scored candidates and builds the result for the winner.
// Ranking compares raw scores; only the winner is normalised.
func Select(scored []Scored) (quiz.Result, error) {
	if len(scored) == 0 {
		return quiz.Result{}, ErrNoCandidates
	}

	ranked := Rank(scored)
	winner := ranked[0]
	if winner.Score <= DisqualifiedScore {
		return quiz.Result{}, ErrNoCandidates
	}

	total := winner.Profile.Weights.Sum()
	if total <= 0 {
		return quiz.Result{}, fmt.Errorf("%w: %q has no positive weight", breed.ErrInvalidProfile, winner.Profile.Key)
	}

	tags := append([]string{}, winner.Profile.Tags...)
	sort.Strings(tags)

	return quiz.Result{
		Key:      winner.Profile.Key,
		Name:     winner.Profile.Name,
		FitScore: FitScore(winner.Score, total),
		Why:      winner.Profile.Why,
		Tags:     tags,
	}, nil
}

// Rank orders candidates by descending raw score. Ties keep catalog order.
func Rank(scored []Scored) []Scored {
	ranked := append([]Scored(nil), scored...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// FitScore converts a raw score into the displayed percentage.
func FitScore(score, total float64) int {
	fit := int(math.Round(score / total * 100))
	if fit < MinFitScore {
		return MinFitScore
	}
	if fit > MaxFitScore {
		return MaxFitScore
	}
	return fit
}

// Match runs species filtering, scoring and selection. The checkpoint and
// the final result both go through here.
func Match(answers quiz.Answers, store breed.Store) (quiz.Result, error) {
	return Select(Score(answers, Candidates(answers, store)))
}
