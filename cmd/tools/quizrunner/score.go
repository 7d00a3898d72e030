package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/pawmatch/backend/internal/matching"
	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
	"github.com/zhouzirui/pawmatch/backend/internal/model/quiz"
)

type scoreReport struct {
	Result  *quiz.Result  `json:"result,omitempty"`
	NoMatch bool          `json:"noMatch"`
	Ranking []rankedBreed `json:"ranking,omitempty"`
}

type rankedBreed struct {
	Key          string  `json:"key"`
	Score        float64 `json:"score"`
	Disqualified bool    `json:"disqualified,omitempty"`
}

func newScoreCmd(loadStore func() (breed.Store, error)) *cobra.Command {
	values := make(map[breed.Axis]*string)
	var top int

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one set of answers and print the match as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			var answers quiz.Answers
			for _, axis := range breed.AllAxes() {
				if v := *values[axis]; v != "" {
					if err := answers.Set(axis, v); err != nil {
						return fmt.Errorf("--%s: %w", axis, err)
					}
				}
			}
			if answers.Species == "" {
				return errors.New("--species is required")
			}

			scored := matching.Score(answers, matching.Candidates(answers, store))
			report := scoreReport{}
			result, err := matching.Select(scored)
			switch {
			case errors.Is(err, matching.ErrNoCandidates):
				report.NoMatch = true
			case err != nil:
				return err
			default:
				report.Result = &result
			}

			for i, s := range matching.Rank(scored) {
				if i >= top {
					break
				}
				report.Ranking = append(report.Ranking, rankedBreed{
					Key:          s.Profile.Key,
					Score:        s.Score,
					Disqualified: s.Score <= matching.DisqualifiedScore,
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	for _, axis := range breed.AllAxes() {
		values[axis] = cmd.Flags().String(string(axis), "", fmt.Sprintf("answer for the %s question", axis))
	}
	cmd.Flags().IntVar(&top, "top", 0, "also print the N best raw scores")
	return cmd
}
