package quiz

import (
	"errors"
	"fmt"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
)

// CheckpointIndex is the question after which a first, non-final match is
// shown. It must be the space question.
const CheckpointIndex = 2

var (
	ErrUnknownQuestionSet = errors.New("unknown question set")
	ErrInvalidQuestionSet = errors.New("invalid question set")
)

// Option is one selectable answer.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question asks for exactly one axis.
type Question struct {
	ID      string     `json:"id"`
	Axis    breed.Axis `json:"axis"`
	Prompt  string     `json:"prompt"`
	Options []Option   `json:"options"`
}

// Option finds the option with the given value.
func (q Question) Option(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// QuestionSet is a named, ordered questionnaire.
type QuestionSet struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Validate requires every axis exactly once and the space question at the
// checkpoint.
func (s QuestionSet) Validate() error {
	seen := make(map[breed.Axis]bool, len(s.Questions))
	for _, q := range s.Questions {
		if seen[q.Axis] {
			return fmt.Errorf("%w: %s asks %s twice", ErrInvalidQuestionSet, s.Name, q.Axis)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: %s has no options for %s", ErrInvalidQuestionSet, s.Name, q.Axis)
		}
		seen[q.Axis] = true
	}
	for _, axis := range breed.AllAxes() {
		if !seen[axis] {
			return fmt.Errorf("%w: %s never asks %s", ErrInvalidQuestionSet, s.Name, axis)
		}
	}
	if len(s.Questions) != len(breed.AllAxes()) {
		return fmt.Errorf("%w: %s asks unknown axes", ErrInvalidQuestionSet, s.Name)
	}
	if s.Questions[CheckpointIndex].Axis != breed.AxisSpaceScore {
		return fmt.Errorf("%w: %s must ask space at index %d", ErrInvalidQuestionSet, s.Name, CheckpointIndex)
	}
	return nil
}

const (
	ClassicSet = "classic"
	CozySet    = "cozy"
)

// QuestionSetByName resolves a built-in set. An empty name is the classic set.
func QuestionSetByName(name string) (QuestionSet, error) {
	switch name {
	case "", ClassicSet:
		return DefaultQuestions(), nil
	case CozySet:
		return ThemedQuestions(), nil
	}
	return QuestionSet{}, fmt.Errorf("%w: %q", ErrUnknownQuestionSet, name)
}

func spaceOptions(labels [5]string) []Option {
	opts := make([]Option, 0, len(labels))
	for i, label := range labels {
		opts = append(opts, Option{Value: fmt.Sprint(i + 1), Label: label})
	}
	return opts
}

// DefaultQuestions is the standard questionnaire.
func DefaultQuestions() QuestionSet {
	return QuestionSet{
		Name: ClassicSet,
		Questions: []Question{
			{
				ID: "species", Axis: breed.AxisSpecies,
				Prompt: "Which kind of companion are you looking for?",
				Options: []Option{
					{Value: string(breed.Dog), Label: "A dog"},
					{Value: string(breed.Cat), Label: "A cat"},
					{Value: string(breed.Bird), Label: "A bird"},
					{Value: string(breed.Rabbit), Label: "A rabbit"},
				},
			},
			{
				ID: "household", Axis: breed.AxisKidLevel,
				Prompt: "Who else lives at home?",
				Options: []Option{
					{Value: string(breed.KidsNone), Label: "No kids"},
					{Value: string(breed.KidsToddlers), Label: "Toddlers"},
					{Value: string(breed.KidsSchool), Label: "School-age kids"},
					{Value: string(breed.KidsTeens), Label: "Teenagers"},
				},
			},
			{
				ID: "space", Axis: breed.AxisSpaceScore,
				Prompt: "How much space do you have?",
				Options: spaceOptions([5]string{
					"Tiny studio", "Small apartment", "Apartment with a spare room",
					"House with a yard", "Roomy home with a balcony",
				}),
			},
			{
				ID: "allergy", Axis: breed.AxisAllergy,
				Prompt: "Any allergies we should plan around?",
				Options: []Option{
					{Value: string(breed.AllergyHigh), Label: "Yes, allergies are a big deal"},
					{Value: string(breed.AllergyNone), Label: "No allergies"},
					{Value: string(breed.AllergyOtherPets), Label: "No, but we have other pets"},
				},
			},
			{
				ID: "vibe", Axis: breed.AxisVibe,
				Prompt: "What vibe are you after?",
				Options: []Option{
					{Value: string(breed.VibeCuddly), Label: "Cuddly"},
					{Value: string(breed.VibePlayful), Label: "Playful"},
					{Value: string(breed.VibeIndependent), Label: "Independent"},
				},
			},
			{
				ID: "grooming", Axis: breed.AxisGrooming,
				Prompt: "How much grooming are you happy to do?",
				Options: []Option{
					{Value: string(breed.LevelLow), Label: "As little as possible"},
					{Value: string(breed.LevelMedium), Label: "A weekly brush"},
					{Value: string(breed.LevelHigh), Label: "I enjoy daily grooming"},
				},
			},
			{
				ID: "activity", Axis: breed.AxisActivity,
				Prompt: "How active is your day-to-day?",
				Options: []Option{
					{Value: string(breed.LevelLow), Label: "Mostly relaxed"},
					{Value: string(breed.LevelMedium), Label: "Daily walks"},
					{Value: string(breed.LevelHigh), Label: "Runs, hikes, the works"},
				},
			},
		},
	}
}

// ThemedQuestions asks the same axes with cozier wording.
func ThemedQuestions() QuestionSet {
	set := DefaultQuestions()
	set.Name = CozySet

	prompts := map[breed.Axis]string{
		breed.AxisSpecies:    "Picture your perfect evening in. Who is curled up next to you?",
		breed.AxisKidLevel:   "Who else shares the blanket fort?",
		breed.AxisSpaceScore: "How roomy is your nest?",
		breed.AxisAllergy:    "Does fur make anyone sneeze?",
		breed.AxisVibe:       "Pick the mood of your dream Sunday.",
		breed.AxisGrooming:   "How do you feel about brushing sessions?",
		breed.AxisActivity:   "And how energetic is a normal week?",
	}

	questions := make([]Question, len(set.Questions))
	for i, q := range set.Questions {
		q.ID = CozySet + "-" + q.ID
		q.Prompt = prompts[q.Axis]
		q.Options = append([]Option(nil), q.Options...)
		questions[i] = q
	}
	set.Questions = questions
	return set
}
