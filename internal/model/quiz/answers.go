package quiz

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
)

// ErrInvalidValue is returned when an answer value is not part of its axis.
var ErrInvalidValue = errors.New("invalid answer value")

// Answers accumulates one value per axis. The zero value of a field means
// the axis has not been answered yet.
type Answers struct {
	Species    breed.Species  `json:"species,omitempty"`
	KidLevel   breed.KidLevel `json:"kidLevel,omitempty"`
	SpaceScore int            `json:"spaceScore,omitempty"`
	Allergy    breed.Allergy  `json:"allergy,omitempty"`
	Vibe       breed.Vibe     `json:"vibe,omitempty"`
	Grooming   breed.Level    `json:"grooming,omitempty"`
	Activity   breed.Level    `json:"activity,omitempty"`
}

// Set parses value for axis and records it.
func (a *Answers) Set(axis breed.Axis, value string) error {
	switch axis {
	case breed.AxisSpecies:
		switch s := breed.Species(value); s {
		case breed.Cat, breed.Dog, breed.Bird, breed.Rabbit:
			a.Species = s
			return nil
		}
	case breed.AxisKidLevel:
		switch k := breed.KidLevel(value); k {
		case breed.KidsNone, breed.KidsToddlers, breed.KidsSchool, breed.KidsTeens:
			a.KidLevel = k
			return nil
		}
	case breed.AxisSpaceScore:
		n, err := strconv.Atoi(value)
		if err == nil && n >= breed.MinSpaceScore && n <= breed.MaxSpaceScore {
			a.SpaceScore = n
			return nil
		}
	case breed.AxisAllergy:
		switch al := breed.Allergy(value); al {
		case breed.AllergyHigh, breed.AllergyNone, breed.AllergyOtherPets:
			a.Allergy = al
			return nil
		}
	case breed.AxisVibe:
		switch v := breed.Vibe(value); v {
		case breed.VibeCuddly, breed.VibePlayful, breed.VibeIndependent:
			a.Vibe = v
			return nil
		}
	case breed.AxisGrooming, breed.AxisActivity:
		switch l := breed.Level(value); l {
		case breed.LevelLow, breed.LevelMedium, breed.LevelHigh:
			if axis == breed.AxisGrooming {
				a.Grooming = l
			} else {
				a.Activity = l
			}
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown axis %q", ErrInvalidValue, axis)
	}
	return fmt.Errorf("%w: %q for %s", ErrInvalidValue, value, axis)
}

// Clear forgets the answer for axis.
func (a *Answers) Clear(axis breed.Axis) {
	switch axis {
	case breed.AxisSpecies:
		a.Species = ""
	case breed.AxisKidLevel:
		a.KidLevel = ""
	case breed.AxisSpaceScore:
		a.SpaceScore = 0
	case breed.AxisAllergy:
		a.Allergy = ""
	case breed.AxisVibe:
		a.Vibe = ""
	case breed.AxisGrooming:
		a.Grooming = ""
	case breed.AxisActivity:
		a.Activity = ""
	}
}

// IsSet reports whether axis has been answered.
func (a Answers) IsSet(axis breed.Axis) bool {
	switch axis {
	case breed.AxisSpecies:
		return a.Species != ""
	case breed.AxisKidLevel:
		return a.KidLevel != ""
	case breed.AxisSpaceScore:
		return a.SpaceScore != 0
	case breed.AxisAllergy:
		return a.Allergy != ""
	case breed.AxisVibe:
		return a.Vibe != ""
	case breed.AxisGrooming:
		return a.Grooming != ""
	case breed.AxisActivity:
		return a.Activity != ""
	}
	return false
}

// IsComplete reports whether the species filter and every weighted axis are set.
func (a Answers) IsComplete() bool {
	for _, axis := range breed.AllAxes() {
		if !a.IsSet(axis) {
			return false
		}
	}
	return true
}
