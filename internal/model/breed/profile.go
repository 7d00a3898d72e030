package breed

// Species is the animal family a profile belongs to. It filters candidates
// and is never scored.
type Species string

const (
	Cat    Species = "cat"
	Dog    Species = "dog"
	Bird   Species = "bird"
	Rabbit Species = "rabbit"
)

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	switch s {
	case Cat, Dog, Bird, Rabbit:
		return true
	}
	return false
}

// KidLevel describes the youngest children in the household.
type KidLevel string

const (
	KidsNone     KidLevel = "none"
	KidsToddlers KidLevel = "toddlers"
	KidsSchool   KidLevel = "school"
	KidsTeens    KidLevel = "teens"
)

// Allergy describes allergy constraints in the home.
type Allergy string

const (
	AllergyHigh      Allergy = "high"
	AllergyNone      Allergy = "none"
	AllergyOtherPets Allergy = "otherPets"
)

// Vibe is the temperament the owner is looking for.
type Vibe string

const (
	VibeCuddly      Vibe = "cuddly"
	VibePlayful     Vibe = "playful"
	VibeIndependent Vibe = "independent"
)

// Level is shared by the grooming and activity axes.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Space scores range from a tiny studio (1) to a roomy home with balcony (5).
const (
	MinSpaceScore = 1
	MaxSpaceScore = 5
)

// Axis names one questionnaire dimension.
type Axis string

const (
	AxisSpecies    Axis = "species"
	AxisKidLevel   Axis = "kidLevel"
	AxisSpaceScore Axis = "spaceScore"
	AxisAllergy    Axis = "allergy"
	AxisVibe       Axis = "vibe"
	AxisGrooming   Axis = "grooming"
	AxisActivity   Axis = "activity"
)

// WeightedAxes lists the scored axes in scoring order.
func WeightedAxes() []Axis {
	return []Axis{AxisKidLevel, AxisSpaceScore, AxisAllergy, AxisVibe, AxisGrooming, AxisActivity}
}

// AllAxes is the species filter followed by every weighted axis.
func AllAxes() []Axis {
	return append([]Axis{AxisSpecies}, WeightedAxes()...)
}

// ParseAxis maps a wire name to its Axis.
func ParseAxis(name string) (Axis, bool) {
	for _, axis := range AllAxes() {
		if string(axis) == name {
			return axis, true
		}
	}
	return "", false
}

// Preferences holds the acceptable answer values per weighted axis.
type Preferences struct {
	KidLevel   []KidLevel `json:"kidLevel" yaml:"kidLevel" validate:"dive,oneof=none toddlers school teens"`
	SpaceScore []int      `json:"spaceScore" yaml:"spaceScore" validate:"dive,min=1,max=5"`
	Allergy    []Allergy  `json:"allergy" yaml:"allergy" validate:"dive,oneof=high none otherPets"`
	Vibe       []Vibe     `json:"vibe" yaml:"vibe" validate:"dive,oneof=cuddly playful independent"`
	Grooming   []Level    `json:"grooming" yaml:"grooming" validate:"dive,oneof=low medium high"`
	Activity   []Level    `json:"activity" yaml:"activity" validate:"dive,oneof=low medium high"`
}

// Weights is the importance of each axis when it matches.
type Weights struct {
	KidLevel   float64 `json:"kidLevel" yaml:"kidLevel" validate:"gte=0"`
	SpaceScore float64 `json:"spaceScore" yaml:"spaceScore" validate:"gte=0"`
	Allergy    float64 `json:"allergy" yaml:"allergy" validate:"gte=0"`
	Vibe       float64 `json:"vibe" yaml:"vibe" validate:"gte=0"`
	Grooming   float64 `json:"grooming" yaml:"grooming" validate:"gte=0"`
	Activity   float64 `json:"activity" yaml:"activity" validate:"gte=0"`
}

// Sum is the highest raw score a profile can reach.
func (w Weights) Sum() float64 {
	return w.KidLevel + w.SpaceScore + w.Allergy + w.Vibe + w.Grooming + w.Activity
}

// Profile is one catalog entry.
type Profile struct {
	Key         string      `json:"key" yaml:"key" validate:"required"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Species     Species     `json:"species" yaml:"species" validate:"required"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
	Weights     Weights     `json:"weights" yaml:"weights"`
	Why         string      `json:"why" yaml:"why"`
	Tags        []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// AcceptsAllergy reports whether the profile lists a in its allergy set.
func (p Profile) AcceptsAllergy(a Allergy) bool {
	return contains(p.Preferences.Allergy, a)
}

func contains[T comparable](set []T, v T) bool {
	for _, item := range set {
		if item == v {
			return true
		}
	}
	return false
}
