package breed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProfile() Profile {
	return Seed()[0]
}

func TestValidateRejectsZeroWeightTotal(t *testing.T) {
	p := validProfile()
	p.Weights = Weights{}

	err := Validate([]Profile{p})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	p := validProfile()
	p.Weights.Vibe = -5

	assert.ErrorIs(t, Validate([]Profile{p}), ErrInvalidProfile)
}

func TestValidateRejectsOutOfRangeSpace(t *testing.T) {
	p := validProfile()
	p.Preferences.SpaceScore = []int{0, 6}

	assert.ErrorIs(t, Validate([]Profile{p}), ErrInvalidProfile)
}

func TestValidateRejectsUnknownPreferenceValue(t *testing.T) {
	p := validProfile()
	p.Preferences.Vibe = []Vibe{"grumpy"}

	assert.ErrorIs(t, Validate([]Profile{p}), ErrInvalidProfile)
}

func TestValidateRejectsMissingName(t *testing.T) {
	p := validProfile()
	p.Name = ""

	assert.ErrorIs(t, Validate([]Profile{p}), ErrInvalidProfile)
}

func TestValidateRejectsDuplicateKeys(t *testing.T) {
	p := validProfile()

	assert.ErrorIs(t, Validate([]Profile{p, p}), ErrInvalidProfile)
}
