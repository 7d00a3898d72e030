package breed

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile marks catalog data that cannot be scored safely.
var ErrInvalidProfile = errors.New("invalid breed profile")

var validate = validator.New()

// Validate asserts catalog integrity at load time: required fields,
// non-negative weights, in-range space preferences, unique keys and a
// positive weight total for every profile.
func Validate(profiles []Profile) error {
	seen := make(map[string]struct{}, len(profiles))
	for i, p := range profiles {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("%w: profile %d (%q): %v", ErrInvalidProfile, i, p.Key, err)
		}
		if _, dup := seen[p.Key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidProfile, p.Key)
		}
		seen[p.Key] = struct{}{}
		if p.Weights.Sum() <= 0 {
			return fmt.Errorf("%w: %q has no positive weight", ErrInvalidProfile, p.Key)
		}
	}
	return nil
}
