package breed

// Seed provides the built-in catalog used when no remote or file catalog is
// configured. There are deliberately no rabbit profiles yet.
func Seed() []Profile {
	return []Profile{
		{
			Key:     "couch-potato-companion",
			Name:    "Couch Potato Companion",
			Species: Dog,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsNone, KidsTeens},
				SpaceScore: []int{4, 5},
				Allergy:    []Allergy{AllergyNone, AllergyOtherPets},
				Vibe:       []Vibe{VibeCuddly},
				Grooming:   []Level{LevelLow},
				Activity:   []Level{LevelLow},
			},
			Weights: Weights{KidLevel: 15, SpaceScore: 20, Allergy: 20, Vibe: 20, Grooming: 10, Activity: 15},
			Why:     "A laid-back dog that is happiest sharing the sofa. Short walks, minimal brushing and plenty of naps.",
			Tags:    []string{"low-energy", "easy-care", "affectionate"},
		},
		{
			Key:     "active-adventure-buddy",
			Name:    "Active Adventure Buddy",
			Species: Dog,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsSchool, KidsTeens},
				SpaceScore: []int{4, 5},
				Allergy:    []Allergy{AllergyNone},
				Vibe:       []Vibe{VibePlayful},
				Grooming:   []Level{LevelMedium},
				Activity:   []Level{LevelHigh},
			},
			Weights: Weights{KidLevel: 15, SpaceScore: 25, Allergy: 15, Vibe: 15, Grooming: 10, Activity: 20},
			Why:     "Built for trails and fetch. Needs daily exercise and rewards it with endless enthusiasm.",
			Tags:    []string{"outdoorsy", "high-energy", "trainable"},
		},
		{
			Key:     "family-playmate",
			Name:    "Family Playmate",
			Species: Dog,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsToddlers, KidsSchool},
				SpaceScore: []int{3, 4, 5},
				Allergy:    []Allergy{AllergyNone, AllergyOtherPets},
				Vibe:       []Vibe{VibePlayful, VibeCuddly},
				Grooming:   []Level{LevelMedium, LevelHigh},
				Activity:   []Level{LevelMedium},
			},
			Weights: Weights{KidLevel: 30, SpaceScore: 20, Allergy: 20, Vibe: 20, Grooming: 15, Activity: 15},
			Why:     "Patient with little hands and always up for a game in the garden.",
			Tags:    []string{"kid-friendly", "gentle", "social"},
		},
		{
			Key:     "hypoallergenic-poodle-pal",
			Name:    "Hypoallergenic Poodle Pal",
			Species: Dog,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsNone, KidsToddlers, KidsSchool, KidsTeens},
				SpaceScore: []int{2, 3, 4},
				Allergy:    []Allergy{AllergyHigh, AllergyNone},
				Vibe:       []Vibe{VibeCuddly, VibePlayful},
				Grooming:   []Level{LevelHigh},
				Activity:   []Level{LevelMedium},
			},
			Weights: Weights{KidLevel: 10, SpaceScore: 15, Allergy: 35, Vibe: 15, Grooming: 15, Activity: 10},
			Why:     "A low-shedding coat that suits allergy-prone homes, in exchange for regular grooming.",
			Tags:    []string{"low-shedding", "smart", "allergy-friendly"},
		},
		{
			Key:     "compact-city-dog",
			Name:    "Compact City Dog",
			Species: Dog,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsNone, KidsTeens},
				SpaceScore: []int{1, 2},
				Allergy:    []Allergy{AllergyNone},
				Vibe:       []Vibe{VibeCuddly},
				Grooming:   []Level{LevelLow, LevelMedium},
				Activity:   []Level{LevelLow, LevelMedium},
			},
			Weights: Weights{KidLevel: 10, SpaceScore: 30, Allergy: 10, Vibe: 20, Grooming: 15, Activity: 15},
			Why:     "Small enough for a studio and content with a couple of brisk walks around the block.",
			Tags:    []string{"small", "apartment", "portable"},
		},
		{
			Key:     "independent-lap-cat",
			Name:    "Independent Lap Cat",
			Species: Cat,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsNone, KidsSchool, KidsTeens},
				SpaceScore: []int{1, 2, 3},
				Allergy:    []Allergy{AllergyNone},
				Vibe:       []Vibe{VibeIndependent, VibeCuddly},
				Grooming:   []Level{LevelLow},
				Activity:   []Level{LevelLow},
			},
			Weights: Weights{KidLevel: 10, SpaceScore: 25, Allergy: 15, Vibe: 25, Grooming: 15, Activity: 10},
			Why:     "Keeps its own schedule but always finds your lap in the evening.",
			Tags:    []string{"independent", "quiet", "apartment"},
		},
		{
			Key:     "playful-apartment-cat",
			Name:    "Playful Apartment Cat",
			Species: Cat,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsSchool, KidsTeens},
				SpaceScore: []int{2, 3, 4},
				Allergy:    []Allergy{AllergyNone, AllergyOtherPets},
				Vibe:       []Vibe{VibePlayful},
				Grooming:   []Level{LevelMedium},
				Activity:   []Level{LevelMedium, LevelHigh},
			},
			Weights: Weights{KidLevel: 15, SpaceScore: 20, Allergy: 15, Vibe: 25, Grooming: 10, Activity: 15},
			Why:     "Turns a bottle cap into a toy and a hallway into a race track.",
			Tags:    []string{"playful", "curious", "social"},
		},
		{
			Key:     "hypoallergenic-sphynx-spirit",
			Name:    "Hypoallergenic Sphynx Spirit",
			Species: Cat,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsNone, KidsSchool, KidsTeens},
				SpaceScore: []int{1, 2, 3, 4, 5},
				Allergy:    []Allergy{AllergyHigh, AllergyNone, AllergyOtherPets},
				Vibe:       []Vibe{VibeCuddly, VibePlayful},
				Grooming:   []Level{LevelHigh},
				Activity:   []Level{LevelMedium},
			},
			Weights: Weights{KidLevel: 10, SpaceScore: 10, Allergy: 40, Vibe: 20, Grooming: 10, Activity: 10},
			Why:     "Almost no fur to trigger allergies, and a warm, attention-seeking personality.",
			Tags:    []string{"warm", "allergy-friendly", "attention-seeking"},
		},
		{
			Key:     "fluffy-longhair-lounger",
			Name:    "Fluffy Longhair Lounger",
			Species: Cat,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsNone},
				SpaceScore: []int{3, 4, 5},
				Allergy:    []Allergy{AllergyNone},
				Vibe:       []Vibe{VibeCuddly},
				Grooming:   []Level{LevelHigh},
				Activity:   []Level{LevelLow},
			},
			Weights: Weights{KidLevel: 10, SpaceScore: 20, Allergy: 20, Vibe: 25, Grooming: 15, Activity: 10},
			Why:     "A plush, calm companion for a quiet home and an owner who enjoys daily brushing.",
			Tags:    []string{"calm", "fluffy", "lap-cat"},
		},
		{
			Key:     "chatty-parakeet-pal",
			Name:    "Chatty Parakeet Pal",
			Species: Bird,
			Preferences: Preferences{
				KidLevel:   []KidLevel{KidsSchool, KidsTeens},
				SpaceScore: []int{1, 2, 3},
				Allergy:    []Allergy{AllergyNone, AllergyOtherPets},
				Vibe:       []Vibe{VibePlayful},
				Grooming:   []Level{LevelLow},
				Activity:   []Level{LevelMedium},
			},
			Weights: Weights{KidLevel: 15, SpaceScore: 20, Allergy: 20, Vibe: 20, Grooming: 10, Activity: 15},
			Why:     "Small, social and surprisingly talkative. Needs daily interaction more than floor space.",
			Tags:    []string{"vocal", "small", "social"},
		},
	}
}
