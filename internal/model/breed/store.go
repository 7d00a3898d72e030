package breed

// Store exposes catalog retrieval for the matcher and HTTP handlers.
type Store interface {
	List() []Profile
	FindByKey(key string) (Profile, bool)
	BySpecies(species Species) []Profile
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Profile
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied profiles.
func NewMemoryStore(items []Profile) *MemoryStore {
	return &MemoryStore{items: append([]Profile(nil), items...)}
}

// List returns every profile in catalog order.
func (s *MemoryStore) List() []Profile {
	return append([]Profile(nil), s.items...)
}

// FindByKey looks up a profile by key.
func (s *MemoryStore) FindByKey(key string) (Profile, bool) {
	for _, item := range s.items {
		if item.Key == key {
			return item, true
		}
	}
	return Profile{}, false
}

// BySpecies returns the profiles of one species in catalog order. An empty
// species returns the whole catalog.
func (s *MemoryStore) BySpecies(species Species) []Profile {
	if species == "" {
		return s.List()
	}
	out := make([]Profile, 0, len(s.items))
	for _, item := range s.items {
		if item.Species == species {
			out = append(out, item)
		}
	}
	return out
}
