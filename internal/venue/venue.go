// Package venue holds the registry of tracked venues: display name, location,
// venue-type tags, and the per-venue JSON file each scraper writes. The
// aggregator walks the registry in order, so order here is feed order.
package venue

// Venue describes one tracked venue.
type Venue struct {
	Name     string   `yaml:"name" json:"name"`
	Location string   `yaml:"location" json:"location"`
	Tags     []string `yaml:"tags" json:"tags"`
	File     string   `yaml:"file" json:"file"`
}

// Registry holds known venues in aggregation order with name lookup.
type Registry struct {
	venues []*Venue
	byName map[string]*Venue
}

// NewRegistry builds a registry from a venue list, preserving order.
func NewRegistry(venues []*Venue) *Registry {
	r := &Registry{
		venues: make([]*Venue, 0, len(venues)),
		byName: make(map[string]*Venue, len(venues)),
	}
	for _, v := range venues {
		r.add(v)
	}
	return r
}

func (r *Registry) add(v *Venue) {
	if _, exists := r.byName[v.Name]; exists {
		return
	}
	r.venues = append(r.venues, v)
	r.byName[v.Name] = v
}

// Lookup returns the venue registered under the exact display name.
// Events sometimes carry sub-venue names ("Southern Sun Pub", "Boulder
// Theater") that are not registered; callers fall back to the config of the
// file the event came from.
func (r *Registry) Lookup(name string) (*Venue, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// All returns the venues in registration order. The slice is shared; callers
// must not modify it.
func (r *Registry) All() []*Venue {
	return r.venues
}

// Len returns the number of registered venues.
func (r *Registry) Len() int {
	return len(r.venues)
}
