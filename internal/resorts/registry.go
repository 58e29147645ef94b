package resorts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/snow-report/internal/weather"
)

var (
	// ErrNotFound is returned when no resort has the requested id.
	ErrNotFound = errors.New("resort not found")

	validate = validator.New()
)

// Registry is the immutable, process-wide table of known resorts.
type Registry struct {
	resorts []weather.Resort
	byID    map[string]int
	regions []string
}

// New validates list and builds a Registry from it. Ids must be unique.
func New(list []weather.Resort) (*Registry, error) {
	r := &Registry{
		resorts: make([]weather.Resort, 0, len(list)),
		byID:    make(map[string]int, len(list)),
	}

	seenRegion := make(map[string]bool)
	for _, res := range list {
		if err := validate.Struct(res); err != nil {
			return nil, fmt.Errorf("invalid resort %q: %w", res.ID, err)
		}
		if _, dup := r.byID[res.ID]; dup {
			return nil, fmt.Errorf("duplicate resort id %q", res.ID)
		}
		r.byID[res.ID] = len(r.resorts)
		r.resorts = append(r.resorts, res)

		if !seenRegion[res.Region] {
			seenRegion[res.Region] = true
			r.regions = append(r.regions, res.Region)
		}
	}

	return r, nil
}

// All returns a copy of every resort in registry order.
func (r *Registry) All() []weather.Resort {
	out := make([]weather.Resort, len(r.resorts))
	copy(out, r.resorts)
	return out
}

// Get returns the resort with the given id.
func (r *Registry) Get(id string) (weather.Resort, error) {
	i, ok := r.byID[id]
	if !ok {
		return weather.Resort{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.resorts[i], nil
}

// InRegion returns the resorts of a region, matched case-insensitively, in
// registry order. An empty region returns every resort.
func (r *Registry) InRegion(region string) []weather.Resort {
	if region == "" {
		return r.All()
	}
	var out []weather.Resort
	for _, res := range r.resorts {
		if strings.EqualFold(res.Region, region) {
			out = append(out, res)
		}
	}
	return out
}

// Regions lists the distinct regions in order of first appearance.
func (r *Registry) Regions() []string {
	out := make([]string, len(r.regions))
	copy(out, r.regions)
	return out
}

// HasRegion reports whether any resort belongs to region.
func (r *Registry) HasRegion(region string) bool {
	for _, known := range r.regions {
		if strings.EqualFold(known, region) {
			return true
		}
	}
	return false
}
