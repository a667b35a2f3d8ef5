package pad

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidPad = errors.New("invalid pad")

// Pad is a single trigger unit: a key binding, the URI of the clip it plays, and the label shown when it fires.
type Pad struct {
	ID     string `toml:"id"`
	Key    string `toml:"key"`
	Source string `toml:"src"`
	Label  string `toml:"label"`
}

func (p *Pad) OK() error {
	errs := []string{}

	if p.ID == "" {
		errs = append(errs, "missing id")
	}

	if utf8.RuneCountInString(p.Key) != 1 {
		errs = append(errs, fmt.Sprintf("key %q must be a single character", p.Key))
	}

	if p.Source == "" {
		errs = append(errs, "missing src")
	}

	if p.Label == "" {
		errs = append(errs, "missing label")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidPad, p.ID, strings.Join(errs, "; "))
	}

	return nil
}

// Registry is the ordered, fixed set of pads. Keys are stored upper-cased and are unique.
type Registry struct {
	pads []Pad
}

func NewRegistry(pads []Pad) (*Registry, error) {
	if len(pads) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one pad", ErrInvalidPad)
	}

	var (
		errs = []string{}
		ids  = map[string]bool{}
		keys = map[string]string{}
		reg  = &Registry{pads: make([]Pad, 0, len(pads))}
	)

	for _, pad := range pads {
		pad.Key = strings.ToUpper(pad.Key)

		if err := pad.OK(); err != nil {
			errs = append(errs, err.Error())
			continue
		}

		if ids[pad.ID] {
			errs = append(errs, fmt.Sprintf("duplicate pad id %q", pad.ID))
		}

		if other, ok := keys[pad.Key]; ok {
			errs = append(errs, fmt.Sprintf("key %q bound to both %q and %q", pad.Key, other, pad.ID))
		}

		ids[pad.ID] = true
		keys[pad.Key] = pad.ID

		reg.pads = append(reg.pads, pad)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("registry error: %s", strings.Join(errs, "; "))
	}

	return reg, nil
}

// ResolveByKey finds the pad bound to key, ignoring case. Anything other than a single character never matches.
func (r *Registry) ResolveByKey(key string) (*Pad, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return nil, false
	}

	key = strings.ToUpper(key)

	for idx := range r.pads {
		if r.pads[idx].Key == key {
			return &r.pads[idx], true
		}
	}

	return nil, false
}

func (r *Registry) ByID(id string) (*Pad, bool) {
	for idx := range r.pads {
		if r.pads[idx].ID == id {
			return &r.pads[idx], true
		}
	}

	return nil, false
}

// Pads returns a copy of the pads in registry order.
func (r *Registry) Pads() []Pad {
	result := make([]Pad, len(r.pads))
	copy(result, r.pads)

	return result
}

func (r *Registry) Len() int { return len(r.pads) }

// Sources returns every pad's audio source, in registry order.
func (r *Registry) Sources() []string {
	result := make([]string, 0, len(r.pads))
	for _, pad := range r.pads {
		result = append(result, pad.Source)
	}

	return result
}
