// Package backend holds the static configuration of upstream services.
package backend

import (
	"sort"

	"homehub/internal/config"
)

// Descriptor describes one upstream service: where it lives, how to
// authenticate against it, and how the dashboard displays it.
type Descriptor struct {
	Key     string
	Name    string
	BaseURL string
	Secret  string
	Icon    string
	Color   string
}

// Registry is an immutable lookup of configured backends, built once at
// startup and safe for concurrent use.
type Registry struct {
	backends map[string]Descriptor
	keys     []string
}

// NewRegistry builds a registry from the given descriptors.
func NewRegistry(descriptors ...Descriptor) *Registry {
	backends := make(map[string]Descriptor, len(descriptors))
	keys := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		if _, exists := backends[d.Key]; exists {
			continue
		}
		backends[d.Key] = d
		keys = append(keys, d.Key)
	}
	sort.Strings(keys)
	return &Registry{backends: backends, keys: keys}
}

// Get looks up a backend by key.
func (r *Registry) Get(key string) (Descriptor, bool) {
	d, ok := r.backends[key]
	return d, ok
}

// Keys returns the configured backend keys in sorted order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// All returns every configured descriptor in key order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.backends[k])
	}
	return out
}

// Len returns the number of configured backends.
func (r *Registry) Len() int {
	return len(r.keys)
}

// FromConfig builds the standard homehub registry from config.
func FromConfig(cfg *config.Config) *Registry {
	return NewRegistry(
		Descriptor{
			Key:     "reminders",
			Name:    "Reminders",
			BaseURL: cfg.RemindersURL,
			Secret:  cfg.RemindersSecret,
			Icon:    "check-circle",
			Color:   "#e74c3c",
		},
		Descriptor{
			Key:     "calendar",
			Name:    "Calendar",
			BaseURL: cfg.CalendarURL,
			Secret:  cfg.CalendarSecret,
			Icon:    "calendar",
			Color:   "#3498db",
		},
		Descriptor{
			Key:     "notes",
			Name:    "Notes",
			BaseURL: cfg.NotesURL,
			Secret:  cfg.NotesSecret,
			Icon:    "file-text",
			Color:   "#f1c40f",
		},
		Descriptor{
			Key:     "habits",
			Name:    "Habits",
			BaseURL: cfg.HabitsURL,
			Secret:  cfg.HabitsSecret,
			Icon:    "repeat",
			Color:   "#2ecc71",
		},
	)
}
