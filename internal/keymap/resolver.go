package keymap

import (
	"fmt"
	"slices"

	"github.com/llehouerou/ripple/internal/command"
)

type entry struct {
	text string
	cmds []command.Command
}

// Resolver maps key strings to parsed commands.
type Resolver struct {
	bindings map[string]entry
}

// NewResolver parses defaults then overrides (key -> command text, an empty
// text unbinds the key). Bindings that fail to parse are reported and
// skipped; an invalid override leaves the default in place.
func NewResolver(defaults []Binding, overrides map[string]string) (*Resolver, []error) {
	r := &Resolver{bindings: make(map[string]entry)}
	var errs []error

	bind := func(key, text string) {
		cmds, err := command.Parse(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %q: %w", key, err))
			return
		}
		r.bindings[normalizeKey(key)] = entry{text: text, cmds: cmds}
	}
	for _, b := range defaults {
		for _, key := range b.Keys {
			bind(key, b.Command)
		}
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if text := overrides[key]; text == "" {
			delete(r.bindings, normalizeKey(key))
		} else {
			bind(key, text)
		}
	}
	return r, errs
}

// Resolve returns the commands bound to key, or nil.
func (r *Resolver) Resolve(key string) []command.Command {
	return r.bindings[key].cmds
}

// KeysFor returns the keys bound to text, sorted.
func (r *Resolver) KeysFor(text string) []string {
	var keys []string
	for key, e := range r.bindings {
		if e.text == text {
			keys = append(keys, displayKey(key))
		}
	}
	slices.Sort(keys)
	return keys
}

// KeyBinding is one resolved key for display.
type KeyBinding struct {
	Key     string
	Command string
}

// All returns every binding sorted by command text then key.
func (r *Resolver) All() []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for key, e := range r.bindings {
		out = append(out, KeyBinding{Key: displayKey(key), Command: e.text})
	}
	slices.SortFunc(out, func(a, b KeyBinding) int {
		if a.Command != b.Command {
			if a.Command < b.Command {
				return -1
			}
			return 1
		}
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})
	return out
}
