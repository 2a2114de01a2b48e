// Package platforms normalizes platform names found in release listings.
//
// Pages refer to the same system in many ways ("PS2", "PlayStation 2").
// An alias table maps abbreviations to canonical names, so release facts
// of different pages point to the same platforms row.
package platforms

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// Aliases maps platform abbreviations to canonical names.
type Aliases struct {
	names map[string]string
}

// New returns the built-in alias table.
func New() *Aliases {
	res := &Aliases{names: make(map[string]string)}
	// the embedded table is checked by tests
	_ = res.merge(aliasesYAML)
	return res
}

// Load returns the built-in alias table extended by the YAML file at path.
// Entries of the file replace built-in entries with the same key.
func Load(path string) (*Aliases, error) {
	res := New()
	if path == "" {
		return res, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, AliasesError(path, err)
	}
	if err = res.merge(data); err != nil {
		return nil, AliasesError(path, err)
	}
	return res, nil
}

func (a *Aliases) merge(data []byte) error {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		a.names[key(k)] = v
	}
	return nil
}

// Len returns the number of aliases.
func (a *Aliases) Len() int {
	return len(a.names)
}

// Normalize returns the canonical name of a platform. Unknown names are
// returned trimmed, with inner whitespace collapsed.
func (a *Aliases) Normalize(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if a == nil {
		return name
	}
	if res, ok := a.names[key(name)]; ok {
		return res
	}
	return name
}

func key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var ordinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

// ParseGeneration finds a console generation in text such as
// "Third generation" or "8th". It returns false when there is none.
func ParseGeneration(s string) (int, bool) {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:()[]")
		if i, ok := ordinals[w]; ok {
			return i, true
		}
		for _, sfx := range []string{"st", "nd", "rd", "th"} {
			num, ok := strings.CutSuffix(w, sfx)
			if !ok {
				continue
			}
			if i, err := strconv.Atoi(num); err == nil && i > 0 && i < 100 {
				return i, true
			}
		}
	}
	return 0, false
}
