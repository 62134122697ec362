package venue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the YAML document accepted by --venues. Entries matching a
// registered venue by name replace its non-empty fields; unknown entries are
// appended as new venues.
type Overrides struct {
	Venues []*Venue `yaml:"venues"`
}

// LoadOverrides reads a YAML override file and applies it to the registry.
func LoadOverrides(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading venue config: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parsing venue config: %w", err)
	}
	if len(o.Venues) == 0 {
		return fmt.Errorf("venue config %s defines no venues", path)
	}

	for _, v := range o.Venues {
		if v.Name == "" {
			return fmt.Errorf("venue config %s: entry missing name", path)
		}
		existing, ok := r.byName[v.Name]
		if !ok {
			if v.File == "" {
				return fmt.Errorf("venue config %s: new venue %q missing file", path, v.Name)
			}
			r.add(v)
			continue
		}
		if v.Location != "" {
			existing.Location = v.Location
		}
		if len(v.Tags) > 0 {
			existing.Tags = v.Tags
		}
		if v.File != "" {
			existing.File = v.File
		}
	}
	return nil
}
