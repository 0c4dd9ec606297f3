// Package fixtures provides the seed records loaded into the stores at
// startup.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"taskdesk/app/models"
)

//go:embed data/*.json
var data embed.FS

// Set is one full collection of seed records.
type Set struct {
	Tasks      []models.Task
	Categories []models.Category
	Contacts   []models.Contact
	Companies  []models.Company
	Deals      []models.Deal
	Leads      []models.Lead
}

// Embedded loads the seed data compiled into the binary.
func Embedded() (Set, error) {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		return Set{}, err
	}
	return Load(sub)
}

// Load reads every seed file from fsys. Each file holds a JSON array.
func Load(fsys fs.FS) (Set, error) {
	var s Set
	files := []struct {
		name string
		dst  any
	}{
		{"tasks.json", &s.Tasks},
		{"categories.json", &s.Categories},
		{"contacts.json", &s.Contacts},
		{"companies.json", &s.Companies},
		{"deals.json", &s.Deals},
		{"leads.json", &s.Leads},
	}
	for _, f := range files {
		if err := decode(fsys, f.name, f.dst); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

func decode(fsys fs.FS, name string, dst any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open fixture %s: %w", name, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return nil
}
