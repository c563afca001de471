// Package refdata loads the reference data the builder consumes: the XP
// budget table, flavor messages, the adversary catalog and the class and
// species lists. The 2024 data set is embedded; a directory may override any
// of the files.
package refdata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/adversary"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/encounter"
)

//go:embed data/*.yaml data/*.json
var embedded embed.FS

// File names looked up in the data directory.
const (
	XPBudgetFile    = "xp_budget.yaml"
	FlavorFile      = "flavor.yaml"
	AdversariesFile = "adversaries.json"
	CharactersFile  = "characters.yaml"
)

// Data is the loaded reference data set.
type Data struct {
	XPTable encounter.XPTable
	Flavor  map[int]string
	Catalog *adversary.Catalog
	Classes []string
	Species []string
}

// Embedded loads the built-in data set.
func Embedded() (*Data, error) {
	return Load("")
}

// Load reads the data set. Files present in dir replace the embedded ones;
// an empty dir uses only embedded data.
func Load(dir string) (*Data, error) {
	base, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded data: %w", err)
	}
	src := source{base: base}
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("open data dir: %s is not a directory", dir)
		}
		src.override = os.DirFS(dir)
	}
	return load(src)
}

func load(src source) (*Data, error) {
	var data Data

	raw, err := src.read(XPBudgetFile)
	if err != nil {
		return nil, err
	}
	if data.XPTable, err = ParseXPTable(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", XPBudgetFile, err)
	}

	if raw, err = src.read(FlavorFile); err != nil {
		return nil, err
	}
	if data.Flavor, err = ParseFlavor(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", FlavorFile, err)
	}

	if raw, err = src.read(AdversariesFile); err != nil {
		return nil, err
	}
	creatures, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", AdversariesFile, err)
	}
	data.Catalog = adversary.NewCatalog(creatures)

	if raw, err = src.read(CharactersFile); err != nil {
		return nil, err
	}
	if data.Classes, data.Species, err = ParseCharacters(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", CharactersFile, err)
	}

	return &data, nil
}

type source struct {
	base     fs.FS
	override fs.FS
}

func (s source) read(name string) ([]byte, error) {
	if s.override != nil {
		b, err := fs.ReadFile(s.override, name)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	b, err := fs.ReadFile(s.base, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return b, nil
}
