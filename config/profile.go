package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// profile is the on-disk shape of a named compiler profile (spec §3.3
// ambient convenience): a host keeps "legacy-es2017" / "modern-es2022-
// private-fields" style profiles in version control instead of wiring every
// flag by hand at each call site.
type profile struct {
	ESLevel            int      `yaml:"es_level"`
	Strict             bool     `yaml:"strict"`
	Comparison         string   `yaml:"comparison"`
	Or                 string   `yaml:"or"`
	Truthy             string   `yaml:"truthy"`
	NullishToS         bool     `yaml:"nullish_to_s"`
	Module             string   `yaml:"module"`
	UnderscoredPrivate bool     `yaml:"underscored_private"`
	Width              int      `yaml:"width"`
	Filters            []string `yaml:"filters"`
}

// LoadProfile reads a YAML-encoded compiler profile from path and returns
// the resulting Options, starting from DefaultOptions for any field the
// profile omits.
func LoadProfile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	o := DefaultOptions()
	if p.ESLevel != 0 {
		o.ESLevel = p.ESLevel
	}
	o.Strict = p.Strict
	if p.Comparison != "" {
		o.Comparison = Comparison(p.Comparison)
	}
	if p.Or != "" {
		o.Or = OrPolicy(p.Or)
	}
	if p.Truthy != "" {
		o.Truthy = TruthyMode(p.Truthy)
	}
	o.NullishToS = p.NullishToS
	if p.Module != "" {
		o.Module = ModuleKind(p.Module)
	}
	o.UnderscoredPrivate = p.UnderscoredPrivate
	if p.Width != 0 {
		o.Width = p.Width
	}
	if len(p.Filters) > 0 {
		o.FilterNames = p.Filters
	}
	return o, nil
}
