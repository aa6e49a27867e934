package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// DefaultProfiles returns the built-in profiles file, as written by `lyla init`.
func DefaultProfiles() []byte {
	return defaultProfiles
}

// Profile is the prompt-side configuration of one conversation: the template
// the context and question are filled into, the speaker labels used when the
// transcript is serialized and the reply substituted when the model fails.
type Profile struct {
	Name           string `yaml:"-"`
	Title          string `yaml:"title"`
	Template       string `yaml:"template"`
	UserLabel      string `yaml:"user_label"`
	AssistantLabel string `yaml:"assistant_label"`
	Fallback       string `yaml:"fallback"`
	Greeting       string `yaml:"greeting"`
	Placeholder    string `yaml:"placeholder"`
	// Prompt is the terminal input prompt, e.g. "You: ".
	Prompt string `yaml:"prompt"`
}

func (p Profile) Validate() error {
	var errs []error
	if !strings.Contains(p.Template, "{question}") {
		errs = append(errs, errors.New("template has no {question} placeholder"))
	}
	if strings.TrimSpace(p.UserLabel) == "" {
		errs = append(errs, errors.New("user_label is empty"))
	}
	if strings.TrimSpace(p.AssistantLabel) == "" {
		errs = append(errs, errors.New("assistant_label is empty"))
	}
	if strings.TrimSpace(p.Fallback) == "" {
		errs = append(errs, errors.New("fallback is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("profile %q: %w", p.Name, errors.Join(errs...))
	}
	return nil
}

// merge overlays the non-empty fields of o onto p.
func (p Profile) merge(o Profile) Profile {
	pick := func(base, override string) string {
		if override != "" {
			return override
		}
		return base
	}
	p.Title = pick(p.Title, o.Title)
	p.Template = pick(p.Template, o.Template)
	p.UserLabel = pick(p.UserLabel, o.UserLabel)
	p.AssistantLabel = pick(p.AssistantLabel, o.AssistantLabel)
	p.Fallback = pick(p.Fallback, o.Fallback)
	p.Greeting = pick(p.Greeting, o.Greeting)
	p.Placeholder = pick(p.Placeholder, o.Placeholder)
	p.Prompt = pick(p.Prompt, o.Prompt)
	return p
}

type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

type Profiles map[string]Profile

// LoadProfiles returns the built-in profiles overlaid with the ones found at
// path. A missing file is not an error.
func LoadProfiles(path string) (Profiles, error) {
	profiles, err := parseProfiles(defaultProfiles)
	if err != nil {
		return nil, fmt.Errorf("parse built-in profiles: %w", err)
	}

	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return profiles, nil
		}
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	overrides, err := parseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for name, o := range overrides {
		profiles[name] = profiles[name].merge(o)
	}

	for name, p := range profiles {
		p.Name = name
		profiles[name] = p
	}
	return profiles, nil
}

func parseProfiles(data []byte) (Profiles, error) {
	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	profiles := make(Profiles, len(f.Profiles))
	for name, p := range f.Profiles {
		p.Name = name
		profiles[name] = p
	}
	return profiles, nil
}

// Get returns a validated profile by name.
func (ps Profiles) Get(name string) (Profile, error) {
	p, ok := ps[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(ps.Names(), ", "))
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
