package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile is one named profile from the shared AWS files.
type Profile struct {
	Name   string
	Region string
	Source string
}

// SharedFiles returns the shared credentials and config file paths, honoring
// AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE.
func SharedFiles() (credentials, cfg string) {
	home, _ := os.UserHomeDir()

	credentials = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentials == "" {
		credentials = filepath.Join(home, ".aws", "credentials")
	}
	cfg = os.Getenv("AWS_CONFIG_FILE")
	if cfg == "" {
		cfg = filepath.Join(home, ".aws", "config")
	}
	return credentials, cfg
}

// ProfileRegistry lists the profiles of the shared AWS files.
type ProfileRegistry struct {
	profiles map[string]*Profile
	files    int
}

// NewProfileRegistry loads the given credentials and config files. Missing
// files are skipped.
func NewProfileRegistry(credentialsPath, configPath string) (*ProfileRegistry, error) {
	r := &ProfileRegistry{profiles: map[string]*Profile{}}

	if err := r.load(credentialsPath, false); err != nil {
		return nil, err
	}
	if err := r.load(configPath, true); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRegistry) load(path string, isConfig bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	r.files++

	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}

		name := section.Name()
		if isConfig {
			// the config file prefixes every profile except default
			if strings.HasPrefix(name, "sso-session ") || strings.HasPrefix(name, "services ") {
				continue
			}
			name = strings.TrimSpace(strings.TrimPrefix(name, "profile "))
		}
		if name == ini.DefaultSection {
			continue
		}

		profile, ok := r.profiles[name]
		if !ok {
			profile = &Profile{Name: name, Source: path}
			r.profiles[name] = profile
		}
		if region := section.Key("region").String(); region != "" {
			profile.Region = region
		}
	}
	return nil
}

// Profiles returns every profile sorted by name.
func (r *ProfileRegistry) Profiles() []Profile {
	profiles := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Validate reports an *Error when name is not a known profile. Nothing is
// checked when no shared file exists, since credentials may come from the
// environment.
func (r *ProfileRegistry) Validate(name string) error {
	if name == "" || r.files == 0 {
		return nil
	}
	if _, ok := r.profiles[name]; ok {
		return nil
	}
	return &Error{Path: "profile " + name, Err: errors.New("not found in the shared AWS credentials or config files")}
}
