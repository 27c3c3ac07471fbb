package registry

import (
	"fmt"

	"github.com/drewdunne/nlibot/internal/config"
	"github.com/drewdunne/nlibot/internal/provider"
	"github.com/drewdunne/nlibot/internal/provider/github"
	"github.com/drewdunne/nlibot/internal/provider/gitlab"
)

// Registry manages provider instances.
type Registry struct {
	providers map[string]provider.Provider
}

// New creates a new provider registry from config. It fails when a
// configured provider cannot be built.
func New(cfg *config.Config) (*Registry, error) {
	r := &Registry{
		providers: make(map[string]provider.Provider),
	}

	if gh := cfg.Providers.GitHub; gh.Token != "" {
		var opts []github.Option
		if gh.BaseURL != "" {
			opts = append(opts, github.WithBaseURL(gh.BaseURL))
		}
		p, err := github.New(gh.Token, opts...)
		if err != nil {
			return nil, fmt.Errorf("providers.github: %w", err)
		}
		r.providers["github"] = p
	}

	if gl := cfg.Providers.GitLab; gl.Token != "" {
		var opts []gitlab.Option
		if gl.BaseURL != "" {
			opts = append(opts, gitlab.WithBaseURL(gl.BaseURL))
		}
		p, err := gitlab.New(gl.Token, opts...)
		if err != nil {
			return nil, fmt.Errorf("providers.gitlab: %w", err)
		}
		r.providers["gitlab"] = p
	}

	return r, nil
}

// Add registers or replaces a provider under its name.
func (r *Registry) Add(p provider.Provider) {
	r.providers[p.Name()] = p
}

// Get returns the provider for the given name, or nil if not configured.
func (r *Registry) Get(name string) provider.Provider {
	return r.providers[name]
}

// List returns all configured provider names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
