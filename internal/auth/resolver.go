// Package auth provides a generic credential resolution framework.
// It supports multiple credential sources with configurable priority order.
package auth

import (
	"fmt"
	"os"
	"strings"
)

// Source indicates where a credential was found
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
	SourceNone   Source = "none"
)

// Result contains the resolved credential and its source
type Result struct {
	Token  string
	Source Source
	Name   string // The specific source name (e.g., "GITHUB_TOKEN")
}

// tokenProvider is a function that attempts to provide a credential.
// Returns the value and source name if found, or empty string if not
// available. Returns an error only for unexpected failures.
type tokenProvider func() (token string, sourceName string, err error)

// Resolver resolves credentials from multiple sources in priority order
type Resolver struct {
	providers   []tokenProvider
	serviceName string
	helpMessage string
}

// NewResolver creates a new credential resolver for a service
func NewResolver(serviceName string) *Resolver {
	return &Resolver{
		serviceName: serviceName,
		providers:   make([]tokenProvider, 0),
	}
}

// WithFlag adds a flag-provided credential as a source (highest priority).
// The flag value is evaluated at resolution time.
func (r *Resolver) WithFlag(flagValue *string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if flagValue != nil && *flagValue != "" {
			return *flagValue, "flag", nil
		}
		return "", "", nil
	})
	return r
}

// WithEnv adds an environment variable as a credential source
func (r *Resolver) WithEnv(envVar string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if token := os.Getenv(envVar); token != "" {
			return token, envVar, nil
		}
		return "", "", nil
	})
	return r
}

// WithEnvs adds multiple environment variables as sources (checked in order)
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		r.WithEnv(envVar)
	}
	return r
}

// WithValue adds an already-known value (e.g., from loaded config)
func (r *Resolver) WithValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if value != "" {
			return value, "config", nil
		}
		return "", "", nil
	})
	return r
}

// WithHelpMessage sets the help message shown when no credential is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg
	return r
}

// Resolve attempts to find a credential from all configured sources in
// order. Returns the first value found, or an error if none is available.
func (r *Resolver) Resolve() (*Result, error) {
	for _, provider := range r.providers {
		token, sourceName, err := provider()
		if err != nil {
			return nil, fmt.Errorf("credential provider error: %w", err)
		}
		if token != "" {
			return &Result{
				Token:  token,
				Source: categorizeSource(sourceName),
				Name:   sourceName,
			}, nil
		}
	}

	if r.helpMessage != "" {
		return nil, fmt.Errorf("%s credential required\n\n%s", r.serviceName, r.helpMessage)
	}
	return nil, fmt.Errorf("%s credential required", r.serviceName)
}

// categorizeSource determines the Source category from a source name
func categorizeSource(name string) Source {
	switch {
	case name == "flag":
		return SourceFlag
	case name == "config":
		return SourceConfig
	case strings.Contains(name, "_") || strings.Contains(name, "TOKEN") || strings.Contains(name, "KEY"):
		return SourceEnv
	default:
		return SourceNone
	}
}
