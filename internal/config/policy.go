package config

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed policy/policy.yaml
var policyFiles embed.FS

// Policy holds fixed server-side behavior knobs: the upload size ceiling and
// the share-link lifetime. Neither is user-settable through the API surface.
type Policy struct {
	Upload struct {
		MaxBytes int64 `yaml:"max_bytes"`
	} `yaml:"upload"`
	ShareLinks struct {
		TTL time.Duration `yaml:"-"`

		RawTTL string `yaml:"ttl"`
	} `yaml:"share_links"`
}

// LoadPolicy parses the embedded policy file.
func LoadPolicy() (*Policy, error) {
	data, err := policyFiles.ReadFile("policy/policy.yaml")
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal policy file: %w", err)
	}

	if p.Upload.MaxBytes <= 0 {
		return nil, fmt.Errorf("policy upload.max_bytes must be positive, got %d", p.Upload.MaxBytes)
	}

	ttl, err := time.ParseDuration(p.ShareLinks.RawTTL)
	if err != nil {
		return nil, fmt.Errorf("parse policy share_links.ttl: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("policy share_links.ttl must be positive, got %s", ttl)
	}
	p.ShareLinks.TTL = ttl

	return &p, nil
}
