package dashconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file and returns the validated Config with its raw bytes.
// Unknown fields are rejected (KnownFields).
func Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, data, err
	}
	return cfg, data, nil
}

// Parse decodes YAML bytes on top of Default() and validates the result.
// Sections missing from the document keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 오타/미사용 필드 즉시 실패
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default() when path is empty
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, _, err := Load(path)
	return cfg, err
}

// Hash generates a SHA256 hash of the canonical JSON form of cfg
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// NewStamp creates the audit stamp attached to API responses
func NewStamp(cfg *Config) (Stamp, error) {
	hash, err := Hash(cfg)
	if err != nil {
		return Stamp{}, err
	}

	return Stamp{
		ConfigHash:  hash,
		DashboardID: cfg.Meta.DashboardID,
		Version:     cfg.Meta.Version,
		LoadedAt:    time.Now(),
	}, nil
}
