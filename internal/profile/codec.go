package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats understood by Encode.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Encode serializes a document. Field order follows the struct definitions,
// so the same document always encodes to the same bytes.
func Encode(doc any, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml", "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal profile: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported profile format: %s", format)
	}
}

// DecodeV190 parses a 1.9.0 document (YAML or JSON).
func DecodeV190(data []byte) (*ProfileV190, error) {
	var p ProfileV190
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse 1.9.0 profile: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("failed to parse 1.9.0 profile: missing id")
	}
	return &p, nil
}

// DecodeCurrent parses a current document (YAML or JSON).
func DecodeCurrent(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("failed to parse profile: missing id")
	}
	return &p, nil
}

// DetectVersion guesses the schema generation of a stored profile from its
// shape, for profiles saved without a version tag.
func DetectVersion(data []byte) (string, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return "", fmt.Errorf("failed to parse profile: %w", err)
	}
	if root == nil {
		return "", fmt.Errorf("empty profile")
	}

	// 1.8.x 的 key 都是 camelCase 的 *Config
	for _, key := range []string{"generalConfig", "proxyGroupsConfig", "rulesConfig"} {
		if _, ok := root[key]; ok {
			return VersionLegacy, nil
		}
	}

	dns, ok := root["dns"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("unrecognized profile shape: no dns section")
	}
	if _, ok := dns["fakeip"]; ok {
		return VersionV190, nil
	}
	if servers, ok := dns["servers"].([]any); ok {
		for _, s := range servers {
			server, ok := s.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := server["address"]; ok {
				return VersionV190, nil
			}
		}
	}
	return VersionCurrent, nil
}
