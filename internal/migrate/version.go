package migrate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kyson-dev/profile-upgrader/internal/profile"
)

// SchemaVersion is a profile's position on the version chain as
// major.minor.patch. Missing components are zero.
type SchemaVersion [3]int

// ParseSchemaVersion accepts "1.9", "1.9.4" or "v1.9.4". Anything beyond the
// patch component is ignored.
func ParseSchemaVersion(v string) (SchemaVersion, error) {
	var out SchemaVersion
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "v"))
	if rest == "" {
		return out, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}

	for i := range out {
		var part string
		part, rest, _ = strings.Cut(rest, ".")
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return SchemaVersion{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
		}
		out[i] = n
		if rest == "" {
			break
		}
	}
	return out, nil
}

func mustSchemaVersion(v string) SchemaVersion {
	sv, err := ParseSchemaVersion(v)
	if err != nil {
		panic(err)
	}
	return sv
}

var (
	schemaV190    = mustSchemaVersion(profile.VersionV190)
	schemaCurrent = mustSchemaVersion(profile.VersionCurrent)
)

// Before reports whether v is older than other.
func (v SchemaVersion) Before(other SchemaVersion) bool {
	return slices.Compare(v[:], other[:]) < 0
}

// Needs reports whether a document at v still has to go through step.
func (v SchemaVersion) Needs(step Step) (bool, error) {
	target, err := ParseSchemaVersion(step.Target())
	if err != nil {
		return false, err
	}
	return v.Before(target), nil
}

// Schema returns the document shape a profile at v is stored in. Versions
// newer than the current schema are read as current.
func (v SchemaVersion) Schema() string {
	switch {
	case v.Before(schemaV190):
		return profile.VersionLegacy
	case v.Before(schemaCurrent):
		return profile.VersionV190
	default:
		return profile.VersionCurrent
	}
}

func (v SchemaVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}
