package migrate

import (
	"github.com/kyson-dev/profile-upgrader/internal/legacy"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
)

// DecodeDocument decodes a stored profile recorded at version. An empty
// version is inferred from the document's shape.
func DecodeDocument(data []byte, version string) (Document, error) {
	if version == "" {
		detected, err := profile.DetectVersion(data)
		if err != nil {
			return Document{}, err
		}
		version = detected
	}

	sv, err := ParseSchemaVersion(version)
	if err != nil {
		return Document{}, err
	}

	doc := Document{Version: version}
	switch sv.Schema() {
	case profile.VersionLegacy:
		doc.Legacy, err = legacy.Decode(data)
	case profile.VersionV190:
		doc.V190, err = profile.DecodeV190(data)
	default:
		doc.Current, err = profile.DecodeCurrent(data)
	}
	return doc, err
}
