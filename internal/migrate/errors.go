package migrate

import "errors"

// ErrUnsupportedVersion is returned when a document cannot be placed on the version chain.
var ErrUnsupportedVersion = errors.New("unsupported profile version")

// MigrationError reports the step and entity a migration pass failed on.
// The input document is left untouched when it is returned.
type MigrationError struct {
	Step   string
	Entity string
	Err    error
}

func (e *MigrationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "migration to " + e.Step + " failed"
	if e.Entity != "" {
		msg += " at " + e.Entity
	}
	return msg + ": " + e.Err.Error()
}

func (e *MigrationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
