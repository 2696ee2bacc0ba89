package core

import (
	"errors"
	"fmt"
)

// MissingDataFileError is returned during setup when a foundational
// object type's data file is absent. Non-foundational types are processed
// with zero records instead.
type MissingDataFileError struct {
	Type string
	Path string
}

func (e *MissingDataFileError) Error() string {
	return fmt.Sprintf("missing data file for %s: %s", e.Type, e.Path)
}

// DependencyError marks a record whose parent reference could not be
// resolved to a remote object. Expected for children of filtered parents;
// unexpected otherwise, but never fatal to the run.
type DependencyError struct {
	RefType string
	Name    string
	Reason  string
}

func (e *DependencyError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("unresolved %s reference: %s", e.RefType, e.Reason)
	}
	return fmt.Sprintf("unresolved %s reference %q: %s", e.RefType, e.Name, e.Reason)
}

// IsDependencyError reports whether err is a DependencyError.
func IsDependencyError(err error) bool {
	var depErr *DependencyError
	return errors.As(err, &depErr)
}

// SkipError marks a record that cannot be attempted at all (e.g. a cable
// with an unresolvable termination). Skipped records are reported
// separately from failures.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// IsSkip reports whether err is a SkipError.
func IsSkip(err error) bool {
	var skipErr *SkipError
	return errors.As(err, &skipErr)
}

// ErrAuthentication is the setup failure for rejected credentials.
var ErrAuthentication = errors.New("authentication with target NetBox failed")
