package errors

import "strings"

// PermissionDependencyError carries the full list of dependency
// violations found in a permission matrix so callers can present every
// problem at once.
type PermissionDependencyError struct {
	Violations []string
}

func (e *PermissionDependencyError) Error() string {
	return ErrPermissionDependency.Error() + ": " + strings.Join(e.Violations, "; ")
}

// Is lets errors.Is match against the ErrPermissionDependency sentinel.
func (e *PermissionDependencyError) Is(target error) bool {
	return target == ErrPermissionDependency
}
