package errors

import "errors"

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrOrganizationConflict    = errors.New("organization conflict")
	ErrInvalidOrganizationData = errors.New("invalid organization data")

	ErrMemberNotFound    = errors.New("member not found")
	ErrMemberConflict    = errors.New("member conflict")
	ErrInvalidMemberData = errors.New("invalid member data")

	ErrPermissionSetNotFound    = errors.New("permission set not found")
	ErrPermissionSetConflict    = errors.New("permission set conflict")
	ErrInvalidPermissionSetData = errors.New("invalid permission set data")
	ErrPermissionDependency     = errors.New("permission set violates dependency constraints")

	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectConflict    = errors.New("project conflict")
	ErrInvalidProjectData = errors.New("invalid project data")

	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidTaskData = errors.New("invalid task data")

	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInternalServer    = errors.New("internal server error")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)
