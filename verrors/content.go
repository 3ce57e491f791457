package verrors

// InvalidInput reports a malformed argument: an empty path, an
// unparsable identity, a definition field that failed validation.
func InvalidInput(cause error, format string, args ...any) error {
	return newError(KindInvalidInput, cause, format, args...)
}

// NotFound reports a lookup that resolved to nothing: an unknown
// content directory label, a path with no resolution.
func NotFound(cause error, format string, args ...any) error {
	return newError(KindNotFound, cause, format, args...)
}

// DependencyViolation reports an enable/disable request that would
// leave a prerequisite relationship unsatisfied.
func DependencyViolation(cause error, format string, args ...any) error {
	return newError(KindDependencyViolation, cause, format, args...)
}

// FilesystemError wraps an I/O failure (read, write, stat, walk) that
// a caller needs to distinguish from a purely logical error.
func FilesystemError(cause error, format string, args ...any) error {
	return newError(KindFilesystemError, cause, format, args...)
}

// PermissionDenied reports a write attempted against a node whose
// chain does not grant write permission.
func PermissionDenied(cause error, format string, args ...any) error {
	return newError(KindPermissionDenied, cause, format, args...)
}

// Duplicate reports an attempt to register an identity, label, or
// explicit path that is already claimed.
func Duplicate(cause error, format string, args ...any) error {
	return newError(KindDuplicate, cause, format, args...)
}
