package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocPipeError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DocPipeError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file could not be parsed").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocPipeError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Generation errors

func ResolveFailed(project string, cause error) *DocPipeError {
	return Wrap(cause, CategoryResolve, SeverityFatal, "dependency resolution failed").
		WithContext("project", project)
}

func GeneratorFailed(project string, cause error) *DocPipeError {
	return Wrap(cause, CategoryGenerate, SeverityFatal, "documentation generator invocation failed").
		WithContext("project", project)
}

// GenerationReportedErrors is returned when every generator ran but at least one logged an error.
func GenerationReportedErrors(failedProjects []string) *DocPipeError {
	return New(CategoryGenerate, SeverityError, "documentation generation reported errors").
		WithContext("projects", failedProjects)
}

// Infrastructure errors

func HistoryError(operation string, cause error) *DocPipeError {
	return Wrap(cause, CategoryHistory, SeverityWarning, "run history operation failed").
		WithContext("operation", operation)
}

func NotifyError(subject string, cause error) *DocPipeError {
	return WrapRetryable(cause, CategoryNotify, SeverityWarning, "run notification failed").
		WithContext("subject", subject)
}

func InternalError(message string, cause error) *DocPipeError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
