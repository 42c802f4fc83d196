package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain.
const (
	// FieldRequestID is the HTTP request ID (UUID).
	FieldRequestID = "request_id"

	// FieldBuildID is the profile build run ID.
	FieldBuildID = "build_id"

	// FieldProfileID is the profile identity.
	FieldProfileID = "profile_id"

	// FieldComponent is the component/module name.
	FieldComponent = "component"

	// FieldSource is the source kind identifier.
	FieldSource = "source"
)

// Standard metric fields used for aggregation and alerting.
const (
	// FieldDurationMs is the execution duration in milliseconds.
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field.
	FieldCount = "count"

	// FieldStatus is the operation status.
	FieldStatus = "status"
)
