package port

// DockSerializer turns values into an opaque string payload and back.
// The concrete format is an infrastructure concern.
type DockSerializer interface {
	// Format names the payload format, e.g. "json" or "yaml".
	Format() string
	Serialize(v any) (string, error)
	Deserialize(data string, v any) error
}
