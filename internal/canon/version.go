package canon

// Version constants.
const (
	// FormatVersion is the version of the persisted document shape.
	FormatVersion = "1"

	// AppVersion is the thingstodo release version.
	AppVersion = "0.1.0"
)
