package varsub

var version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return version
}
