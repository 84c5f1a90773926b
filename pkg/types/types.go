package types

// Arguments is a struct to hold all the settings from the CLI
type Arguments struct {
	Sources    []string `json:"source"`
	Dest       string   `json:"dest"`
	DataFiles  []string `json:"data-source"`
	SetData    []string `json:"set"`
	Pattern    string   `json:"variable-pattern"`
	SchemaFile string   `json:"schema"`
	LogLevel   string   `json:"log-level"`

	// InlineData only comes from an options file; flags provide --set instead.
	InlineData map[string]any `json:"-"`

	ConfigFile string `json:"-"`
	Version    bool   `json:"-"`
}

// NewCLISettings creates and returns a new, empty Arguments struct.
func NewCLISettings() *Arguments {
	return &Arguments{}
}
