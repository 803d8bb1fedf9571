package awkish

// Config holds configuration options for an Awk engine.
type Config struct {
	// FS is the field splitter used to derive fields from each line.
	// If nil, runs of spaces are treated as separators (Whitespace).
	FS Splitter

	// RS is the input record separator.
	// When empty (default), records are separated by "\n" and a
	// trailing "\r" is stripped together with it, so records read the
	// same for LF and CRLF input. When non-empty, records are
	// separated by each occurrence of the exact string.
	RS string

	// OFS is the output field separator (default: " ").
	// Used by Record.Print when printing multiple values.
	OFS string

	// ORS is the output record separator (default: "\n").
	// Appended after each Record.Print call.
	ORS string

	// Vars contains pre-defined extension values.
	// These are visible to every hook, condition and action by name,
	// and are applied before begin-job hooks run.
	// Example: map[string]any{"threshold": 100, "prefix": "LOG:"}
	Vars map[string]any
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.FS == nil {
		c.FS = Whitespace()
	}
	if c.OFS == "" {
		c.OFS = " "
	}
	if c.ORS == "" {
		c.ORS = "\n"
	}
}
