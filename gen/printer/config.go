package printer

// Config controls the formatting of printed source files.
type Config struct {
	// IndentStyle is "space" or "tab". Default: "space".
	IndentStyle string

	// IndentSize is the number of spaces per indent level when IndentStyle
	// is "space". Default: 2.
	IndentSize int

	// LineEnding is "lf" or "crlf". Default: "lf".
	LineEnding string

	// TrailingNewline ensures the file ends with a line ending.
	TrailingNewline bool

	// Quote is the string literal quote style, "double" or "single".
	// Default: "double".
	Quote string

	// Frontmatter is raw text emitted at the top of every file, ahead of
	// the file header comment.
	Frontmatter string

	// MaxInlineWidth is the widest object or array literal kept on one
	// line. Wider literals print one element per line. Default: 72.
	MaxInlineWidth int

	// EmitComments controls doc comments on classes, members and functions.
	EmitComments bool
}

// DefaultConfig returns the formatting used for generated projects.
func DefaultConfig() Config {
	return Config{
		IndentStyle:     "space",
		IndentSize:      2,
		LineEnding:      "lf",
		TrailingNewline: true,
		Quote:           "double",
		MaxInlineWidth:  72,
		EmitComments:    true,
	}
}

// applyConfigDefaults fills unset fields without mutating the input.
func applyConfigDefaults(cfg Config) Config {
	if cfg.IndentStyle == "" {
		cfg.IndentStyle = "space"
	}
	if cfg.IndentSize <= 0 {
		cfg.IndentSize = 2
	}
	if cfg.LineEnding == "" {
		cfg.LineEnding = "lf"
	}
	if cfg.Quote == "" {
		cfg.Quote = "double"
	}
	if cfg.MaxInlineWidth <= 0 {
		cfg.MaxInlineWidth = 72
	}
	return cfg
}
