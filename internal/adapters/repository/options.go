package repository

// Option applies a configuration option to a file source.
type Option func(*sourceConfig)

type sourceConfig struct {
	name  string
	sheet string
}

// WithName overrides the source name used in errors, logs and metrics.
// The file path is used by default.
func WithName(name string) Option {
	return func(c *sourceConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithSheet selects the worksheet read from an XLSX workbook. The first
// sheet is used by default.
func WithSheet(sheet string) Option {
	return func(c *sourceConfig) {
		c.sheet = sheet
	}
}
