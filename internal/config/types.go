package config

// Config represents the kernel's YAML configuration file.
type Config struct {
	// LogLevel is the minimum level emitted: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// SeqURL is an optional Seq ingestion endpoint. When set, log records
	// are shipped there in addition to stderr.
	SeqURL string `yaml:"seq_url"`

	// DefaultEngine names the script engine used by execute commands that
	// do not pick one.
	DefaultEngine string `yaml:"default_engine"`
}
