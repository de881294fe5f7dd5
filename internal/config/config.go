package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/telscan/internal/crawler"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "telscan"

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = crawler.DefaultTimeout

	// DefaultOutputDir is the directory the spreadsheet is written to.
	DefaultOutputDir = "output"

	// DefaultOutputFile is the spreadsheet file name.
	DefaultOutputFile = "phone_link_analysis.xlsx"

	// DefaultBatchSize is the number of pages audited concurrently.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies telscan in HTTP requests.
	DefaultUserAgent = crawler.DefaultUserAgent

	// DefaultMaxBodySize limits how much of a page is read.
	DefaultMaxBodySize = crawler.DefaultMaxBodySize
)

// Config holds all options of a run. It is populated from CLI flags and
// passed down explicitly.
type Config struct {
	// Timeout is the per-page fetch timeout.
	Timeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// BatchSize is the number of concurrent page audits.
	BatchSize int

	// ConfigFilePath is an explicit path to the site configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// SiteConfigs holds the loaded site configuration file, if any.
	SiteConfigs *File

	// JSONReport prints the audit as JSON instead of the plain listing.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the audit as Markdown instead of the plain listing.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// OutputDir is the directory of the spreadsheet. It is created on demand.
	OutputDir string

	// OutputFile is the spreadsheet file name inside OutputDir.
	OutputFile string

	// References are reference numbers given on the command line, in order.
	References []string

	// Targets are the URLs to audit. When empty, the URL is prompted for.
	Targets []string

	// NoInteractive disables all prompts.
	NoInteractive bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Zero selects DefaultMaxBodySize.
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		BatchSize:   DefaultBatchSize,
		OutputDir:   DefaultOutputDir,
		OutputFile:  DefaultOutputFile,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// OutputPath returns the full spreadsheet path.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

// SetOutputPath splits path into OutputDir and OutputFile.
// A bare file name is written to the current directory.
func (c *Config) SetOutputPath(path string) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	c.OutputDir = filepath.Clean(dir)
	c.OutputFile = file
}

// XDGConfigDir returns the XDG config directory for telscan.
// On Linux: ~/.config/telscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.OutputFile == "" {
		return ErrEmptyOutputFile
	}

	return nil
}
