package model

import (
	"os"
	"path/filepath"
	"time"
)

// Default column names of the noise exposure dataset
const (
	DefaultLocationColumn   = "Location/Agglomeration"
	DefaultPopulationColumn = "AgglomerationPopulation"
	DefaultExcludeLocation  = "Major sources (outside agglomerations)"
	DefaultNotApplicable    = "n/a"
)

// DefaultExposureColumns are the Lden >= 75dB counts per source category
var DefaultExposureColumns = []string{
	"Industry_Pop_Lden>=75dB",
	"Railways_Pop_Lden>=75dB",
	"Road_Pop_Lden>=75dB",
}

// Config is the complete noisepop configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Columns ColumnsConfig `mapstructure:"columns" yaml:"columns"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// SourceConfig locates the dataset
type SourceConfig struct {
	URL   string `mapstructure:"url" yaml:"url"`
	Comma string `mapstructure:"comma" yaml:"comma"` // Single-character field separator
}

// HTTPConfig controls the fetch stage
type HTTPConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	HTTPProxy         string        `mapstructure:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy        string        `mapstructure:"https_proxy" yaml:"https_proxy"`
	RespectRobots     bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// CacheConfig controls caching of fetched bodies
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Dir     string        `mapstructure:"dir" yaml:"dir"` // Empty keeps the cache in memory only
}

// ColumnsConfig names the columns the cleaner and summary engine rely on
type ColumnsConfig struct {
	Location        string   `mapstructure:"location" yaml:"location"`
	Population      string   `mapstructure:"population" yaml:"population"`
	ExcludeLocation string   `mapstructure:"exclude_location" yaml:"exclude_location"`
	NotApplicable   string   `mapstructure:"not_applicable" yaml:"not_applicable"`
	Exposure        []string `mapstructure:"exposure" yaml:"exposure"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `mapstructure:"verbose" yaml:"verbose"`
	IncludeFooter bool `mapstructure:"include_footer" yaml:"include_footer"`
}

// DefaultCacheDir is noisepop's directory under the user cache dir, or empty
// (memory only) when the platform has none
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "noisepop")
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	exposure := make([]string, len(DefaultExposureColumns))
	copy(exposure, DefaultExposureColumns)

	return &Config{
		Source: SourceConfig{
			Comma: ",",
		},
		HTTP: HTTPConfig{
			Timeout:           time.Minute,
			UserAgent:         "noisepop/0.1 (+https://github.com/ppiankov/noisepop)",
			MaxBodyBytes:      20_000_000,
			RespectRobots:     true,
			RequestsPerSecond: 1,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
			Dir:     DefaultCacheDir(),
		},
		Columns: ColumnsConfig{
			Location:        DefaultLocationColumn,
			Population:      DefaultPopulationColumn,
			ExcludeLocation: DefaultExcludeLocation,
			NotApplicable:   DefaultNotApplicable,
			Exposure:        exposure,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
