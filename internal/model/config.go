package model

import "time"

// Config is the complete claimcheck configuration.
// Membership and check parameters are injected here rather than living as
// module-level constants, so the engine can be pointed at any project.
// Fields carry both yaml tags (config rendering) and mapstructure tags
// (viper decoding); the two must name identical keys.
type Config struct {
	Load         LoadConfig         `yaml:"load" mapstructure:"load"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Resolution   ResolutionConfig   `yaml:"resolution" mapstructure:"resolution"`
	Checks       ChecksConfig       `yaml:"checks" mapstructure:"checks"`
}

// LoadConfig controls artifact content loading. The timeout applies only
// to locating and reading content; checks themselves are bounded by
// construction and carry no timeout.
type LoadConfig struct {
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBytes int64         `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// CacheConfig controls the artifact content cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls per-artifact parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles artifact content reads per root directory.
// Artifact roots may sit on network mounts; unthrottled parallel reads
// have knocked shares over in practice.
type RateLimitingConfig struct {
	ReadsPerSecond float64 `yaml:"reads_per_second" mapstructure:"reads_per_second"`
	BurstSize      int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// ResolutionConfig parameterizes claim target resolution
type ResolutionConfig struct {
	// WildcardPhrases are target phrases meaning "applies to all artifacts"
	WildcardPhrases []string `yaml:"wildcard_phrases" mapstructure:"wildcard_phrases"`
	// Groups are named artifact memberships referenced by claim targets
	// (e.g., "every artifact that calls the external model service")
	Groups []MembershipGroup `yaml:"groups" mapstructure:"groups"`
}

// MembershipGroup names a set of artifacts and the target phrases that
// resolve to it
type MembershipGroup struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Phrases   []string `yaml:"phrases" mapstructure:"phrases"`
	Artifacts []string `yaml:"artifacts" mapstructure:"artifacts"`
}

// ChecksConfig parameterizes the universal checks
type ChecksConfig struct {
	// SanctionedBackend is the only processing backend artifacts may use
	SanctionedBackend string `yaml:"sanctioned_backend" mapstructure:"sanctioned_backend"`
	// DisallowedBackends are alternative backends flagged on sight
	DisallowedBackends []string `yaml:"disallowed_backends" mapstructure:"disallowed_backends"`
	// SingularRoutines must be defined at most once per artifact
	SingularRoutines []string `yaml:"singular_routines" mapstructure:"singular_routines"`
	// ResponseVariables are names treated as possibly-absent response
	// structures for the unguarded access check
	ResponseVariables []string `yaml:"response_variables" mapstructure:"response_variables"`
}

// DefaultConfig returns the standard claimcheck configuration
func DefaultConfig() *Config {
	return &Config{
		Load: LoadConfig{
			Timeout:  10 * time.Second,
			MaxBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			ReadsPerSecond: 200,
			BurstSize:      50,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Resolution: ResolutionConfig{
			WildcardPhrases: []string{
				"all files",
				"every file",
				"all artifacts",
				"every artifact",
				"entire codebase",
				"across the board",
				"everywhere",
			},
			Groups: []MembershipGroup{
				{
					Name: "model-service-callers",
					Phrases: []string{
						"external model service",
						"calls the model service",
						"invokes the model service",
						"llm service",
					},
					Artifacts: []string{},
				},
			},
		},
		Checks: ChecksConfig{
			SanctionedBackend:  "",
			DisallowedBackends: []string{},
			SingularRoutines:   []string{},
			ResponseVariables:  []string{"response", "resp", "reply"},
		},
	}
}
