package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Auction        AuctionConfig        `yaml:"auction"`
	Database       DatabaseConfig       `yaml:"database"`
	Server         ServerConfig         `yaml:"server"`
	Telemetry      TelemetryConfig      `yaml:"telemetry"`
	LeaderElection LeaderElectionConfig `yaml:"leader_election"`
	Discord        DiscordConfig        `yaml:"discord"`
}

// AuctionConfig is the construction surface of an auction: every policy and
// strategy is independently substitutable.
type AuctionConfig struct {
	Name          string `yaml:"name"`
	Teams         int    `yaml:"teams"`
	InitialBudget int    `yaml:"initial_budget"`

	// Ownership: "no-duplicates" or "max-copies".
	Ownership string `yaml:"ownership"`
	MaxCopies int    `yaml:"max_copies"`

	// Budget: "limited" or "unlimited".
	Budget string `yaml:"budget"`

	// TeamBuilding: "fixed-max", "min-max" or "free".
	TeamBuilding string         `yaml:"team_building"`
	RoleSlots    map[string]int `yaml:"role_slots"`
	RoleMin      map[string]int `yaml:"role_min"`

	// Market: "unique" or "multi-copy".
	Market       string `yaml:"market"`
	MarketCopies int    `yaml:"market_copies"`

	// Calling: "sequential" or "broadcast-race".
	Calling     string `yaml:"calling"`
	Direction   string `yaml:"direction"` // "clockwise" or "counter"
	RandomStart bool   `yaml:"random_start"`

	// Bidding: "free", "closed-sealed" or "raise-or-pass".
	Bidding    string        `yaml:"bidding"`
	MinRaise   int           `yaml:"min_raise"`
	AskTimeout time.Duration `yaml:"ask_timeout"`

	// Unsold: "return" or "discard".
	Unsold string `yaml:"unsold"`

	// RoleOrder fixes the role-sequential calling order; empty means
	// goalkeeper, defender, midfielder, forward.
	RoleOrder []string `yaml:"role_order"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Driver   string `yaml:"driver"` // "sqlx" or "dbsql"
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	Insecure       bool   `yaml:"insecure"`
}

// LeaderElectionConfig holds Kubernetes leader election settings.
type LeaderElectionConfig struct {
	Enabled        bool          `yaml:"enabled"`
	LeaseName      string        `yaml:"lease_name"`
	LeaseNamespace string        `yaml:"lease_namespace"`
	LeaseDuration  time.Duration `yaml:"lease_duration"`
	RenewDeadline  time.Duration `yaml:"renew_deadline"`
	RetryPeriod    time.Duration `yaml:"retry_period"`
}

// DiscordConfig holds the optional league-channel announcer settings.
type DiscordConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

// Load reads a YAML configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{
		Auction: AuctionConfig{
			Name:          "fantadraft",
			Teams:         8,
			InitialBudget: 500,
			Ownership:     "no-duplicates",
			Budget:        "limited",
			TeamBuilding:  "fixed-max",
			RoleSlots: map[string]int{
				"goalkeeper": 3,
				"defender":   8,
				"midfielder": 8,
				"forward":    6,
			},
			Market:    "unique",
			Calling:   "sequential",
			Direction: "clockwise",
			Bidding:   "free",
			MinRaise:  1,
			Unsold:    "return",
		},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
			Driver:  "sqlx",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "fantadraft",
			ServiceVersion: "0.1.0",
		},
		LeaderElection: LeaderElectionConfig{
			Enabled:        false,
			LeaseName:      "fantadraft-leader",
			LeaseNamespace: "default",
			LeaseDuration:  15 * time.Second,
			RenewDeadline:  10 * time.Second,
			RetryPeriod:    2 * time.Second,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlx", "dbsql":
		// valid
	default:
		return fmt.Errorf("unsupported database driver %q: must be \"sqlx\" or \"dbsql\"", c.Database.Driver)
	}
	return c.Auction.Validate()
}

// Validate checks that every enumerated auction option has a known value.
func (a AuctionConfig) Validate() error {
	if a.Teams < 2 {
		return fmt.Errorf("auction needs at least 2 teams, got %d", a.Teams)
	}
	switch a.Ownership {
	case "no-duplicates":
	case "max-copies":
		if a.MaxCopies < 1 {
			return fmt.Errorf("max-copies ownership requires max_copies >= 1, got %d", a.MaxCopies)
		}
	default:
		return fmt.Errorf("unknown ownership policy %q", a.Ownership)
	}
	switch a.Budget {
	case "limited", "unlimited":
	default:
		return fmt.Errorf("unknown budget strategy %q", a.Budget)
	}
	switch a.TeamBuilding {
	case "fixed-max", "min-max", "free":
	default:
		return fmt.Errorf("unknown team building strategy %q", a.TeamBuilding)
	}
	switch a.Market {
	case "unique":
	case "multi-copy":
		if a.MarketCopies < 1 {
			return fmt.Errorf("multi-copy market requires market_copies >= 1, got %d", a.MarketCopies)
		}
	default:
		return fmt.Errorf("unknown market rule %q", a.Market)
	}
	switch a.Calling {
	case "sequential":
		switch a.Direction {
		case "clockwise", "counter":
		default:
			return fmt.Errorf("unknown calling direction %q", a.Direction)
		}
	case "broadcast-race":
	default:
		return fmt.Errorf("unknown calling strategy %q", a.Calling)
	}
	switch a.Bidding {
	case "free", "closed-sealed", "raise-or-pass":
	default:
		return fmt.Errorf("unknown bidding strategy %q", a.Bidding)
	}
	switch a.Unsold {
	case "return", "discard":
	default:
		return fmt.Errorf("unknown unsold disposition %q", a.Unsold)
	}
	return nil
}
