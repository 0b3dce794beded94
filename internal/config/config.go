package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Disidente87/vendor-wars-sub003/internal/reward"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
	// Timezone is the reference timezone used to derive calendar days for
	// vote caps and streaks.
	Timezone string `mapstructure:"timezone"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds Redis configuration for the streak cache
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// ChainConfig holds Ethereum chain and token contract configuration
type ChainConfig struct {
	RPCURL             string        `mapstructure:"rpc_url"`
	ChainID            int64         `mapstructure:"chain_id"`
	TokenContract      string        `mapstructure:"token_contract"`
	WalletPrivateKey   string        `mapstructure:"wallet_private_key"`
	GasLimit           uint64        `mapstructure:"gas_limit"`
	ConfirmationDepth  uint64        `mapstructure:"confirmation_depth"`
	ConfirmationWait   time.Duration `mapstructure:"confirmation_wait"`
	ConfirmationPolls  int           `mapstructure:"confirmation_polls"`
}

// StreakTierConfig is one streak multiplier step: votes on MinDays or more
// consecutive days earn MultiplierBps basis points on the base amount.
type StreakTierConfig struct {
	MinDays       int   `mapstructure:"min_days"`
	MultiplierBps int64 `mapstructure:"multiplier_bps"`
}

// RewardConfig holds the reward schedule configuration
type RewardConfig struct {
	// BaseTiers are per-ordinal token amounts for the 1st, 2nd and 3rd vote
	// of the day for the same vendor. The last tier applies to any overflow.
	BaseTiers []int64 `mapstructure:"base_tiers"`
	// StreakTiers overrides the streak multiplier table, sorted by min_days
	// ascending. Empty keeps the built-in table.
	StreakTiers []StreakTierConfig `mapstructure:"streak_tiers"`
	// TerritoryBonus is the flat token amount added when a vote shifts zone control.
	TerritoryBonus int64 `mapstructure:"territory_bonus"`
	// DailyVoteLimit caps same-voter same-vendor votes per calendar day.
	DailyVoteLimit int `mapstructure:"daily_vote_limit"`
}

// Schedule builds the reward schedule by overlaying configured values on the
// built-in defaults. Returns an error when the result is inconsistent.
func (c *RewardConfig) Schedule() (reward.Schedule, error) {
	s := reward.DefaultSchedule()
	if len(c.BaseTiers) > 0 {
		s.BaseTiers = c.BaseTiers
	}
	if len(c.StreakTiers) > 0 {
		tiers := make([]reward.StreakTier, 0, len(c.StreakTiers))
		for _, tier := range c.StreakTiers {
			tiers = append(tiers, reward.StreakTier{
				MinDays:       tier.MinDays,
				MultiplierBps: tier.MultiplierBps,
			})
		}
		s.StreakTiers = tiers
	}
	s.TerritoryBonus = c.TerritoryBonus

	if err := s.Validate(); err != nil {
		return reward.Schedule{}, fmt.Errorf("invalid reward schedule: %w", err)
	}
	return s, nil
}

// DistributorConfig holds configuration for the distributor worker loop
type DistributorConfig struct {
	SweepInterval        time.Duration `mapstructure:"sweep_interval"`
	StuckAfter           time.Duration `mapstructure:"stuck_after"`
	MaxAttempts          int           `mapstructure:"max_attempts"`
	BatchSize            int           `mapstructure:"batch_size"`
	WorkerPoolSize       int           `mapstructure:"pool_size"`
	WorkerQueueSize      int           `mapstructure:"queue_size"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `mapstructure:"retry_max_interval"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Reward     RewardConfig   `mapstructure:"reward"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// DistributorWorkerConfig holds configuration for the distributor binary
type DistributorWorkerConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Chain       ChainConfig       `mapstructure:"chain"`
	Distributor DistributorConfig `mapstructure:"distributor"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("timezone", "America/Mexico_City")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", "24h")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "REWARD_EVENTS")
	v.SetDefault("reward.base_tiers", []int64{10, 15, 20})
	v.SetDefault("reward.territory_bonus", 50)
	v.SetDefault("reward.daily_vote_limit", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadDistributorConfig loads configuration for the distributor worker
func LoadDistributorConfig(configFile string, envPath string) (*DistributorWorkerConfig, error) {
	v := configureViper("distributor", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("timezone", "America/Mexico_City")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "REWARD_EVENTS")
	v.SetDefault("nats.consumer_name", "distributor")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)
	v.SetDefault("chain.gas_limit", 100000)
	v.SetDefault("chain.confirmation_depth", 3)
	v.SetDefault("chain.confirmation_wait", "5s")
	v.SetDefault("chain.confirmation_polls", 24)
	v.SetDefault("distributor.sweep_interval", "30s")
	v.SetDefault("distributor.stuck_after", "10m")
	v.SetDefault("distributor.max_attempts", 5)
	v.SetDefault("distributor.batch_size", 100)
	v.SetDefault("distributor.pool_size", 10)
	v.SetDefault("distributor.queue_size", 100)
	v.SetDefault("distributor.retry_initial_interval", "2s")
	v.SetDefault("distributor.retry_max_interval", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg DistributorWorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Chain.RPCURL == "" {
		return nil, errors.New("chain.rpc_url is required")
	}
	if cfg.Chain.TokenContract == "" {
		return nil, errors.New("chain.token_contract is required")
	}
	if cfg.Chain.WalletPrivateKey == "" {
		return nil, errors.New("chain.wallet_private_key is required")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/distributor/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("VENDOR_WARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		"timezone",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.ttl",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Chain
		"chain.rpc_url",
		"chain.chain_id",
		"chain.token_contract",
		"chain.wallet_private_key",
		"chain.gas_limit",
		"chain.confirmation_depth",
		"chain.confirmation_wait",
		"chain.confirmation_polls",
		// Reward
		"reward.base_tiers",
		"reward.territory_bonus",
		"reward.daily_vote_limit",
		// Distributor
		"distributor.sweep_interval",
		"distributor.stuck_after",
		"distributor.max_attempts",
		"distributor.batch_size",
		"distributor.pool_size",
		"distributor.queue_size",
		"distributor.retry_initial_interval",
		"distributor.retry_max_interval",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
