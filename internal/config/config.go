package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port               string
	Env                string
	AllowedOrigins     []string
	DefaultLevel       int
	MachineMoveTimeout time.Duration
	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
	Weights            domain.Weights
}

// plain string settings, decoded by viper
type settings struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	ColumnWeights  string `mapstructure:"WEIGHT_COLUMNS"`
}

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// LoadDotEnv loads .env from the working directory or its parent. A missing
// file only means the process environment is used as is.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		return godotenv.Load("../.env")
	}
	return nil
}

func LoadConfig(log *zap.SugaredLogger) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	defaults := domain.DefaultWeights()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("WEIGHT_COLUMNS", joinInts(defaults.ColumnWeights[:]))

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg := &Config{
		Port:           s.Port,
		Env:            s.Env,
		AllowedOrigins: splitCSV(s.AllowedOrigins),
	}

	cfg.DefaultLevel = getInt(v, log, "DEFAULT_LEVEL", domain.DefaultLevel)
	if cfg.DefaultLevel < 1 || cfg.DefaultLevel > domain.MaxLevel {
		log.Warnf("DEFAULT_LEVEL %d not in [1, %d], using default: %d", cfg.DefaultLevel, domain.MaxLevel, domain.DefaultLevel)
		cfg.DefaultLevel = domain.DefaultLevel
	}

	cfg.MachineMoveTimeout = time.Duration(getInt(v, log, "MACHINE_MOVE_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.SessionIdleTimeout = time.Duration(getInt(v, log, "SESSION_IDLE_TIMEOUT_MINUTES", 30)) * time.Minute
	cfg.CleanupInterval = time.Duration(getInt(v, log, "CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute

	w := domain.Weights{
		Offset:         getInt(v, log, "WEIGHT_OFFSET", defaults.Offset),
		MachinePair:    getInt(v, log, "WEIGHT_MACHINE_PAIR", defaults.MachinePair),
		MachineTriple:  getInt(v, log, "WEIGHT_MACHINE_TRIPLE", defaults.MachineTriple),
		MachineConnect: getInt(v, log, "WEIGHT_MACHINE_CONNECT", defaults.MachineConnect),
		HumanPair:      getInt(v, log, "WEIGHT_HUMAN_PAIR", defaults.HumanPair),
		HumanTriple:    getInt(v, log, "WEIGHT_HUMAN_TRIPLE", defaults.HumanTriple),
		HumanConnect:   getInt(v, log, "WEIGHT_HUMAN_CONNECT", defaults.HumanConnect),
		MachineWin:     getInt(v, log, "WEIGHT_MACHINE_WIN", defaults.MachineWin),
	}
	cols, err := parseColumnWeights(s.ColumnWeights)
	if err != nil {
		return nil, err
	}
	w.ColumnWeights = cols
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Weights = w

	return cfg, nil
}

// BoardOptions are the options every new game is created with.
func (c *Config) BoardOptions() []domain.Option {
	return []domain.Option{
		domain.WithLevel(c.DefaultLevel),
		domain.WithWeights(c.Weights),
	}
}

// getInt reads an integer setting. Invalid values fall back to the default
// with a warning instead of failing startup.
func getInt(v *viper.Viper, log *zap.SugaredLogger, key string, defaultValue int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("Invalid integer value for %s: %s, using default: %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func parseColumnWeights(raw string) ([domain.Columns]int, error) {
	var cols [domain.Columns]int
	parts := splitCSV(raw)
	if len(parts) != domain.Columns {
		return cols, fmt.Errorf("%w: WEIGHT_COLUMNS needs %d values, got %d", domain.ErrInvalidWeights, domain.Columns, len(parts))
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return cols, fmt.Errorf("%w: WEIGHT_COLUMNS[%d] = %q", domain.ErrInvalidWeights, i, p)
		}
		cols[i] = n
	}
	return cols, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, n := range values {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
