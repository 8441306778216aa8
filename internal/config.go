package pooltop

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Theme holds the colours the renderers use. Values are lipgloss colours:
// "#rrggbb" hex or a terminal palette index. Only hex values carry over to
// PNG charts.
type Theme struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Border    string `mapstructure:"border"`
}

// DefaultTheme matches the pane colours used across the dashboard
func DefaultTheme() Theme {
	return Theme{
		Primary:   "#d75fd7",
		Secondary: "240",
		Border:    "240",
	}
}

// Config is the resolved runtime configuration
type Config struct {
	PoolURL         string        `mapstructure:"pool_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ChartLabel      string        `mapstructure:"chart_label"`
	StratumURL      string        `mapstructure:"stratum_url"`
	Listen          string        `mapstructure:"listen"`
	LogFile         string        `mapstructure:"log_file"`
	Debug           bool          `mapstructure:"debug"`
	Theme           Theme         `mapstructure:"theme"`
}

// SetDefaults registers the default for every config key on v
func SetDefaults(v *viper.Viper) {
	theme := DefaultTheme()
	v.SetDefault("pool_url", "")
	v.SetDefault("refresh_interval", RefreshDuration())
	v.SetDefault("request_timeout", RequestTimeoutDuration())
	v.SetDefault("chart_label", DEFAULT_CHART_LABEL)
	v.SetDefault("stratum_url", "")
	v.SetDefault("listen", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("theme.primary", theme.Primary)
	v.SetDefault("theme.secondary", theme.Secondary)
	v.SetDefault("theme.border", theme.Border)
}

// LoadConfig reads the configuration out of v and validates it
func LoadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills in derived values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PoolURL) == "" {
		return errors.New("pool_url must be set")
	}
	u, err := c.ParsedPoolURL()
	if err != nil {
		return err
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ChartLabel == "" {
		c.ChartLabel = DEFAULT_CHART_LABEL
	}
	if c.StratumURL == "" {
		c.StratumURL = net.JoinHostPort(u.Hostname(), DEFAULT_STRATUM_PORT)
	}
	defaults := DefaultTheme()
	if c.Theme.Primary == "" {
		c.Theme.Primary = defaults.Primary
	}
	if c.Theme.Secondary == "" {
		c.Theme.Secondary = defaults.Secondary
	}
	if c.Theme.Border == "" {
		c.Theme.Border = defaults.Border
	}
	return nil
}

// ParsedPoolURL parses the pool URL. Without a scheme the result has an
// empty Scheme and connection attempts start with https.
func (c Config) ParsedPoolURL() (*url.URL, error) {
	raw := strings.TrimSpace(c.PoolURL)
	if !strings.Contains(raw, "://") {
		raw = "//" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pool_url %q: %w", c.PoolURL, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("invalid pool_url %q: missing host", c.PoolURL)
	}
	return u, nil
}
