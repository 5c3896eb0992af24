package core

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigPath is the well-known connection config file.
const DefaultConfigPath = "config.toml"

// Config holds the IRC connection settings and bot options.
type Config struct {
	Nickname string   `toml:"nickname" env:"INITBOT_NICKNAME"`
	AltNicks []string `toml:"alt_nicks"`
	Username string   `toml:"username" env:"INITBOT_USERNAME"`
	Realname string   `toml:"realname"`
	Server   string   `toml:"server" env:"INITBOT_SERVER"`
	Port     int      `toml:"port" env:"INITBOT_PORT"`
	Password string   `toml:"password" env:"INITBOT_PASSWORD"`
	UseTLS   bool     `toml:"use_tls" env:"INITBOT_TLS"`
	Channels []string `toml:"channels"`
	Journal  string   `toml:"journal" env:"INITBOT_JOURNAL"`
	Debug    bool     `toml:"debug" env:"INITBOT_DEBUG"`
}

// LoadConfig reads the config file at path and applies environment
// overrides. A missing file is an error: the bot cannot connect without it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML config bytes, applies environment overrides and
// fills defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		if c.UseTLS {
			c.Port = 6697
		} else {
			c.Port = 6667
		}
	}
	if c.Username == "" {
		c.Username = c.Nickname
	}
	if c.Realname == "" {
		c.Realname = c.Nickname
	}
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	var errs []error
	if c.Server == "" {
		errs = append(errs, errors.New("server is required"))
	}
	if c.Nickname == "" {
		errs = append(errs, errors.New("nickname is required"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	return errors.Join(errs...)
}

// Address returns host:port for dialing.
func (c Config) Address() string {
	return net.JoinHostPort(c.Server, strconv.Itoa(c.Port))
}

// WithChannel returns the configured channels plus channel, without
// duplicates.
func (c Config) WithChannel(channel string) []string {
	out := make([]string, 0, len(c.Channels)+1)
	seen := map[string]bool{}
	for _, ch := range append(append([]string{}, c.Channels...), channel) {
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}
	return out
}
