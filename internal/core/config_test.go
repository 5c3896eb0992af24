package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
nickname = "initbot"
server = "irc.example.net"
channels = ["#dnd"]
journal = "initbot.db"
`

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 6667 {
		t.Fatalf("expected default port 6667, got %d", cfg.Port)
	}
	if cfg.Username != "initbot" || cfg.Realname != "initbot" {
		t.Fatalf("expected username/realname to default to nickname, got %q/%q", cfg.Username, cfg.Realname)
	}
	if cfg.Address() != "irc.example.net:6667" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
}

func TestParseConfigTLSPort(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig + "use_tls = true\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 6697 {
		t.Fatalf("expected TLS port 6697, got %d", cfg.Port)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("INITBOT_SERVER", "irc.override.net")
	t.Setenv("INITBOT_PORT", "7000")

	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Server != "irc.override.net" {
		t.Fatalf("expected env server, got %q", cfg.Server)
	}
	if cfg.Port != 7000 {
		t.Fatalf("expected env port, got %d", cfg.Port)
	}
}

func TestParseConfigEnvError(t *testing.T) {
	t.Setenv("INITBOT_PORT", "not-a-port")

	_, err := ParseConfig([]byte(sampleConfig))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseConfigRequiresServerAndNick(t *testing.T) {
	_, err := ParseConfig([]byte(`channels = ["#dnd"]`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "server is required") || !strings.Contains(err.Error(), "nickname is required") {
		t.Fatalf("expected both missing fields reported, got %v", err)
	}
}

func TestParseConfigBadTOML(t *testing.T) {
	if _, err := ParseConfig([]byte("nickname = ")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Journal != "initbot.db" {
		t.Fatalf("expected journal path, got %q", cfg.Journal)
	}
}

func TestWithChannelDedupes(t *testing.T) {
	cfg := Config{Channels: []string{"#dnd", "#ooc"}}
	got := cfg.WithChannel("#dnd")
	if strings.Join(got, ",") != "#dnd,#ooc" {
		t.Fatalf("unexpected channels %v", got)
	}
	got = cfg.WithChannel("#combat")
	if strings.Join(got, ",") != "#dnd,#ooc,#combat" {
		t.Fatalf("unexpected channels %v", got)
	}
}

