//go:build unix

// Package config loads sockctl bind plans from TOML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/socketlib/socket"
)

const (
	DefaultFamily   = "inet"
	DefaultProtocol = "tcp"
	DefaultLogLevel = "info"
)

// Plan is a list of sockets to create and bind.
type Plan struct {
	Log   LogConfig   `toml:"log"`
	Binds []BindEntry `toml:"bind"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// BindEntry describes one socket of a plan.
type BindEntry struct {
	Name     string `toml:"name"`
	Family   string `toml:"family"`
	Protocol string `toml:"protocol"`
	Address  string `toml:"address"`
	Port     int    `toml:"port"`
}

// Load reads, defaults and validates the plan at path.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	plan, err := Parse(data)
	if err != nil {
		return Plan{}, fmt.Errorf("config %s: %w", path, err)
	}
	return plan, nil
}

// Parse decodes a TOML plan, applies defaults and validates it.
func Parse(data []byte) (Plan, error) {
	var plan Plan
	md, err := toml.Decode(string(data), &plan)
	if err != nil {
		return Plan{}, fmt.Errorf("config parse failed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Plan{}, fmt.Errorf("config has unknown keys: %s", strings.Join(keys, ", "))
	}
	plan.applyDefaults()
	if err := Validate(plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (p *Plan) applyDefaults() {
	if strings.TrimSpace(p.Log.Level) == "" {
		p.Log.Level = DefaultLogLevel
	}
	for i := range p.Binds {
		b := &p.Binds[i]
		if strings.TrimSpace(b.Name) == "" {
			b.Name = fmt.Sprintf("bind[%d]", i)
		}
		if strings.TrimSpace(b.Family) == "" {
			b.Family = DefaultFamily
		}
		if strings.TrimSpace(b.Protocol) == "" {
			b.Protocol = DefaultProtocol
		}
	}
}

// Validate checks a defaulted plan.
func Validate(p Plan) error {
	if _, err := zapcore.ParseLevel(p.Log.Level); err != nil {
		return fmt.Errorf("log level invalid: %w", err)
	}
	if len(p.Binds) == 0 {
		return fmt.Errorf("config has no [[bind]] entries")
	}
	for i, b := range p.Binds {
		if err := ValidateEntry(b); err != nil {
			return fmt.Errorf("bind[%d] invalid: %w", i, err)
		}
	}
	return nil
}

// ValidateEntry checks the family, protocol and port of one entry.
// The address is left to the socket layer so plans can exercise its errors.
func ValidateEntry(b BindEntry) error {
	if _, err := socket.ParseAddressFamily(b.Family); err != nil {
		return err
	}
	if _, err := socket.ParseProtocol(b.Protocol); err != nil {
		return err
	}
	if b.Port < 0 || b.Port > 0xffff {
		return fmt.Errorf("port %d out of range", b.Port)
	}
	return nil
}

// Resolve returns the typed family and protocol of a validated entry.
func (b BindEntry) Resolve() (socket.AddressFamily, socket.Protocol, error) {
	family, err := socket.ParseAddressFamily(b.Family)
	if err != nil {
		return 0, 0, err
	}
	protocol, err := socket.ParseProtocol(b.Protocol)
	if err != nil {
		return 0, 0, err
	}
	return family, protocol, nil
}
