package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultID             = "psycd"
	DefaultAddr           = ":4404"
	DefaultMaxPacketBytes = 1 << 20
)

// ServerConfig configures the HTTP render service.
type ServerConfig struct {
	ID             string   `toml:"id"`
	Addr           string   `toml:"addr"`
	CorsOrigins    []string `toml:"cors_origins"`
	MaxPacketBytes int      `toml:"max_packet_bytes"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ID:             DefaultID,
		Addr:           DefaultAddr,
		MaxPacketBytes: DefaultMaxPacketBytes,
	}
}

// LoadServerConfig decodes path over the defaults. An explicit
// max_packet_bytes = 0 disables the response size cap.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.ID == "" {
		cfg.ID = DefaultID
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("server config missing id")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxPacketBytes < 0 {
		return fmt.Errorf("server config max_packet_bytes must not be negative")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
