package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vvatanabe/shiptracker/internal/constant"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Ledger      string
	Backend     string
	TableName   string
	EndpointURL string
	SQLitePath  string
	ListenAddr  string
	LogLevel    string
	LogMode     string
}

// shiptracker.toml key mapping.
type fileConfig struct {
	Ledger      string `toml:"ledger"`
	Backend     string `toml:"backend"`
	TableName   string `toml:"table_name"`
	EndpointURL string `toml:"endpoint_url"`
	SQLitePath  string `toml:"sqlite_path"`
	ListenAddr  string `toml:"listen_addr"`
	LogLevel    string `toml:"log_level"`
	LogMode     string `toml:"log_mode"`
}

func Default() Config {
	return Config{
		Ledger:     constant.DefaultLedgerName,
		Backend:    constant.DefaultBackend,
		TableName:  constant.DefaultTableName,
		SQLitePath: constant.DefaultSQLitePath,
		ListenAddr: constant.DefaultListenAddr,
		LogLevel:   constant.DefaultLogLevel,
		LogMode:    constant.DefaultLogMode,
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep their default value.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	overlay := func(key string, dst *string, v string) {
		if meta.IsDefined(key) {
			*dst = strings.TrimSpace(v)
		}
	}
	overlay("ledger", &cfg.Ledger, raw.Ledger)
	overlay("backend", &cfg.Backend, raw.Backend)
	overlay("table_name", &cfg.TableName, raw.TableName)
	overlay("endpoint_url", &cfg.EndpointURL, raw.EndpointURL)
	overlay("sqlite_path", &cfg.SQLitePath, raw.SQLitePath)
	overlay("listen_addr", &cfg.ListenAddr, raw.ListenAddr)
	overlay("log_level", &cfg.LogLevel, raw.LogLevel)
	overlay("log_mode", &cfg.LogMode, raw.LogMode)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendDynamoDB, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Ledger == "" {
		return fmt.Errorf("config: ledger is required")
	}
	if c.Backend == BackendDynamoDB && c.TableName == "" {
		return fmt.Errorf("config: table_name is required for the dynamodb backend")
	}
	if c.Backend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("config: sqlite_path is required for the sqlite backend")
	}
	return nil
}
