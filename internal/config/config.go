package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EngineMutex = "mutex"
	EngineLMAX  = "lmax"
)

// Config 程式設定，對應 config/config.yaml
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Journal JournalConfig `yaml:"journal"`
	GRPC    ServerConfig  `yaml:"grpc"`
	HTTP    ServerConfig  `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

type LedgerConfig struct {
	Engine      string `yaml:"engine"`       // mutex | lmax
	IDGenerator string `yaml:"id_generator"` // uuid | sequence | snowflake
	NodeID      int64  `yaml:"node_id"`      // snowflake node (0 ~ 1023)
	Buffer      int    `yaml:"buffer"`       // LMAX 輸送帶容量
}

type JournalConfig struct {
	// Path 為空表示不匯出，"-" 表示 stdout，"stderr" 表示 stderr
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"` // 只用於 HTTP
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default 回傳預設設定
func Default() Config {
	return Config{
		Ledger: LedgerConfig{
			Engine:      EngineMutex,
			IDGenerator: "uuid",
			Buffer:      1000,
		},
		GRPC: ServerConfig{
			Addr:            ":50051",
			ShutdownTimeout: 10 * time.Second,
		},
		HTTP: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 讀取 yaml 設定檔，未填寫的欄位沿用預設值
// path 為空時直接回傳預設設定
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	cfgData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	// 補全預設配置 (如果 yaml 寫了 0)
	if cfg.Ledger.Buffer <= 0 {
		cfg.Ledger.Buffer = 1000
	}
	if cfg.GRPC.ShutdownTimeout == 0 {
		cfg.GRPC.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.RequestTimeout == 0 {
		cfg.HTTP.RequestTimeout = 30 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 檢查列舉欄位
func (c Config) Validate() error {
	switch c.Ledger.Engine {
	case EngineMutex, EngineLMAX:
	default:
		return fmt.Errorf("ledger.engine must be %q or %q, got %q", EngineMutex, EngineLMAX, c.Ledger.Engine)
	}
	switch c.Ledger.IDGenerator {
	case "uuid", "sequence", "snowflake":
	default:
		return fmt.Errorf("ledger.id_generator must be \"uuid\", \"sequence\" or \"snowflake\", got %q", c.Ledger.IDGenerator)
	}
	if c.Ledger.NodeID < 0 || c.Ledger.NodeID > 1023 {
		return fmt.Errorf("ledger.node_id must be within 0 ~ 1023, got %d", c.Ledger.NodeID)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}
