// Package config loads the engine's two recognized tuning options from a
// YAML file, the same way the rest of the corpus wires viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tuannm99/colstore/internal/table"
)

// EngineConfig holds the configuration options the storage and scan core
// recognizes.
type EngineConfig struct {
	// MaxChunkSize is the default maximum rows per chunk for newly created
	// tables.
	MaxChunkSize uint32 `mapstructure:"max_chunk_size"`
	// TargetPosListSize is an advisory cap on how many output positions
	// TableScan accumulates before it could emit a result chunk.
	TargetPosListSize uint32 `mapstructure:"target_pos_list_size"`
}

// Default returns the configuration used when no file is supplied.
func Default() *EngineConfig {
	return &EngineConfig{
		MaxChunkSize:      table.DefaultMaxChunkSize,
		TargetPosListSize: table.DefaultMaxChunkSize,
	}
}

// Load reads and validates an EngineConfig from a YAML file at path.
func Load(path string) (*EngineConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("max_chunk_size", table.DefaultMaxChunkSize)
	v.SetDefault("target_pos_list_size", table.DefaultMaxChunkSize)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.MaxChunkSize == 0 {
		return nil, fmt.Errorf("max_chunk_size must be positive")
	}
	if cfg.TargetPosListSize == 0 {
		return nil, fmt.Errorf("target_pos_list_size must be positive")
	}

	return &cfg, nil
}
