package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// HostConfig 宿主进程配置
// 与业务配置（data/config.json，可在 UI 里热改）不同，
// 这里只放启动期参数，改动需要重启进程
type HostConfig struct {
	Port                int    `toml:"port"`
	DataDir             string `toml:"data_dir"`
	DatabasePath        string `toml:"database_path"`
	PipelineBaseURL     string `toml:"pipeline_base_url"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
}

// DefaultHostConfig 缺省宿主配置
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Port:                3000,
		DataDir:             "data",
		DatabasePath:        "data/helper.db",
		PipelineBaseURL:     "http://127.0.0.1:5000",
		PollIntervalSeconds: 5,
	}
}

// LoadHostConfig 读取 TOML 宿主配置
// 文件不存在时直接用缺省值，格式错误才报错
func LoadHostConfig(path string) (HostConfig, error) {
	cfg := DefaultHostConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if cfg.Port <= 0 {
		cfg.Port = 3000
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/helper.db"
	}
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = 5
	}
	return cfg, nil
}
