package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，例如 TRAIL_THRESHOLD、TRAIL_METRICS_ADDR
const EnvPrefix = "TRAIL_"

// EnvConfigPath 未显式指定配置文件时读取的环境变量
const EnvConfigPath = "TRAIL_CONFIG"

// bytesProvider 把内存中的 YAML（例如嵌入的默认配置）交给 koanf
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytes provider does not support Read()")
}

// Load 按优先级叠加配置（低 → 高）：
//  1. New() 默认值
//  2. defaults（嵌入的 data/trail.yaml，可为 nil）
//  3. path 指定的 YAML 文件；path 为空时使用 TRAIL_CONFIG
//  4. TRAIL_ 前缀的环境变量
func Load(path string, defaults []byte) (*TrailConfig, error) {
	k := koanf.New(".")

	if len(defaults) > 0 {
		if err := k.Load(bytesProvider(defaults), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: embedded defaults: %v", ErrLoadConfig, err)
		}
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
		log.Printf("[Config] Loaded config file: %s", path)
	}

	// TRAIL_SLOT_WIDTH -> slot_width（保留下划线以匹配 koanf 标签）
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrLoadConfig, err)
	}
	cfg.Images = normalizeImages(cfg.Images)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
