package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/nabeel-hussain/ToDoApp/internal/application/consts"
)

// Loader 按扩展名选择解码器：.yaml/.yml、.json、.toml
type Loader struct {
	env        string
	configPath string
	bizConfig  any
	lookupEnv  func(string) (string, bool)
}

func NewLoader(env string, configPath string) *Loader {
	if env == "" {
		env = consts.ENV_DEVELOPMENT
	}
	if configPath == "" {
		configPath = consts.DEFAULT_CONFIG_PATH
	}
	return &Loader{env: env, configPath: configPath, lookupEnv: os.LookupEnv}
}

// SetBizConfig 必须传指针，例如 &TodoConfig{}；指针内已有的值作为默认值保留。
func (l *Loader) SetBizConfig(b any) {
	if b == nil {
		return
	}
	if reflect.TypeOf(b).Kind() != reflect.Ptr {
		panic("SetBizConfig expects a pointer, e.g. &MyBizConfig{}")
	}
	l.bizConfig = b
}

func (l *Loader) LoadConfig() (*AppConfig, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(l.configPath))

	var cfg AppConfig
	if err := unmarshal(ext, data, &cfg); err != nil {
		return nil, err
	}

	if l.bizConfig != nil {
		if cfg.BizConfig != nil {
			if err := decodeBizSection(ext, cfg.BizConfig, l.bizConfig); err != nil {
				return nil, fmt.Errorf("decode biz_config failed: %w", err)
			}
		}
		cfg.BizConfig = l.bizConfig
	}

	if cfg.APPInfo == nil {
		cfg.APPInfo = &APPInfo{}
	}
	if cfg.APPInfo.ENV == "" {
		cfg.APPInfo.ENV = l.env
	}

	if err := l.mergeEnvVars(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func unmarshal(ext string, data []byte, out any) error {
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
	return nil
}

// decodeBizSection 把通用 map 重新编码后解到业务指针，直接解码到 any 时指针会被 map 替换。
func decodeBizSection(ext string, raw any, target any) error {
	var (
		b   []byte
		err error
	)
	switch ext {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(raw)
	case ".json":
		b, err = json.Marshal(raw)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(raw)
		b = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("re-marshal biz_config failed: %w", err)
	}
	return unmarshal(ext, b, target)
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
