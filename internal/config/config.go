package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultEditor         = "code"
	defaultInsidersEditor = "code-insiders"
	defaultStrategy       = "detect"
	historyFileName       = ".history.json"
	appName               = "vslaunch"
)

type Config struct {
	HistoryPath      string `mapstructure:"history_path"`
	Editor           string `mapstructure:"editor"`
	InsidersEditor   string `mapstructure:"insiders_editor"`
	Strategy         string `mapstructure:"strategy"`
	HideInstructions bool   `mapstructure:"hide_instructions"`
	HideInfo         bool   `mapstructure:"hide_info"`
}

func defaultConfig() *Config {
	return &Config{
		HistoryPath:    DefaultHistoryPath(),
		Editor:         defaultEditor,
		InsidersEditor: defaultInsidersEditor,
		Strategy:       defaultStrategy,
	}
}

// DefaultHistoryPath is the history file inside the per-user local data dir.
func DefaultHistoryPath() string {
	return filepath.Join(dataDir(), appName, historyFileName)
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return local
		}
		return filepath.Join(home, "AppData", "Local")
	}
	return filepath.Join(home, ".local", "share")
}

func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, appName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}
	return dirs
}

// Load reads config.yaml (or config.toml) from the config dirs. VSLAUNCH_*
// environment variables override file values.
func Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix("VSLAUNCH")
	v.SetDefault("history_path", cfg.HistoryPath)
	v.SetDefault("editor", defaultEditor)
	v.SetDefault("insiders_editor", defaultInsidersEditor)
	v.SetDefault("strategy", defaultStrategy)
	v.SetDefault("hide_instructions", false)
	v.SetDefault("hide_info", false)
	for _, key := range []string{"history_path", "editor", "insiders_editor", "strategy", "hide_instructions", "hide_info"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// fallback to TOML if yaml missing
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// legacy shell config
	if legacyCfg, err := loadLegacy(); err == nil && legacyCfg != nil {
		return legacyCfg, nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadLegacy() (*Config, error) {
	var f *os.File
	var err error
	for _, dir := range configDirs() {
		f, err = os.Open(filepath.Join(dir, "config"))
		if err == nil {
			break
		}
	}
	if f == nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaultConfig()
	found := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		val := strings.Trim(parts[1], "\"'")
		switch key {
		case "VSLAUNCH_HISTORY_PATH":
			cfg.HistoryPath = val
		case "VSLAUNCH_EDITOR":
			cfg.Editor = val
		case "VSLAUNCH_INSIDERS_EDITOR":
			cfg.InsidersEditor = val
		case "VSLAUNCH_STRATEGY":
			cfg.Strategy = val
		case "VSLAUNCH_HIDE_INSTRUCTIONS":
			cfg.HideInstructions, _ = strconv.ParseBool(val)
		case "VSLAUNCH_HIDE_INFO":
			cfg.HideInfo, _ = strconv.ParseBool(val)
		default:
			continue
		}
		found = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("no legacy keys")
	}
	return cfg, nil
}
