package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"bmicalc/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ChangeListener 在配置文件重新加载成功后触发。
type ChangeListener func(*Config)

// Watch reloads path whenever it is written and hands the new configuration
// to onChange. Invalid edits are logged and ignored so the running config
// stays in effect.
func Watch(path string, onChange ChangeListener) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config watch requires path")
	}
	if onChange == nil {
		return fmt.Errorf("config watch requires a listener")
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config for watch failed: %w", err)
	}
	v.OnConfigChange(func(evt fsnotify.Event) {
		if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) {
			return
		}
		cfg, err := Load(path)
		if err != nil {
			logger.Errorf("config reload failed (%s): %v", filepath.Base(path), err)
			return
		}
		logger.Infof("config reloaded from %s", filepath.Base(path))
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
