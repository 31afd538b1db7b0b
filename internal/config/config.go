package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved defaults for an availability query. Flags set
// on the command line still override everything here.
type Config struct {
	CalendarID  string `mapstructure:"calendar_id"`
	AttendeeTZ  string `mapstructure:"attendee_tz"`
	Days        int    `mapstructure:"days"`
	SlotMinutes int    `mapstructure:"slot_min"`
	Output      string `mapstructure:"output"`
	TimeFormat  string `mapstructure:"time_format"`
	EndOfDay    string `mapstructure:"end_of_day"`
}

// Load resolves configuration from, in increasing precedence: built-in
// defaults, a config.yaml in the user config dir or the current directory,
// and FREESLOTS_* environment variables. A missing config file is not an
// error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("FREESLOTS")
	v.AutomaticEnv()

	v.SetDefault("calendar_id", "primary")
	v.SetDefault("attendee_tz", "")
	v.SetDefault("days", 7)
	v.SetDefault("slot_min", 0)
	v.SetDefault("output", "text")
	v.SetDefault("time_format", "auto")
	v.SetDefault("end_of_day", "17:00")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "freeslots")
}
