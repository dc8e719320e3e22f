// Package settings loads the tool configuration: defaults, the user config
// file, optional per-project files found by walking up from the working
// directory, and TT_-prefixed environment variables, merged in that order.
package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	userConfigFile  = "config.toml"
	projectFileName = "timetracking.project.toml"
	localFileName   = ".timetracking.config"
	envPrefix       = "tt"
)

// TimeGoal is a target duration in hours and minutes.
type TimeGoal struct {
	Hours   int `mapstructure:"hours"`
	Minutes int `mapstructure:"minutes"`
}

// TimeGoals holds the daily and weekly targets.
type TimeGoals struct {
	Daily  TimeGoal `mapstructure:"daily"`
	Weekly TimeGoal `mapstructure:"weekly"`
}

// Settings is the merged tool configuration.
type Settings struct {
	DataFile              string    `mapstructure:"data_file"`
	AutoInsertStop        bool      `mapstructure:"auto_insert_stop"`
	EnableProjectSettings bool      `mapstructure:"enable_project_settings"`
	MinDailyBreak         int       `mapstructure:"min_daily_break"`
	TimeGoal              TimeGoals `mapstructure:"time_goal"`
	LastDayOfWorkWeek     string    `mapstructure:"last_day_of_work_week"`
}

// LastWorkDay returns the configured last day of the work week. Unparsable
// values fall back to Friday; Load rejects them up front.
func (s *Settings) LastWorkDay() time.Weekday {
	if day, err := parseWeekday(s.LastDayOfWorkWeek); err == nil {
		return day
	}
	return time.Friday
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_file", "~/timetracking.json")
	v.SetDefault("auto_insert_stop", true)
	v.SetDefault("enable_project_settings", false)
	v.SetDefault("min_daily_break", 0)
	v.SetDefault("time_goal.daily.hours", 8)
	v.SetDefault("time_goal.daily.minutes", 0)
	v.SetDefault("time_goal.weekly.hours", 40)
	v.SetDefault("time_goal.weekly.minutes", 0)
	v.SetDefault("last_day_of_work_week", "Friday")
}

// Load builds the settings. configFile, when non-empty, is merged on top of
// the regular file chain.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	if home, err := os.UserHomeDir(); err == nil {
		mergeIfExists(v, filepath.Join(home, ".config", "timetracking", userConfigFile))
	}
	if v.GetBool("enable_project_settings") {
		mergeProjectFile(v)
	}
	if cwd, err := os.Getwd(); err == nil {
		mergeIfExists(v, filepath.Join(cwd, localFileName))
	}
	if configFile != "" {
		if err := mergeFile(v, configFile); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "could not parse settings")
	}
	if _, err := parseWeekday(s.LastDayOfWorkWeek); err != nil {
		return nil, err
	}
	return &s, nil
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "could not read config file %s", path)
	}
	slog.Debug("merged config file", "path", path)
	return nil
}

func mergeIfExists(v *viper.Viper, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := mergeFile(v, path); err != nil {
		slog.Warn("skipping unreadable config file", "path", path, "error", err)
	}
}

// mergeProjectFile merges the nearest project settings file, walking up
// from the working directory.
func mergeProjectFile(v *viper.Viper) {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		path := filepath.Join(dir, projectFileName)
		if _, err := os.Stat(path); err == nil {
			mergeIfExists(v, path)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func parseWeekday(name string) (time.Weekday, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if day, ok := weekdays[lower]; ok {
		return day, nil
	}
	// three-letter shorthand
	if len(lower) == 3 {
		for full, day := range weekdays {
			if strings.HasPrefix(full, lower) {
				return day, nil
			}
		}
	}
	return 0, errors.Errorf("invalid last_day_of_work_week %q", name)
}
