package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate the loader from the developer's real home directory
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "~/timetracking.json", s.DataFile)
	assert.True(t, s.AutoInsertStop)
	assert.False(t, s.EnableProjectSettings)
	assert.Zero(t, s.MinDailyBreak)
	assert.Equal(t, 8, s.TimeGoal.Daily.Hours)
	assert.Equal(t, 40, s.TimeGoal.Weekly.Hours)
	assert.Equal(t, time.Friday, s.LastWorkDay())
}

func TestLoadConfigFile(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_file = "/tmp/worklog.json"
min_daily_break = 30
last_day_of_work_week = "Thursday"

[time_goal.daily]
hours = 7
minutes = 30
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/worklog.json", s.DataFile)
	assert.Equal(t, 30, s.MinDailyBreak)
	assert.Equal(t, 7, s.TimeGoal.Daily.Hours)
	assert.Equal(t, 30, s.TimeGoal.Daily.Minutes)
	// unset keys keep their defaults
	assert.Equal(t, 40, s.TimeGoal.Weekly.Hours)
	assert.Equal(t, time.Thursday, s.LastWorkDay())
}

func TestLoadMissingConfigFileFails(t *testing.T) {
	isolateHome(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("TT_MIN_DAILY_BREAK", "45")
	t.Setenv("TT_AUTO_INSERT_STOP", "false")
	t.Setenv("TT_TIME_GOAL_DAILY_HOURS", "6")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45, s.MinDailyBreak)
	assert.False(t, s.AutoInsertStop)
	assert.Equal(t, 6, s.TimeGoal.Daily.Hours)
}

func TestUserConfigFileIsPickedUp(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "timetracking")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte(`min_daily_break = 20`), 0o644))

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, s.MinDailyBreak)
}

func TestInvalidWeekdayRejected(t *testing.T) {
	isolateHome(t)
	t.Setenv("TT_LAST_DAY_OF_WORK_WEEK", "Caturday")

	_, err := Load("")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input string
		want  time.Weekday
	}{
		{"Monday", time.Monday},
		{"friday", time.Friday},
		{"FRI", time.Friday},
		{"sun", time.Sunday},
	}
	for _, tt := range tests {
		day, err := parseWeekday(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, day, tt.input)
	}

	_, err := parseWeekday("someday")
	assert.Error(t, err)
}
