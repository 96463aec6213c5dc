package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit_LevelAndFormatter(t *testing.T) {
	t.Cleanup(func() { Log = nil })

	Init("warn", false)
	assert.Equal(t, logrus.WarnLevel, L().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, L().Formatter)

	Init("nonsense", true)
	assert.Equal(t, logrus.InfoLevel, L().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, L().Formatter)
}

func TestForSession_Fields(t *testing.T) {
	entry := ForSession("dashboard", "s-1", "admin")

	assert.Equal(t, "dashboard", entry.Data["component"])
	assert.Equal(t, "s-1", entry.Data["session_id"])
	assert.Equal(t, "admin", entry.Data["username"])
}
