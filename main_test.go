package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsys/calculator"
)

func restoreLogging(t *testing.T) {
	level := log.GetLevel()
	formatter := log.StandardLogger().Formatter
	orig := calculator.GetConfig()
	t.Cleanup(func() {
		log.SetLevel(level)
		log.SetFormatter(formatter)
		calculator.SetConfig(orig)
	})
}

func TestLoadConfig_MissingFileWarns(t *testing.T) {
	restoreLogging(t)
	hook := test.NewGlobal()
	defer hook.Reset()

	cfg := loadConfig("does/not/exist.ini")
	assert.Equal(t, calculator.DefaultConfig(), cfg)
	assert.Equal(t, cfg, calculator.GetConfig())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "does/not/exist.ini", entry.Data["path"])
	assert.NotNil(t, entry.Data["err"])
}

func TestLoadConfig_RepoFile(t *testing.T) {
	restoreLogging(t)
	hook := test.NewGlobal()
	defer hook.Reset()

	cfg := loadConfig("conf/config.ini")
	assert.Equal(t, calculator.DefaultConfig(), cfg)
	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
