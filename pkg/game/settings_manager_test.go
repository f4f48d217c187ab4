package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	require.NotNil(t, settings)
	assert.False(t, settings.Fullscreen)
	assert.Equal(t, 1, settings.Bots)
	assert.True(t, settings.ShowHelp)
}

// TestSettingsManager_NilGdata 测试 gdataManager 为 nil 时的降级场景
func TestSettingsManager_NilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetFullscreen(true)
	sm.SetBots(-2)

	require.NoError(t, sm.Save())
	assert.True(t, sm.GetSettings().Fullscreen)
	assert.Equal(t, 0, sm.GetSettings().Bots)

	require.NoError(t, sm.Load())
	assert.Equal(t, DefaultSettings(), sm.GetSettings())
}

// TestSettingsManager_SaveAndLoad 测试设置持久化
func TestSettingsManager_SaveAndLoad(t *testing.T) {
	manager := createTestGdataManager(t, "settings")

	sm := NewSettingsManager(manager)
	sm.SetFullscreen(true)
	sm.SetBots(3)
	sm.SetShowHelp(false)
	require.NoError(t, sm.Save())

	reloaded := NewSettingsManager(manager)
	assert.Equal(t, &GameSettings{Fullscreen: true, Bots: 3, ShowHelp: false}, reloaded.GetSettings())
}

// TestSettingsManager_PartialFileKeepsDefaults 缺失的字段保持默认值
func TestSettingsManager_PartialFileKeepsDefaults(t *testing.T) {
	manager := createTestGdataManager(t, "partial")
	require.NoError(t, manager.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: true\n")))

	sm := NewSettingsManager(manager)
	assert.True(t, sm.GetSettings().Fullscreen)
	assert.Equal(t, 1, sm.GetSettings().Bots)
	assert.True(t, sm.GetSettings().ShowHelp)
}

// TestSettingsManager_CorruptFallsBack 损坏的设置回退到默认值
func TestSettingsManager_CorruptFallsBack(t *testing.T) {
	manager := createTestGdataManager(t, "corrupt_settings")
	require.NoError(t, manager.SaveObjectProp(settingsObject, settingsProperty, []byte("bots: [")))

	sm := NewSettingsManager(manager)
	assert.Equal(t, DefaultSettings(), sm.GetSettings())
}
