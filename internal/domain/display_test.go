package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDisplayConfig(t *testing.T) {
	cfg := DefaultDisplayConfig()

	assert.Equal(t, 10000, cfg.NativeTimeout)
	assert.Equal(t, 20000, cfg.ForeignTimeout)
	assert.Equal(t, 1000, cfg.UpdateInterval)
	assert.Equal(t, "custom", cfg.Provider)
	assert.Equal(t, SideNative, cfg.InitialWord)
	assert.Equal(t, RevealModeBoth, cfg.RevealMode)
	assert.True(t, cfg.ShowTimeLeft)
	assert.NoError(t, cfg.Validate())
}

func TestDisplayConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(c *DisplayConfig)
		expectedError string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *DisplayConfig) {},
		},
		{
			name:          "zero native timeout",
			modify:        func(c *DisplayConfig) { c.NativeTimeout = 0 },
			expectedError: "nativeTimeout",
		},
		{
			name:          "negative foreign timeout",
			modify:        func(c *DisplayConfig) { c.ForeignTimeout = -1 },
			expectedError: "foreignTimeout",
		},
		{
			name:          "zero update interval",
			modify:        func(c *DisplayConfig) { c.UpdateInterval = 0 },
			expectedError: "updateInterval",
		},
		{
			name:          "unknown initial word",
			modify:        func(c *DisplayConfig) { c.InitialWord = "both" },
			expectedError: "initialWord",
		},
		{
			name:          "unknown reveal mode",
			modify:        func(c *DisplayConfig) { c.RevealMode = "fade" },
			expectedError: "revealMode",
		},
		{
			name:          "blank provider",
			modify:        func(c *DisplayConfig) { c.Provider = "  " },
			expectedError: "provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDisplayConfig()
			tt.modify(&cfg)

			err := cfg.Validate()

			if tt.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidDisplayConfig)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestDisplayConfig_FirstSide(t *testing.T) {
	tests := []struct {
		name        string
		initialWord Side
		revert      bool
		expected    Side
	}{
		{name: "native first", initialWord: SideNative, revert: false, expected: SideNative},
		{name: "native first reverted", initialWord: SideNative, revert: true, expected: SideForeign},
		{name: "foreign first", initialWord: SideForeign, revert: false, expected: SideForeign},
		{name: "foreign first reverted", initialWord: SideForeign, revert: true, expected: SideNative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDisplayConfig()
			cfg.InitialWord = tt.initialWord
			cfg.Revert = tt.revert

			assert.Equal(t, tt.expected, cfg.FirstSide())
		})
	}
}

func TestDisplayConfig_TimeoutsStayWithSide(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.NativeTimeout = 1000
	cfg.ForeignTimeout = 2000

	reverted := cfg
	reverted.Revert = true

	for _, c := range []DisplayConfig{cfg, reverted} {
		assert.Equal(t, time.Second, c.Timeout(SideNative))
		assert.Equal(t, 2*time.Second, c.Timeout(SideForeign))
		assert.Equal(t, 3*time.Second, c.RotationPeriod())
	}
}
