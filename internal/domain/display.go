package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDisplayConfig is returned when display options fail validation
var ErrInvalidDisplayConfig = errors.New("invalid display config")

// DisplayConfig holds the recognized widget options. Durations are milliseconds.
type DisplayConfig struct {
	NativeTimeout  int        `json:"nativeTimeout"`
	ForeignTimeout int        `json:"foreignTimeout"`
	ShowTimeLeft   bool       `json:"showTimeLeft"`
	Revert         bool       `json:"revert"`
	Color          bool       `json:"color"`
	Width          string     `json:"width"`
	Provider       string     `json:"provider"`
	UpdateInterval int        `json:"updateInterval"`
	InitialWord    Side       `json:"initialWord"`
	RevealMode     RevealMode `json:"revealMode"`
}

// DefaultDisplayConfig returns the widget defaults
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		NativeTimeout:  10 * 1000,
		ForeignTimeout: 20 * 1000,
		ShowTimeLeft:   true,
		Revert:         false,
		Color:          false,
		Width:          "100%",
		Provider:       "custom",
		UpdateInterval: 1000,
		InitialWord:    SideNative,
		RevealMode:     RevealModeBoth,
	}
}

// Validate checks option ranges and enums
func (c DisplayConfig) Validate() error {
	var problems []string

	if c.NativeTimeout <= 0 {
		problems = append(problems, "nativeTimeout must be positive")
	}
	if c.ForeignTimeout <= 0 {
		problems = append(problems, "foreignTimeout must be positive")
	}
	if c.UpdateInterval <= 0 {
		problems = append(problems, "updateInterval must be positive")
	}
	if c.InitialWord != SideNative && c.InitialWord != SideForeign {
		problems = append(problems, fmt.Sprintf("initialWord %q must be native or foreign", c.InitialWord))
	}
	if c.RevealMode != RevealModeBoth && c.RevealMode != RevealModeFlip {
		problems = append(problems, fmt.Sprintf("revealMode %q must be both or flip", c.RevealMode))
	}
	if strings.TrimSpace(c.Provider) == "" {
		problems = append(problems, "provider is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDisplayConfig, strings.Join(problems, "; "))
	}
	return nil
}

// FirstSide returns the side shown when a word set arrives
func (c DisplayConfig) FirstSide() Side {
	side := c.InitialWord
	if side != SideForeign {
		side = SideNative
	}
	if c.Revert {
		return side.Other()
	}
	return side
}

// TimeoutMs returns the display timeout bound to a side
func (c DisplayConfig) TimeoutMs(side Side) int {
	if side == SideForeign {
		return c.ForeignTimeout
	}
	return c.NativeTimeout
}

// Timeout returns the display timeout bound to a side as a duration
func (c DisplayConfig) Timeout(side Side) time.Duration {
	return time.Duration(c.TimeoutMs(side)) * time.Millisecond
}

// RotationPeriod is the supplier's rotation period
func (c DisplayConfig) RotationPeriod() time.Duration {
	return time.Duration(c.NativeTimeout+c.ForeignTimeout) * time.Millisecond
}

// Interval returns the countdown update interval
func (c DisplayConfig) Interval() time.Duration {
	return time.Duration(c.UpdateInterval) * time.Millisecond
}
