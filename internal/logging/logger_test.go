// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("filtered")
	Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Error("info event logged at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn event missing from output: %q", out)
	}
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "chatty", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("below info")
	Info().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "below info") {
		t.Error("debug event logged at fallback info level")
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("info event missing from output: %q", out)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	cl := Component("discovery")
	cl.Info().Msg("tagged")

	out := buf.String()
	if !strings.Contains(out, `"component":"discovery"`) {
		t.Errorf("output missing component field: %q", out)
	}
}
