// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `validate:"required"`
	Count int    `validate:"min=1,max=10"`
}

func TestStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		if err := Struct(&sample{Name: "ok", Count: 5}); err != nil {
			t.Errorf("Struct() = %v, want nil", err)
		}
	})

	t.Run("reports every failed field", func(t *testing.T) {
		err := Struct(&sample{Count: 99})
		if err == nil {
			t.Fatal("Struct() = nil, want error")
		}

		var serr *StructError
		if !errors.As(err, &serr) {
			t.Fatalf("error type = %T, want *StructError", err)
		}
		if len(serr.Fields) != 2 {
			t.Fatalf("len(Fields) = %d, want 2: %v", len(serr.Fields), serr.Fields)
		}
		if serr.Fields[0].Field != "Name" || serr.Fields[0].Tag != "required" {
			t.Errorf("Fields[0] = %+v, want Name/required", serr.Fields[0])
		}
		if serr.Fields[1].Tag != "max" || serr.Fields[1].Param != "10" {
			t.Errorf("Fields[1] = %+v, want max=10", serr.Fields[1])
		}
	})

	t.Run("combined message names the fields", func(t *testing.T) {
		err := Struct(&sample{Count: 0})
		if err == nil {
			t.Fatal("Struct() = nil, want error")
		}
		msg := err.Error()
		if !strings.Contains(msg, "Name") || !strings.Contains(msg, "Count") {
			t.Errorf("Error() = %q, want both field names", msg)
		}
	})

	t.Run("non-struct input", func(t *testing.T) {
		if err := Struct(42); err == nil {
			t.Error("Struct(42) = nil, want error")
		}
	})
}
