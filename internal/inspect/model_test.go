/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package inspect

import (
	"strings"
	"testing"

	"jacobin/types"
)

func TestCreateSparklineEmptyAndZeroWidth(t *testing.T) {
	if got := createSparkline(nil, 10); got != "" {
		t.Errorf("createSparkline(nil, 10) = %q, want empty", got)
	}
	if got := createSparkline([]float64{1, 1, 1}, 0); got != "" {
		t.Errorf("createSparkline(values, 0) = %q, want empty", got)
	}
}

func TestCreateSparklineTruncatesToWidth(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i)
	}
	got := createSparkline(values, 3)
	// lipgloss styling wraps the 3 rendered runes in escape codes; strip by
	// checking the rune count of the plain render instead of raw length.
	plain := stripANSI(got)
	if n := len([]rune(plain)); n != 3 {
		t.Errorf("rendered sparkline has %d runes, want 3 (width-truncated tail)", n)
	}
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		v    types.Value
		want string
	}{
		{types.IntVal(42), "i:42"},
		{types.LongVal(-7), "l:-7"},
		{types.RefVal(0), "ref:null"},
		{types.RefVal(5), "ref:5"},
	}
	for _, tt := range tests {
		if got := renderValue(tt.v); got != tt.want {
			t.Errorf("renderValue(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

// stripANSI removes lipgloss/termenv SGR escape sequences for plain-text
// assertions on styled output.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
