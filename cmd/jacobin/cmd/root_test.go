/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2021-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cmd

import (
	"reflect"
	"testing"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no flags",
			in:   []string{"jacobin", "Main"},
			want: []string{"jacobin", "Main"},
		},
		{
			name: "classpath flag with value",
			in:   []string{"jacobin", "-cp", "./out", "Main"},
			want: []string{"jacobin", "--cp", "./out", "Main"},
		},
		{
			name: "version alone",
			in:   []string{"jacobin", "-version"},
			want: []string{"jacobin", "--version"},
		},
		{
			name: "showversion then main class",
			in:   []string{"jacobin", "-showversion", "Main", "arg1"},
			want: []string{"jacobin", "--showversion", "Main", "arg1"},
		},
		{
			name: "question mark help",
			in:   []string{"jacobin", "-?"},
			want: []string{"jacobin", "--help"},
		},
		{
			name: "stops at first unrecognized token",
			in:   []string{"jacobin", "Main", "-cp"},
			want: []string{"jacobin", "Main", "-cp"},
		},
		{
			name: "jar flag with value",
			in:   []string{"jacobin", "-jar", "app.jar", "a1"},
			want: []string{"jacobin", "--jar", "app.jar", "a1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"empty", nil, false},
		{"bare version", []string{"--version"}, true},
		{"after classpath pair", []string{"--cp", "./out", "--version"}, true},
		{"showversion is not version", []string{"--showversion"}, false},
		{"main class present", []string{"--cp", "./out", "Main"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasVersionFlag(tt.args); got != tt.want {
				t.Errorf("hasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestResolveClasspathEntries(t *testing.T) {
	t.Setenv(classpathEnvVar, "")

	if got := resolveClasspathEntries("./a:./b"); len(got) != 2 || got[0] != "./a" || got[1] != "./b" {
		t.Errorf("flag value not honored: got %v", got)
	}

	t.Setenv(classpathEnvVar, "./env")
	if got := resolveClasspathEntries(""); len(got) != 1 || got[0] != "./env" {
		t.Errorf("env var fallback not honored: got %v", got)
	}

	t.Setenv(classpathEnvVar, "")
	if got := resolveClasspathEntries(""); len(got) != 1 || got[0] != defaultClasspathRoot {
		t.Errorf("default root fallback not honored: got %v", got)
	}
}
