/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2023-4 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package stringPool interns binary class names (and other frequently
// repeated strings the loader/method-area see, such as field and method
// names) into small uint32 indices. This is distinct from the *heap's*
// java/lang/String interning table (JVMS §5.1's literal-interning rule): that one
// dedupes actual Java String objects by UTF-16 content; this one maps plain
// Go strings to indices. The class loader and method area in this
// repository do not call it: they keep names as Go strings.
package stringPool

import "sync"

var (
	mu      sync.RWMutex
	strings_ []string
	index   = map[string]uint32{}
)

func init() {
	// index 0 is reserved as "no string" so a zero-valued uint32 field
	// never accidentally aliases a real entry.
	strings_ = append(strings_, "")
}

// Insert interns s and returns its pool index, reusing an existing entry
// when s has already been interned.
func Insert(s string) uint32 {
	mu.RLock()
	if idx, ok := index[s]; ok {
		mu.RUnlock()
		return idx
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if idx, ok := index[s]; ok {
		return idx
	}
	idx := uint32(len(strings_))
	strings_ = append(strings_, s)
	index[s] = idx
	return idx
}

// GetStringPointer returns a pointer to the interned string at idx. Callers
// must not mutate through the returned pointer.
func GetStringPointer(idx uint32) *string {
	mu.RLock()
	defer mu.RUnlock()
	if int(idx) >= len(strings_) {
		empty := ""
		return &empty
	}
	return &strings_[idx]
}

// GetStringPoolSize returns the current number of interned entries
// (including the reserved index 0).
func GetStringPoolSize() uint32 {
	mu.RLock()
	defer mu.RUnlock()
	return uint32(len(strings_))
}

// Reset empties the pool. Used between test runs that need deterministic
// indices.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	strings_ = []string{""}
	index = map[string]uint32{}
}
