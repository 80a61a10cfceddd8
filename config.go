// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

// DefaultResolution is the chord length, in world units, used to flatten
// curves when a Config leaves Resolution unset.
const DefaultResolution = 0.05

// Config carries per-frame generation settings handed to every Shape.
type Config struct {
	// Resolution is the maximum chord length in world units used when
	// approximating curves with line segments. Smaller values produce
	// finer tessellation. Zero or negative means DefaultResolution.
	Resolution float32
}

// DefaultConfig returns the generation settings used by NewFrame.
func DefaultConfig() Config {
	return Config{Resolution: DefaultResolution}
}

// EffectiveResolution returns Resolution, or DefaultResolution when unset.
func (c Config) EffectiveResolution() float32 {
	if c.Resolution <= 0 {
		return DefaultResolution
	}
	return c.Resolution
}
