// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import "fmt"

// BlendConfig holds the blending weights.
//
// The collaborative step computes final = (1-CFWeight)*final + CFWeight*cf*100
// and the academic step computes final = (1-APWeight)*final + APWeight*ap.
type BlendConfig struct {
	// CFWeight is the weight of the collaborative score.
	CFWeight float64 `koanf:"cf_weight" json:"cf_weight" validate:"gte=0,lte=1"`

	// APWeight is the weight of the academic prediction.
	APWeight float64 `koanf:"ap_weight" json:"ap_weight" validate:"gte=0,lte=1"`

	// CFDepth is how many collaborative recommendations are fetched per user.
	CFDepth int `koanf:"cf_depth" json:"cf_depth" validate:"gte=1,lte=1000"`
}

// DefaultBlendConfig returns the production blend weights.
func DefaultBlendConfig() *BlendConfig {
	return &BlendConfig{
		CFWeight: 0.4,
		APWeight: 0.3,
		CFDepth:  20,
	}
}

// Validate checks the configuration for errors.
func (c *BlendConfig) Validate() error {
	if c.CFWeight < 0 || c.CFWeight > 1 {
		return fmt.Errorf("blend.cf_weight must be in [0, 1], got %f", c.CFWeight)
	}
	if c.APWeight < 0 || c.APWeight > 1 {
		return fmt.Errorf("blend.ap_weight must be in [0, 1], got %f", c.APWeight)
	}
	if c.CFDepth < 1 {
		return fmt.Errorf("blend.cf_depth must be positive, got %d", c.CFDepth)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *BlendConfig) Clone() *BlendConfig {
	clone := *c
	return &clone
}
