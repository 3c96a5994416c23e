// Package core provides parameter profiles and validation for Golden engines.
package core

import (
	"errors"
	"fmt"

	golden "github.com/lutherlabs/golden-go"
)

// GoldFastParams is a single derived-key layer with no asymmetric material.
// Because every key in the pipeline is re-derivable from the envelope itself,
// any engine built with this profile can decrypt its envelopes.
var GoldFastParams = golden.Params{
	Profile:      golden.GoldFast,
	Layers:       1,
	MultiLayer:   true,
	EnableKEM:    false,
	EnableSign:   false,
	QuantumBoost: false,
	AEADSuite:    golden.SuiteAES256GCM,
}

// GoldStandardParams is the full three-layer pipeline over AES-256-GCM.
var GoldStandardParams = golden.Params{
	Profile:      golden.GoldStandard,
	Layers:       golden.DefaultLayers,
	MultiLayer:   true,
	EnableKEM:    true,
	EnableSign:   true,
	QuantumBoost: true,
	AEADSuite:    golden.SuiteAES256GCM,
}

// GoldMaxParams is the full three-layer pipeline over ChaCha20-Poly1305.
var GoldMaxParams = golden.Params{
	Profile:      golden.GoldMax,
	Layers:       golden.DefaultLayers,
	MultiLayer:   true,
	EnableKEM:    true,
	EnableSign:   true,
	QuantumBoost: true,
	AEADSuite:    golden.SuiteChaCha20Poly1305,
}

// GoldClassicParams selects among the single-shot legacy modes by size.
var GoldClassicParams = golden.Params{
	Profile:      golden.GoldClassic,
	Layers:       golden.DefaultLayers,
	MultiLayer:   false,
	EnableKEM:    true,
	EnableSign:   false,
	QuantumBoost: false,
	AEADSuite:    golden.SuiteAES256GCM,
}

// GetParams returns the parameter set for the given profile.
func GetParams(profile golden.Profile) (golden.Params, error) {
	switch profile {
	case golden.GoldFast:
		return GoldFastParams, nil
	case golden.GoldStandard:
		return GoldStandardParams, nil
	case golden.GoldMax:
		return GoldMaxParams, nil
	case golden.GoldClassic:
		return GoldClassicParams, nil
	default:
		return golden.Params{}, fmt.Errorf("unknown profile: %s", profile)
	}
}

// DefaultParams returns the parameter set engines use when none is given.
func DefaultParams() golden.Params {
	return GoldStandardParams
}

// MaxLayers bounds the pipeline depth. Beyond the three strategy-bearing
// indices, extra layers repeat the random-key strategy.
const MaxLayers = 8

// ValidateParams validates a parameter set for consistency.
func ValidateParams(params golden.Params) error {
	if params.Layers < 1 || params.Layers > MaxLayers {
		return fmt.Errorf("layers must be in [1, %d], got %d", MaxLayers, params.Layers)
	}
	switch params.AEADSuite {
	case golden.SuiteAES256GCM, golden.SuiteChaCha20Poly1305:
	default:
		return fmt.Errorf("unknown AEAD suite: %s", params.AEADSuite)
	}
	if params.QuantumBoost && params.Layers < 3 {
		return errors.New("quantum boost requires the outermost random-key layer (layers >= 3)")
	}
	if !params.MultiLayer && params.QuantumBoost {
		return errors.New("quantum boost has no effect outside multi-layer mode")
	}
	return nil
}
