package golden

// Profile names a predefined parameter set.
type Profile string

const (
	// GoldFast is a single derived-key layer with no asymmetric material.
	// Envelopes are decryptable by any engine built with the same profile.
	GoldFast Profile = "GOLD-Fast"
	// GoldStandard is the full three-layer pipeline with ML-KEM-768
	// encapsulation, ML-DSA-65 signatures and quantum-boost re-derivation.
	GoldStandard Profile = "GOLD-Standard"
	// GoldMax is GoldStandard with ChaCha20-Poly1305 as the AEAD suite.
	GoldMax Profile = "GOLD-Max"
	// GoldClassic disables the layer pipeline and selects among the
	// single-shot legacy modes by plaintext size.
	GoldClassic Profile = "GOLD-Classic"
)

// Suite names an AEAD cipher suite.
type Suite string

const (
	SuiteAES256GCM        Suite = "AES-256-GCM"
	SuiteChaCha20Poly1305 Suite = "ChaCha20-Poly1305"
)

// Params is the complete configuration for one engine instance. Two engines
// must share identical params (and key material) for envelopes to be
// exchangeable between them.
type Params struct {
	Profile Profile `json:"profile"`
	// Layers is the number of pipeline stages in multi-layer mode.
	Layers int `json:"layers"`
	// MultiLayer selects the layered envelope (mode 3). When false the
	// engine falls back to the size-thresholded single-shot modes.
	MultiLayer bool `json:"multi_layer"`
	// EnableKEM equips the engine with an ML-KEM-768 keypair.
	EnableKEM bool `json:"enable_kem"`
	// EnableSign equips the engine with an ML-DSA-65 keypair. Without it
	// Sign/Verify degrade to a keyless hash pseudo-signature and layered
	// envelopes carry no signature.
	EnableSign bool `json:"enable_sign"`
	// QuantumBoost re-derives the outermost layer key from its own stored
	// bytes through the factorization KDF.
	QuantumBoost bool  `json:"quantum_boost"`
	AEADSuite    Suite `json:"aead_suite"`
}

// Mode is the leading envelope byte selecting the decode path.
type Mode byte

const (
	// ModeClassical is a single AEAD block keyed by a transmitted raw key.
	ModeClassical Mode = 0x00
	// ModeKEM is a single AEAD block keyed through ML-KEM encapsulation.
	ModeKEM Mode = 0x01
	// ModeHybrid is the single-layer hybrid fallback.
	ModeHybrid Mode = 0x02
	// ModeMultiLayer is the layered envelope, optionally signed.
	ModeMultiLayer Mode = 0x03
)

// Symmetric key material and legacy mode thresholds.
const (
	// KeySize is the length of every symmetric key in the pipeline.
	KeySize = 32

	// ClassicalMaxSize is the exclusive upper bound on plaintext length
	// for the classical legacy mode.
	ClassicalMaxSize = 1024
	// PureKEMMinSize is the exclusive lower bound on plaintext length for
	// the pure-KEM legacy mode (when a KEM keypair is present).
	PureKEMMinSize = 1_000_000

	// DefaultLayers is the pipeline depth of the standard profiles.
	DefaultLayers = 3
)

// String returns the mode name used in diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeClassical:
		return "classical"
	case ModeKEM:
		return "kem"
	case ModeHybrid:
		return "hybrid"
	case ModeMultiLayer:
		return "multi-layer"
	default:
		return "unknown"
	}
}
