// Package main provides the golden-cli command line interface for Golden
// engine operations.
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	golden "github.com/lutherlabs/golden-go"
	"github.com/lutherlabs/golden-go/core"
	"github.com/lutherlabs/golden-go/engine"
	"github.com/lutherlabs/golden-go/factor"
	"github.com/lutherlabs/golden-go/kdf"
	"github.com/lutherlabs/golden-go/sign"
)

const appName = "golden-cli"

// OutputFormat represents the output format for serialization
type OutputFormat string

const (
	FormatHex    OutputFormat = "hex"
	FormatBase64 OutputFormat = "base64"
)

// CLIConfig holds CLI configuration
type CLIConfig struct {
	Profile      golden.Profile
	OutputFormat OutputFormat
	OutputFile   string
	InputFile    string
	Message      string
	Iterations   int
	Verbose      bool
	Timing       bool
}

// KeyExport represents exported public key material
type KeyExport struct {
	Profile       string `json:"profile"`
	KEMPublicKey  string `json:"kem_public_key"`
	SignPublicKey string `json:"sign_public_key"`
	CreatedAt     string `json:"created_at"`
}

// SignatureExport represents an exported signature
type SignatureExport struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Format    string `json:"format"`
	CreatedAt string `json:"created_at"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, golden.Version)
	case "encrypt":
		handleEncrypt(os.Args[2:])
	case "decrypt":
		handleDecrypt(os.Args[2:])
	case "sign":
		handleSign(os.Args[2:])
	case "verify":
		handleVerify(os.Args[2:])
	case "keygen":
		handleKeygen(os.Args[2:])
	case "factor":
		handleFactor(os.Args[2:])
	case "demo":
		handleDemo(os.Args[2:])
	case "benchmark":
		handleBenchmark(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Golden Layered Encryption CLI

USAGE:
    %s <COMMAND> [OPTIONS]

COMMANDS:
    encrypt     Encrypt a file (GOLD-Fast profile, portable envelopes)
    decrypt     Decrypt a file encrypted by this tool
    sign        Produce a keyless integrity signature for a message or file
    verify      Verify a keyless integrity signature
    keygen      Generate and export fresh public key material
    factor      Factor an integer and show its derived key
    demo        Walk through a full encrypt/decrypt cycle
    benchmark   Run performance benchmarks
    version     Show version information
    help        Show this help message

OPTIONS:
    --profile <fast|standard|max|classic>  Engine profile (default: standard)
    --input <file>          Input file
    --output <file>         Output file (default: stdout)
    --message <text>        Inline message instead of --input
    --format <hex|base64>   Output encoding (default: base64)
    --iterations <n>        Benchmark iterations (default: 10)
    --timing                Show timing information
    --verbose               Verbose output

EXAMPLES:
    # Encrypt and decrypt a file
    %s encrypt --input secret.txt --output secret.golden
    %s decrypt --input secret.golden --output secret.txt

    # Sign and verify a message
    %s sign --message "release artifact" --output sig.json
    %s verify --message "release artifact" --signature sig.json

    # Export public keys for a profile
    %s keygen --profile max --output keys.json

    # Inspect the factorizer and key derivation
    %s factor 1048576

    # Benchmark the standard profile
    %s benchmark --profile standard --iterations 25
`, appName, appName, appName, appName, appName, appName, appName, appName, appName)
}

// ============================================================================
// Commands
// ============================================================================

func handleEncrypt(args []string) {
	config := parseConfig(args)
	if config.InputFile == "" || config.OutputFile == "" {
		fatal("encrypt requires --input and --output")
	}

	// File envelopes use GOLD-Fast: its layer keys derive from the data
	// itself, so any invocation of this tool can decrypt them.
	e, err := engine.New(core.GoldFastParams)
	if err != nil {
		fatalf("creating engine: %v", err)
	}

	start := time.Now()
	n, err := e.EncryptFile(config.InputFile, config.OutputFile)
	if err != nil {
		fatalf("encrypting: %v", err)
	}
	if config.Timing {
		fmt.Fprintf(os.Stderr, "Encryption took: %v\n", time.Since(start))
	}
	fmt.Printf("Wrote %d envelope bytes to %s\n", n, config.OutputFile)
}

func handleDecrypt(args []string) {
	config := parseConfig(args)
	if config.InputFile == "" || config.OutputFile == "" {
		fatal("decrypt requires --input and --output")
	}

	e, err := engine.New(core.GoldFastParams)
	if err != nil {
		fatalf("creating engine: %v", err)
	}

	start := time.Now()
	n, err := e.DecryptFile(config.InputFile, config.OutputFile)
	if err != nil {
		fatalf("decrypting: %v", err)
	}
	if config.Timing {
		fmt.Fprintf(os.Stderr, "Decryption took: %v\n", time.Since(start))
	}
	fmt.Printf("Wrote %d plaintext bytes to %s\n", n, config.OutputFile)
}

func handleSign(args []string) {
	config := parseConfig(args)
	msg := readMessage(config)

	// The keyless pseudo-signature is the only signature another process
	// can verify; engine ML-DSA keys never leave the process.
	sig := sign.PseudoSign(msg)

	export := SignatureExport{
		Message:   encodeBytes(msg, config.OutputFormat),
		Signature: encodeBytes(sig, config.OutputFormat),
		Format:    string(config.OutputFormat),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(export, config.OutputFile)
}

func handleVerify(args []string) {
	config := parseConfig(args)
	msg := readMessage(config)

	sigFile := getArg(args, "--signature", "-s")
	if sigFile == "" {
		fatal("verify requires --signature")
	}
	data, err := os.ReadFile(sigFile)
	if err != nil {
		fatalf("reading signature: %v", err)
	}
	var export SignatureExport
	if err := json.Unmarshal(data, &export); err != nil {
		fatalf("parsing signature file: %v", err)
	}
	sig, err := decodeBytes(export.Signature, OutputFormat(export.Format))
	if err != nil {
		fatalf("decoding signature: %v", err)
	}

	if !sign.PseudoVerify(msg, sig) {
		fmt.Println("Signature: INVALID")
		os.Exit(1)
	}
	fmt.Println("Signature: VALID")
}

func handleKeygen(args []string) {
	config := parseConfig(args)

	params, err := core.GetParams(config.Profile)
	if err != nil {
		fatalf("%v", err)
	}
	params.EnableKEM = true
	params.EnableSign = true

	start := time.Now()
	e, err := engine.New(params)
	if err != nil {
		fatalf("generating keys: %v", err)
	}
	if config.Timing {
		fmt.Fprintf(os.Stderr, "Key generation took: %v\n", time.Since(start))
	}

	export := KeyExport{
		Profile:       string(config.Profile),
		KEMPublicKey:  encodeBytes(e.KEMPublicKey(), config.OutputFormat),
		SignPublicKey: encodeBytes(e.SignPublicKey(), config.OutputFormat),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(export, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "KEM public key: %d bytes\n", len(e.KEMPublicKey()))
		fmt.Fprintf(os.Stderr, "Signing public key: %d bytes\n", len(e.SignPublicKey()))
	}
}

func handleFactor(args []string) {
	if len(args) < 1 {
		fatal("factor requires an integer argument")
	}
	var n uint64
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
		fatalf("parsing %q: %v", args[0], err)
	}

	start := time.Now()
	factors, err := factor.FactorChecked(n)
	if err != nil {
		fatalf("factoring: %v", err)
	}
	elapsed := time.Since(start)

	key := kdf.DeriveKey(n)
	fmt.Printf("n          = %d\n", n)
	fmt.Printf("factors    = %v\n", factors)
	fmt.Printf("canonical  = %s\n", kdf.CanonicalFactors(factors))
	fmt.Printf("derived    = %s\n", hex.EncodeToString(key[:]))
	fmt.Printf("elapsed    = %v\n", elapsed)
}

func handleDemo(args []string) {
	config := parseConfig(args)

	params, err := core.GetParams(config.Profile)
	if err != nil {
		fatalf("%v", err)
	}
	e, err := engine.New(params)
	if err != nil {
		fatalf("creating engine: %v", err)
	}

	fmt.Printf("Profile:  %s\n", config.Profile)
	fmt.Printf("Level:    %s\n", e.SecurityLevel())

	msg := []byte("The quick brown fox jumps over the lazy dog")
	if config.Message != "" {
		msg = []byte(config.Message)
	}

	env, err := e.Encrypt(msg)
	if err != nil {
		fatalf("encrypting: %v", err)
	}
	fmt.Printf("Envelope: %d bytes (mode %s) for %d plaintext bytes\n",
		len(env), golden.Mode(env[0]), len(msg))

	dec, err := e.Decrypt(env)
	if err != nil {
		fatalf("decrypting: %v", err)
	}
	if !bytes.Equal(dec, msg) {
		fatal("round trip mismatch")
	}
	fmt.Println("Round trip: OK")
}

func handleBenchmark(args []string) {
	config := parseConfig(args)

	params, err := core.GetParams(config.Profile)
	if err != nil {
		fatalf("%v", err)
	}
	e, err := engine.New(params)
	if err != nil {
		fatalf("creating engine: %v", err)
	}

	sizes := []int{64, 1024, 65536}
	fmt.Printf("Benchmarking profile %s, %d iterations\n\n", config.Profile, config.Iterations)

	for _, size := range sizes {
		data := bytes.Repeat([]byte{0xA5}, size)

		var encTotal, decTotal time.Duration
		for i := 0; i < config.Iterations; i++ {
			start := time.Now()
			env, err := e.Encrypt(data)
			encTotal += time.Since(start)
			if err != nil {
				fatalf("encrypting %d bytes: %v", size, err)
			}

			start = time.Now()
			if _, err := e.Decrypt(env); err != nil {
				fatalf("decrypting %d bytes: %v", size, err)
			}
			decTotal += time.Since(start)
		}

		iters := time.Duration(config.Iterations)
		fmt.Printf("%8d bytes: encrypt %v/op, decrypt %v/op\n",
			size, encTotal/iters, decTotal/iters)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func parseConfig(args []string) CLIConfig {
	config := CLIConfig{
		Profile:      golden.GoldStandard,
		OutputFormat: FormatBase64,
		Iterations:   10,
	}

	switch profile := getArg(args, "--profile", "-p"); profile {
	case "fast":
		config.Profile = golden.GoldFast
	case "standard", "":
		config.Profile = golden.GoldStandard
	case "max":
		config.Profile = golden.GoldMax
	case "classic":
		config.Profile = golden.GoldClassic
	default:
		fatalf("invalid profile %q. Must be one of: fast, standard, max, classic", profile)
	}

	switch format := getArg(args, "--format", "-f"); format {
	case "hex":
		config.OutputFormat = FormatHex
	case "base64", "":
		config.OutputFormat = FormatBase64
	default:
		fatalf("invalid format %q. Must be one of: hex, base64", format)
	}

	if iters := getArg(args, "--iterations", "-n"); iters != "" {
		if _, err := fmt.Sscanf(iters, "%d", &config.Iterations); err != nil || config.Iterations < 1 {
			fatalf("invalid iteration count %q", iters)
		}
	}

	config.OutputFile = getArg(args, "--output", "-o")
	config.InputFile = getArg(args, "--input", "-i")
	config.Message = getArg(args, "--message", "-m")
	config.Verbose = hasFlag(args, "--verbose", "-v")
	config.Timing = hasFlag(args, "--timing", "-t")

	return config
}

func getArg(args []string, long, short string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || args[i] == short {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || arg == short {
			return true
		}
	}
	return false
}

func readMessage(config CLIConfig) []byte {
	if config.Message != "" {
		return []byte(config.Message)
	}
	if config.InputFile == "" {
		fatal("provide --message or --input")
	}
	data, err := os.ReadFile(config.InputFile)
	if err != nil {
		fatalf("reading input: %v", err)
	}
	return data
}

func encodeBytes(data []byte, format OutputFormat) string {
	if format == FormatHex {
		return hex.EncodeToString(data)
	}
	return base64.StdEncoding.EncodeToString(data)
}

// decodeBytes reverses encodeBytes. The encoding cannot be guessed from the
// string: a 64-char hex signature is itself valid padded base64, so the
// format travels in the export.
func decodeBytes(s string, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatHex:
		return hex.DecodeString(s)
	case FormatBase64, "":
		return base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("unknown encoding format %q", format)
	}
}

func writeJSON(v any, filename string) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatalf("marshaling output: %v", err)
	}
	writeOutput(output, filename)
}

func writeOutput(data []byte, filename string) {
	if filename == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		fatalf("writing output file: %v", err)
	}
}

func fatal(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
