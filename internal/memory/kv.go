package memory

import "strings"

// KVMode is a KV-cache quantization mode. The zero value is the fp16 baseline.
type KVMode string

const (
	KVModeFP16 KVMode = "fp16"
	KVModeQ8   KVMode = "q8"
	KVModeQ4   KVMode = "q4"
)

// Overhead factors scale fp16-basis KV bytes/token to the requested mode.
const (
	FactorFP16 = 1.0
	FactorQ8   = 0.50
	// 0.25 bytes-per-element ratio plus a 10% margin.
	FactorQ4 = 0.275
)

// ParseKVMode normalizes a mode name. Matching is case-insensitive and accepts
// the int8/int4 and llama.cpp q8_0/q4_0 aliases. Empty or unrecognized names
// map to fp16.
func ParseKVMode(s string) KVMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q8", "int8", "q8_0":
		return KVModeQ8
	case "q4", "int4", "q4_0":
		return KVModeQ4
	default:
		return KVModeFP16
	}
}

// Factor returns the overhead factor of m.
func (m KVMode) Factor() float64 {
	switch ParseKVMode(string(m)) {
	case KVModeQ8:
		return FactorQ8
	case KVModeQ4:
		return FactorQ4
	default:
		return FactorFP16
	}
}

// OverheadFactor returns the KV overhead factor for a mode name.
func OverheadFactor(mode string) float64 { return KVMode(mode).Factor() }

// KVModes lists the canonical mode names.
func KVModes() []string {
	return []string{string(KVModeFP16), string(KVModeQ8), string(KVModeQ4)}
}
