package common

import (
	"sync"

	"github.com/samber/lo"
)

// DecoderType is the closed set of container families the registry can
// dispatch to. Kept mostly for introspection (RegisteredTypes reports it;
// the CLI's --supported-ext query prints how many entries each extension
// has); dispatch itself runs on the registered factory.
type DecoderType int

const (
	TypeRaw DecoderType = iota
	TypeNcm
	TypeTm
	TypeKgm
	TypeKwm
	TypeXm
	TypeXimalaya
	TypeQmc
)

func (t DecoderType) String() string {
	switch t {
	case TypeRaw:
		return "raw"
	case TypeNcm:
		return "ncm"
	case TypeTm:
		return "tm"
	case TypeKgm:
		return "kgm"
	case TypeKwm:
		return "kwm"
	case TypeXm:
		return "xm"
	case TypeXimalaya:
		return "ximalaya"
	case TypeQmc:
		return "qmc"
	default:
		return "unknown"
	}
}

type registryEntry struct {
	decoderType DecoderType
	noop        bool
	factory     DecoderFactory
}

var (
	registryMu sync.Mutex
	registry   = map[string][]registryEntry{}
)

// RegisterDecoder appends a candidate decoder for ext. Registration order
// is the dispatch try-order and must be preserved; call from each format
// package's init().
func RegisterDecoder(ext string, decoderType DecoderType, noop bool, factory DecoderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[ext] = append(registry[ext], registryEntry{decoderType: decoderType, noop: noop, factory: factory})
}

// CandidatesFor returns the ordered factories registered for ext. When
// skipNoop is true, noop entries (Raw passthrough registrations) are
// dropped while relative order among the rest is preserved — so
// CandidatesFor(ext, true) is always a subsequence of CandidatesFor(ext, false).
func CandidatesFor(ext string, skipNoop bool) []DecoderFactory {
	registryMu.Lock()
	entries := registry[ext]
	registryMu.Unlock()

	kept := lo.Filter(entries, func(e registryEntry, _ int) bool {
		return !(skipNoop && e.noop)
	})
	return lo.Map(kept, func(e registryEntry, _ int) DecoderFactory {
		return e.factory
	})
}

// RegisteredTypes returns the (DecoderType, noop) pairs registered for ext,
// in registration order. Used by CLI introspection only.
func RegisteredTypes(ext string) []struct {
	Type DecoderType
	Noop bool
} {
	registryMu.Lock()
	entries := registry[ext]
	registryMu.Unlock()

	out := make([]struct {
		Type DecoderType
		Noop bool
	}, len(entries))
	for i, e := range entries {
		out[i].Type = e.decoderType
		out[i].Noop = e.noop
	}
	return out
}

// RegisteredExtensions returns every extension with at least one
// registration, for CLI introspection.
func RegisteredExtensions() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	return lo.Keys(registry)
}
