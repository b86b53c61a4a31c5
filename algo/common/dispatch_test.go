package common

import (
	"reflect"
	"testing"
)

func resetRegistryForTest() func() {
	registryMu.Lock()
	saved := registry
	registry = map[string][]registryEntry{}
	registryMu.Unlock()
	return func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	}
}

func funcPtr(f DecoderFactory) uintptr {
	return reflect.ValueOf(f).Pointer()
}

func TestCandidatesForPreservesOrderAndSkipsNoop(t *testing.T) {
	defer resetRegistryForTest()()

	noopFactory := func(p *DecoderParams) Decoder { return NewRawDecoder(p) }
	kgmFactory := func(p *DecoderParams) Decoder { return NewRawDecoder(p) }
	qmcFactory := func(p *DecoderParams) Decoder { return NewRawDecoder(p) }

	RegisterDecoder("test", TypeRaw, true, noopFactory)
	RegisterDecoder("test", TypeKgm, false, kgmFactory)
	RegisterDecoder("test", TypeQmc, false, qmcFactory)

	all := CandidatesFor("test", false)
	if len(all) != 3 {
		t.Fatalf("got %d candidates, want 3", len(all))
	}

	withoutNoop := CandidatesFor("test", true)
	if len(withoutNoop) != 2 {
		t.Fatalf("got %d non-noop candidates, want 2", len(withoutNoop))
	}
	if funcPtr(withoutNoop[0]) != funcPtr(kgmFactory) || funcPtr(withoutNoop[1]) != funcPtr(qmcFactory) {
		t.Error("skip-noop result is not an order-preserving subsequence of the full result")
	}
}

func TestRegisteredExtensionsIncludesRegistered(t *testing.T) {
	defer resetRegistryForTest()()
	RegisterDecoder("xyz", TypeRaw, false, NewRawDecoder)

	found := false
	for _, ext := range RegisteredExtensions() {
		if ext == "xyz" {
			found = true
		}
	}
	if !found {
		t.Error("RegisteredExtensions did not include a freshly registered extension")
	}
}
