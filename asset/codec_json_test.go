package asset

import (
	"strings"
	"testing"
)

// Ref round-trip via the binary literal; JSON uses the same
// constructor names.
func TestRefRoundTrip(t *testing.T) {
	for _, r := range []Ref{RefUSD, RefGBP, RefEUR, RefCHF, RefToken, RefSecurity} {
		got, ok := ParseRef(r.String())
		if !ok || got != r {
			t.Fatalf("ref %v did not round-trip: got %v, ok=%v", r, got, ok)
		}
	}
	if _, ok := ParseRef("Bitcoin"); ok {
		t.Fatalf("unknown ref literal should not parse")
	}
}

// Property: JSON round-trip modulo the documented Holder-variant
// lossiness (every holder decodes back as Account).
func TestJSONCodecRoundTrip(t *testing.T) {
	a := buildRoundTripAsset()
	data, err := MarshalJSON(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	assertAssetsEqual(t, a, got)
}

// The +1 historical offset: Fractional(2) must expose contents=3 in JSON.
func TestJSONAssetTypeFractionalOffset(t *testing.T) {
	a := newTestAsset(10, Fractional(2))
	data, err := MarshalJSON(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"contents": 3`) {
		t.Fatalf("expected contents: 3 in JSON, got %s", data)
	}

	back, err := UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Type != Fractional(2) {
		t.Fatalf("round-tripped type = %+v, want Fractional(2)", back.Type)
	}
}

func TestJSONHolderVariantLossy(t *testing.T) {
	contract := NewContractHolder(addr(KindContract, 5))
	a := newTestAsset(100, Discrete())
	a = Preallocate(a, Holdings{contract: 100})

	data, err := MarshalJSON(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for h := range back.Holdings {
		if !h.IsAccount() {
			t.Fatalf("decoded holder should default to Account variant")
		}
	}
}
