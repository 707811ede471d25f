package asset

import (
	"bytes"
	"testing"
)

func buildRoundTripAsset() Asset {
	alice := accountHolder(1)
	bob := accountHolder(2)
	ref := RefSecurity
	a := CreateAsset(
		"Gold",
		addr(KindAccount, 0xAA),
		1000,
		&ref,
		Fractional(3),
		testTime(),
		addr(KindAsset, 0x01),
		map[string]string{"origin": "vault-7", "series": "A"},
	)
	a = Preallocate(a, Holdings{alice: 600, bob: 400})
	a.Supply = 0
	return a
}

// Property: codec round-trip. decode(encode(a)) == a for valid a.
func TestBinaryCodecRoundTrip(t *testing.T) {
	a := buildRoundTripAsset()
	data := Encode(a)
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertAssetsEqual(t, a, got)
}

// Property: encoding is deterministic, same input -> identical bytes.
func TestBinaryCodecDeterministic(t *testing.T) {
	a := buildRoundTripAsset()
	first := Encode(a)
	second := Encode(a)
	if !bytes.Equal(first, second) {
		t.Fatalf("encoding not deterministic across calls")
	}
}

// Property: ordered map encoding: two holdings with identical content
// encode to identical bytes regardless of how they were built.
func TestBinaryCodecOrderedHoldings(t *testing.T) {
	alice := accountHolder(1)
	bob := accountHolder(2)
	carol := accountHolder(3)

	h1 := Holdings{alice: 1, bob: 2, carol: 3}
	h2 := Holdings{}
	h2[carol] = 3
	h2[alice] = 1
	h2[bob] = 2

	var b1, b2 bytes.Buffer
	encodeHoldings(&b1, h1)
	encodeHoldings(&b2, h2)
	if !bytes.Equal(b1.Bytes(), b2.Bytes()) {
		t.Fatalf("holdings encoding depends on insertion order")
	}
}

// Scenario F: encoding Security produces 00 08 "Security", the bare
// Ref wire form with no presence byte of its own.
func TestRefEncodingBytes(t *testing.T) {
	var buf bytes.Buffer
	encodeRef(&buf, RefSecurity)
	want := []byte{0x00, 0x08, 'S', 'e', 'c', 'u', 'r', 'i', 't', 'y'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestRefDecodeUnknownFails(t *testing.T) {
	var buf bytes.Buffer
	encodeString(&buf, "Bitcoin")
	r := bytesReader(buf.Bytes())
	if _, err := decodeRef(r); err == nil {
		t.Fatalf("expected decode error for unknown ref literal")
	}
}

func TestOptionalRefEncodingBytes(t *testing.T) {
	ref := RefSecurity
	var buf bytes.Buffer
	encodeOptionalRef(&buf, &ref)
	want := []byte{1, 0x00, 0x08, 'S', 'e', 'c', 'u', 'r', 'i', 't', 'y'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}

	buf.Reset()
	encodeOptionalRef(&buf, nil)
	if !bytes.Equal(buf.Bytes(), []byte{0}) {
		t.Fatalf("absent ref should encode as a single 0 byte, got % x", buf.Bytes())
	}
}

func TestDecodeTruncatedInputIsError(t *testing.T) {
	a := buildRoundTripAsset()
	data := Encode(a)
	_, err := Decode(data[:len(data)-1])
	if err == nil {
		t.Fatalf("expected decode error for truncated input")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestDecodeTrailingBytesIsError(t *testing.T) {
	a := buildRoundTripAsset()
	data := append(Encode(a), 0xFF)
	if _, err := Decode(data); err == nil {
		t.Fatalf("expected decode error for trailing bytes")
	}
}

func assertAssetsEqual(t *testing.T, want, got Asset) {
	t.Helper()
	if want.Name != got.Name {
		t.Fatalf("name: got %q, want %q", got.Name, want.Name)
	}
	if !want.Issuer.Equal(got.Issuer) {
		t.Fatalf("issuer mismatch")
	}
	if !want.IssuedOn.Equal(got.IssuedOn) {
		t.Fatalf("issuedOn: got %v, want %v", got.IssuedOn, want.IssuedOn)
	}
	if want.Supply != got.Supply {
		t.Fatalf("supply: got %d, want %d", got.Supply, want.Supply)
	}
	if want.SupplyInitial != got.SupplyInitial {
		t.Fatalf("supplyInitial: got %d, want %d", got.SupplyInitial, want.SupplyInitial)
	}
	if len(want.Holdings) != len(got.Holdings) {
		t.Fatalf("holdings size: got %d, want %d", len(got.Holdings), len(want.Holdings))
	}
	for h, bal := range want.Holdings {
		if got.Holdings[h] != bal {
			t.Fatalf("holder %s: got %d, want %d", h, got.Holdings[h], bal)
		}
	}
	if (want.Reference == nil) != (got.Reference == nil) {
		t.Fatalf("reference presence mismatch")
	}
	if want.Reference != nil && *want.Reference != *got.Reference {
		t.Fatalf("reference: got %v, want %v", *got.Reference, *want.Reference)
	}
	if want.Type != got.Type {
		t.Fatalf("type: got %+v, want %+v", got.Type, want.Type)
	}
	if !want.Address.Equal(got.Address) {
		t.Fatalf("address mismatch")
	}
	for k, v := range want.Metadata {
		if got.Metadata[k] != v {
			t.Fatalf("metadata[%s]: got %q, want %q", k, got.Metadata[k], v)
		}
	}
}
