package asset

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// The binary codec is the authoritative, consensus-critical
// serialization. It is deterministic: the same value always encodes to
// the same bytes, which matters because the result feeds the ledger
// hash and inter-node transmission.
//
// Primitives: big-endian integers of natural width; length-prefixed byte
// strings use a 16-bit big-endian length, except the holdings map which
// uses a 64-bit length.

func putUint16Bytes(buf *bytes.Buffer, b []byte) {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(b)))
	buf.Write(lenBuf[:])
	buf.Write(b)
}

func readUint16Bytes(r *bytes.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := readFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	if int(n) > r.Len() {
		return nil, decodeErrorf("length prefix %d exceeds remaining buffer", n)
	}
	out := make([]byte, n)
	if _, err := readFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func readFull(r *bytes.Reader, out []byte) (int, error) {
	n, err := r.Read(out)
	if err != nil || n != len(out) {
		return n, decodeErrorf("truncated input: want %d bytes, got %d", len(out), n)
	}
	return n, nil
}

// encodeAddress writes a's bytes, unprefixed, since AddrSize is fixed.
func encodeAddress(buf *bytes.Buffer, a Address) {
	buf.Write(a.Bytes[:])
}

func decodeAddress(r *bytes.Reader, kind Kind) (Address, error) {
	var raw [AddrSize]byte
	if _, err := readFull(r, raw[:]); err != nil {
		return Address{}, err
	}
	return Address{Kind: kind, Bytes: raw}, nil
}

// encodeHolder writes only the address bytes of h; the Account/Contract
// tag is NOT encoded. This is a consensus-relevant choice: Account and
// Contract holders with identical address bytes are indistinguishable
// on the wire.
func encodeHolder(buf *bytes.Buffer, h Holder) {
	buf.Write(h.Addr[:])
}

// decodeHolder always reconstructs the Account tag, since the tag is
// never encoded.
func decodeHolder(r *bytes.Reader) (Holder, error) {
	var raw [AddrSize]byte
	if _, err := readFull(r, raw[:]); err != nil {
		return Holder{}, err
	}
	return Holder{Tag: HolderAccount, Addr: raw}, nil
}

func encodeBalance(buf *bytes.Buffer, b Balance) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(b))
	buf.Write(n[:])
}

func decodeBalance(r *bytes.Reader) (Balance, error) {
	var n [8]byte
	if _, err := readFull(r, n[:]); err != nil {
		return 0, err
	}
	return Balance(binary.BigEndian.Uint64(n[:])), nil
}

func encodeString(buf *bytes.Buffer, s string) {
	putUint16Bytes(buf, []byte(s))
}

func decodeString(r *bytes.Reader) (string, error) {
	b, err := readUint16Bytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeTime(buf *bytes.Buffer, t time.Time) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(t.UnixNano()))
	buf.Write(n[:])
}

func decodeTime(r *bytes.Reader) (time.Time, error) {
	var n [8]byte
	if _, err := readFull(r, n[:]); err != nil {
		return time.Time{}, err
	}
	nanos := int64(binary.BigEndian.Uint64(n[:]))
	return time.Unix(0, nanos).UTC(), nil
}

// encodeRef writes the literal constructor name, length-prefixed:
// "USD", "EUR", "GBP", "CHF", "Token", "Security". This is the bare Ref
// wire form (e.g. "Security" is 00 08 "Security"); it carries no
// presence marker of its own.
func encodeRef(buf *bytes.Buffer, ref Ref) {
	encodeString(buf, ref.String())
}

func decodeRef(r *bytes.Reader) (Ref, error) {
	s, err := decodeString(r)
	if err != nil {
		return 0, err
	}
	ref, ok := ParseRef(s)
	if !ok {
		return 0, decodeErrorf("unknown ref %q", s)
	}
	return ref, nil
}

// encodeOptionalRef writes the presence byte Asset.reference needs
// (0 for absent, 1 followed by the bare Ref encoding for present). This
// wraps encodeRef; it is not part of the Ref wire form itself.
func encodeOptionalRef(buf *bytes.Buffer, r *Ref) {
	if r == nil {
		buf.WriteByte(0)
		return
	}
	buf.WriteByte(1)
	encodeRef(buf, *r)
}

func decodeOptionalRef(r *bytes.Reader) (*Ref, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, decodeErrorf("truncated ref tag")
	}
	if tag == 0 {
		return nil, nil
	}
	ref, err := decodeRef(r)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// encodeType writes a length-prefixed ASCII tag literal ("Discrete",
// "Binary", "Fractional"), followed by a precision byte when Fractional.
func encodeType(buf *bytes.Buffer, t Type) {
	switch t.Tag {
	case TypeDiscrete:
		encodeString(buf, "Discrete")
	case TypeBinary:
		encodeString(buf, "Binary")
	case TypeFractional:
		encodeString(buf, "Fractional")
		buf.WriteByte(t.Precision)
	}
}

func decodeType(r *bytes.Reader) (Type, error) {
	s, err := decodeString(r)
	if err != nil {
		return Type{}, err
	}
	switch s {
	case "Discrete":
		return Discrete(), nil
	case "Binary":
		return Binary(), nil
	case "Fractional":
		p, err := r.ReadByte()
		if err != nil {
			return Type{}, decodeErrorf("truncated fractional precision")
		}
		if p < 1 || p > 7 {
			return Type{}, decodeErrorf("fractional precision %d out of range [1,7]", p)
		}
		return Fractional(p), nil
	default:
		return Type{}, decodeErrorf("unknown asset type tag %q", s)
	}
}

// encodeHoldings writes uint64(len) followed by (holder, balance) pairs
// in ascending holder order. Ordering is mandatory: it is what makes two
// holdings with identical content encode to identical bytes regardless
// of Go map iteration order.
func encodeHoldings(buf *bytes.Buffer, h Holdings) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(h)))
	buf.Write(lenBuf[:])
	for _, holder := range h.sorted() {
		encodeHolder(buf, holder)
		encodeBalance(buf, h[holder])
	}
}

func decodeHoldings(r *bytes.Reader) (Holdings, error) {
	var lenBuf [8]byte
	if _, err := readFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint64(lenBuf[:])
	if n > math.MaxInt32 {
		return nil, decodeErrorf("holdings length %d implausibly large", n)
	}
	out := make(Holdings, n)
	for i := uint64(0); i < n; i++ {
		holder, err := decodeHolder(r)
		if err != nil {
			return nil, err
		}
		bal, err := decodeBalance(r)
		if err != nil {
			return nil, err
		}
		out[holder] = bal
	}
	return out, nil
}

func encodeMetadata(buf *bytes.Buffer, md map[string]string) {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(keys)))
	buf.Write(lenBuf[:])
	for _, k := range keys {
		encodeString(buf, k)
		encodeString(buf, md[k])
	}
}

func decodeMetadata(r *bytes.Reader) (map[string]string, error) {
	var lenBuf [2]byte
	if _, err := readFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	out := make(map[string]string, n)
	for i := uint16(0); i < n; i++ {
		k, err := decodeString(r)
		if err != nil {
			return nil, err
		}
		v, err := decodeString(r)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Encode serializes a to its authoritative binary form. Fields are
// written in declaration order: name, issuer, issuedOn, supply,
// holdings, reference, assetType, address, metadata. SupplyInitial is
// not part of the wire form; Decode recomputes it from the decoded
// Supply and holdings.
func Encode(a Asset) []byte {
	var buf bytes.Buffer
	encodeString(&buf, a.Name)
	encodeAddress(&buf, a.Issuer)
	encodeTime(&buf, a.IssuedOn)
	encodeBalance(&buf, a.Supply)
	encodeHoldings(&buf, a.Holdings)
	encodeOptionalRef(&buf, a.Reference)
	encodeType(&buf, a.Type)
	encodeAddress(&buf, a.Address)
	encodeMetadata(&buf, a.Metadata)
	return buf.Bytes()
}

// Decode is Encode's inverse. Since SupplyInitial is not part of the
// wire form, the decoded Asset's SupplyInitial is set equal to Supply +
// circulation computed from holdings, which is exact for any asset that
// round-trips through Encode (see DESIGN.md).
func Decode(data []byte) (Asset, error) {
	r := bytes.NewReader(data)
	name, err := decodeString(r)
	if err != nil {
		return Asset{}, err
	}
	issuer, err := decodeAddress(r, KindAccount)
	if err != nil {
		return Asset{}, err
	}
	issuedOn, err := decodeTime(r)
	if err != nil {
		return Asset{}, err
	}
	supply, err := decodeBalance(r)
	if err != nil {
		return Asset{}, err
	}
	holdings, err := decodeHoldings(r)
	if err != nil {
		return Asset{}, err
	}
	ref, err := decodeOptionalRef(r)
	if err != nil {
		return Asset{}, err
	}
	typ, err := decodeType(r)
	if err != nil {
		return Asset{}, err
	}
	address, err := decodeAddress(r, KindAsset)
	if err != nil {
		return Asset{}, err
	}
	metadata, err := decodeMetadata(r)
	if err != nil {
		return Asset{}, err
	}
	if r.Len() != 0 {
		return Asset{}, decodeErrorf("%d trailing bytes after asset", r.Len())
	}

	a := Asset{
		Name:      name,
		Issuer:    issuer,
		IssuedOn:  issuedOn,
		Supply:    supply,
		Holdings:  holdings,
		Reference: ref,
		Type:      typ,
		Address:   address,
		Metadata:  metadata,
	}
	a.SupplyInitial = supply + holdings.sum()
	return a, nil
}
