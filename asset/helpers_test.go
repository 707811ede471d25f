package asset

import (
	"bytes"
	"time"
)

func addr(kind Kind, b byte) Address {
	var raw [AddrSize]byte
	raw[AddrSize-1] = b
	return Address{Kind: kind, Bytes: raw}
}

func accountHolder(b byte) Holder {
	return NewAccountHolder(addr(KindAccount, b))
}

func newTestAsset(supply Balance, typ Type) Asset {
	issuer := addr(KindAccount, 0xAA)
	assetAddr := addr(KindAsset, 0x01)
	return CreateAsset("Gold", issuer, supply, nil, typ, time.Unix(0, 0).UTC(), assetAddr, nil)
}

func testTime() time.Time {
	return time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
}

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
