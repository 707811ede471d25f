package asset

import (
	"encoding/json"
	"fmt"
	"time"
)

// The JSON codec is used for genesis files, operator inspection, and
// persistence via SaveAsset/LoadAsset. It is not consensus-critical: the
// binary codec (codec_binary.go) is authoritative.

// jsonAsset mirrors Asset's field names for JSON. One field is carried
// here that the binary form omits: supplyInitial. Without it,
// ValidateAsset over a file loaded from disk could only ever check
// against whatever total the file itself implies, which is circular.
// The binary wire form (codec_binary.go) omits it, since that form is
// consensus-critical and kept minimal.
type jsonAsset struct {
	Name          string            `json:"name"`
	Issuer        string            `json:"issuer"`
	IssuedOn      time.Time         `json:"issuedOn"`
	Supply        int64             `json:"supply"`
	SupplyInitial *int64            `json:"supplyInitial,omitempty"`
	Holdings      map[string]int64  `json:"holdings"`
	Reference     *string           `json:"reference,omitempty"`
	AssetType     jsonAssetType     `json:"assetType"`
	Address       string            `json:"address"`
	Metadata      map[string]string `json:"metadata"`
}

// jsonAssetType encodes the AssetType tagged union as
// {"tag": "Discrete"|"Binary"|"Fractional", "contents": null | precision+1}.
// The +1 is historical: contents is Type.Precision plus one, so
// Fractional(2) is written as 3, and decoding subtracts one again.
type jsonAssetType struct {
	Tag      string `json:"tag"`
	Contents *int   `json:"contents"`
}

// MarshalJSON renders a as its JSON form. Holder variant information
// (the Account/Contract tag) is lost: both variants serialize as a bare
// address string, matching the binary codec's tagless wire form.
func MarshalJSON(a Asset) ([]byte, error) {
	holdings := make(map[string]int64, len(a.Holdings))
	for h, b := range a.Holdings {
		holdings[h.Address().Hex()] = int64(b)
	}

	var ref *string
	if a.Reference != nil {
		s := a.Reference.String()
		ref = &s
	}

	supplyInitial := int64(a.SupplyInitial)
	ja := jsonAsset{
		Name:          a.Name,
		Issuer:        a.Issuer.Hex(),
		IssuedOn:      a.IssuedOn,
		Supply:        int64(a.Supply),
		SupplyInitial: &supplyInitial,
		Holdings:      holdings,
		Reference:     ref,
		AssetType:     marshalType(a.Type),
		Address:       a.Address.Hex(),
		Metadata:      a.Metadata,
	}
	return json.MarshalIndent(ja, "", "  ")
}

func marshalType(t Type) jsonAssetType {
	switch t.Tag {
	case TypeDiscrete:
		return jsonAssetType{Tag: "Discrete"}
	case TypeBinary:
		return jsonAssetType{Tag: "Binary"}
	case TypeFractional:
		p := int(t.Precision) + 1
		return jsonAssetType{Tag: "Fractional", Contents: &p}
	default:
		return jsonAssetType{Tag: "Discrete"}
	}
}

func unmarshalType(jt jsonAssetType) (Type, error) {
	switch jt.Tag {
	case "Discrete":
		return Discrete(), nil
	case "Binary":
		return Binary(), nil
	case "Fractional":
		if jt.Contents == nil {
			return Type{}, &DecodeError{Reason: "fractional asset type missing contents"}
		}
		precision := *jt.Contents - 1
		if precision < 1 || precision > 7 {
			return Type{}, &DecodeError{Reason: fmt.Sprintf("fractional precision %d out of range [1,7]", precision)}
		}
		return Fractional(uint8(precision)), nil
	default:
		return Type{}, &DecodeError{Reason: fmt.Sprintf("unknown asset type tag %q", jt.Tag)}
	}
}

// UnmarshalJSON is MarshalJSON's inverse. Decoded holders always default
// to the Account variant, since the JSON form never carries the tag.
func UnmarshalJSON(data []byte) (Asset, error) {
	var ja jsonAsset
	if err := json.Unmarshal(data, &ja); err != nil {
		return Asset{}, &DecodeError{Reason: err.Error()}
	}

	issuer, err := ParseAddress(KindAccount, ja.Issuer)
	if err != nil {
		return Asset{}, &DecodeError{Reason: "issuer: " + err.Error()}
	}
	address, err := ParseAddress(KindAsset, ja.Address)
	if err != nil {
		return Asset{}, &DecodeError{Reason: "address: " + err.Error()}
	}
	typ, err := unmarshalType(ja.AssetType)
	if err != nil {
		return Asset{}, err
	}

	var ref *Ref
	if ja.Reference != nil {
		r, ok := ParseRef(*ja.Reference)
		if !ok {
			return Asset{}, &DecodeError{Reason: fmt.Sprintf("unknown ref %q", *ja.Reference)}
		}
		ref = &r
	}

	holdings := make(Holdings, len(ja.Holdings))
	for addrHex, bal := range ja.Holdings {
		addr, err := ParseAddress(KindAccount, addrHex)
		if err != nil {
			return Asset{}, &DecodeError{Reason: "holder: " + err.Error()}
		}
		if bal == 0 {
			continue
		}
		holdings[NewAccountHolder(addr)] = Balance(bal)
	}

	a := Asset{
		Name:      ja.Name,
		Issuer:    issuer,
		IssuedOn:  ja.IssuedOn,
		Supply:    Balance(ja.Supply),
		Holdings:  holdings,
		Reference: ref,
		Type:      typ,
		Address:   address,
		Metadata:  ja.Metadata,
	}
	if ja.SupplyInitial != nil {
		a.SupplyInitial = Balance(*ja.SupplyInitial)
	} else {
		a.SupplyInitial = a.Supply + holdings.sum()
	}
	return a, nil
}
