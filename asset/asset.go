package asset

import "time"

// Asset is the canonical, content-addressed record of a fixed-supply
// on-chain value. Every mutating operation in this package is a pure
// function Asset -> (Asset, error); the input is never mutated in place,
// so callers can safely discard an error and retain the pre-call value.
type Asset struct {
	Name     string
	Issuer   Address // tagged KindAccount
	IssuedOn time.Time

	// SupplyInitial is the fixed total supply fixed at creation and never
	// changed afterward. Tracking
	// it explicitly (rather than trying to recover it from the
	// ever-decreasing Supply field) makes ValidateAsset and Circulation
	// exact instead of approximate.
	SupplyInitial Balance

	// Supply is the *remaining uncirculated* units: SupplyInitial minus
	// everything that has entered circulation so far.
	Supply Balance

	Holdings  Holdings
	Reference *Ref // optional
	Type      Type
	Address   Address // tagged KindAsset, content-addressed at creation
	Metadata  map[string]string
}

// Ref is a symbolic off-chain reference unit.
type Ref uint8

const (
	RefUSD Ref = iota
	RefGBP
	RefEUR
	RefCHF
	RefToken
	RefSecurity
)

func (r Ref) String() string {
	switch r {
	case RefUSD:
		return "USD"
	case RefGBP:
		return "GBP"
	case RefEUR:
		return "EUR"
	case RefCHF:
		return "CHF"
	case RefToken:
		return "Token"
	case RefSecurity:
		return "Security"
	default:
		return "Unknown"
	}
}

// ParseRef recovers a Ref from its wire/JSON string form.
func ParseRef(s string) (Ref, bool) {
	switch s {
	case "USD":
		return RefUSD, true
	case "GBP":
		return RefGBP, true
	case "EUR":
		return RefEUR, true
	case "CHF":
		return RefCHF, true
	case "Token":
		return RefToken, true
	case "Security":
		return RefSecurity, true
	default:
		return 0, false
	}
}

// CreateAsset is the pure constructor for a new Asset: empty holdings,
// Supply and SupplyInitial both set to supply. It performs no validation
// of supply >= 0 or address well-formedness; the caller must pre-validate
// those.
func CreateAsset(
	name string,
	issuer Address,
	supply Balance,
	ref *Ref,
	typ Type,
	issuedOn time.Time,
	address Address,
	metadata map[string]string,
) Asset {
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	return Asset{
		Name:          name,
		Issuer:        issuer,
		IssuedOn:      issuedOn,
		SupplyInitial: supply,
		Supply:        supply,
		Holdings:      make(Holdings),
		Reference:     ref,
		Type:          typ,
		Address:       address,
		Metadata:      md,
	}
}

// ValidateAsset reports whether a's holdings are consistent with its
// fixed total supply: sum(holdings) + supply (remaining) must not exceed
// SupplyInitial, and for Binary assets every holding must be 0 or 1.
func ValidateAsset(a Asset) bool {
	sum := a.Holdings.sum()
	if sum < 0 || a.Supply < 0 {
		return false
	}
	if sum+a.Supply > a.SupplyInitial {
		return false
	}
	if a.Type.Tag == TypeBinary {
		for _, v := range a.Holdings {
			if v != 0 && v != 1 {
				return false
			}
		}
		if a.Supply+sum > 1 {
			return false
		}
	}
	return true
}

// BalanceOf returns the holder's balance in a, or (0, false) if h has no
// entry. A stored zero balance never occurs, so Some(0) is never
// produced: the boolean return distinguishes "no entry" unambiguously.
func BalanceOf(a Asset, h Holder) (Balance, bool) {
	return a.Holdings.Balance(h)
}

// Circulation returns the total amount that has left the uncirculated
// pool so far: SupplyInitial - Supply, which by the Supply invariant
// equals the sum of all current holdings.
func Circulation(a Asset) Balance {
	return a.SupplyInitial - a.Supply
}
