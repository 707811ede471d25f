package asset

import "fmt"

// Error is the closed sum of errors the asset algebra can return. It is
// never used for control flow via panic/recover: every mutating
// operation returns one as an ordinary value, and the pre-call Asset is
// left untouched on failure.
type Error interface {
	error
	assetError()
}

// InsufficientHoldings is returned when a transfer amount exceeds the
// source holder's balance.
type InsufficientHoldings struct {
	Holder  Holder
	Balance Balance
}

func (e *InsufficientHoldings) Error() string {
	return fmt.Sprintf("asset: insufficient holdings for %s: have %d", e.Holder, e.Balance)
}
func (*InsufficientHoldings) assetError() {}

// InsufficientSupply is returned when a circulation would drive the
// asset's remaining supply negative.
type InsufficientSupply struct {
	Asset  Address
	Supply Balance
}

func (e *InsufficientSupply) Error() string {
	return fmt.Sprintf("asset: insufficient supply for %s: have %d", e.Asset.Hex(), e.Supply)
}
func (*InsufficientSupply) assetError() {}

// CirculatorIsNotIssuer is a policy-hook error: the pure algebra never
// raises it itself, but callers enforcing an issuer-only circulation
// policy use this variant to report the violation.
type CirculatorIsNotIssuer struct {
	Holder Holder
	Asset  Address
}

func (e *CirculatorIsNotIssuer) Error() string {
	return fmt.Sprintf("asset: %s is not the issuer of %s", e.Holder, e.Asset.Hex())
}
func (*CirculatorIsNotIssuer) assetError() {}

// SelfTransfer is returned when a transfer's from and to holders match.
type SelfTransfer struct {
	Holder Holder
}

func (e *SelfTransfer) Error() string {
	return fmt.Sprintf("asset: self transfer for %s", e.Holder)
}
func (*SelfTransfer) assetError() {}

// HolderDoesNotExist is returned when a transfer's source holder has no
// holdings entry.
type HolderDoesNotExist struct {
	Holder Holder
}

func (e *HolderDoesNotExist) Error() string {
	return fmt.Sprintf("asset: holder does not exist: %s", e.Holder)
}
func (*HolderDoesNotExist) assetError() {}

// DecodeError reports a malformed or truncated wire/JSON form. It is
// deliberately not an Error: decode failures happen outside the pure
// algebra, at the codec boundary.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "asset: decode: " + e.Reason }

func decodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}
