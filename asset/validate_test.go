package asset

import "testing"

func TestValidateAssetHoldsForConservedSupply(t *testing.T) {
	a := newTestAsset(1000, Discrete())
	alice := accountHolder(1)
	a = Preallocate(a, Holdings{alice: 1000})
	a.Supply = 0
	if !ValidateAsset(a) {
		t.Fatalf("expected a conserved-supply asset to validate")
	}
}

func TestValidateAssetRejectsOverCirculation(t *testing.T) {
	a := newTestAsset(1000, Discrete())
	alice := accountHolder(1)
	// Preallocate beyond supply_initial without adjusting supply: the
	// one documented way to break the invariant.
	a = Preallocate(a, Holdings{alice: 2000})
	if ValidateAsset(a) {
		t.Fatalf("expected over-circulated asset to fail validation")
	}
}

func TestValidateAssetBinaryRejectsNonBooleanHolding(t *testing.T) {
	a := newTestAsset(1, Binary())
	alice := accountHolder(1)
	a = Preallocate(a, Holdings{alice: 2})
	if ValidateAsset(a) {
		t.Fatalf("expected Binary asset with holding > 1 to fail validation")
	}
}

func TestCirculationMatchesHoldingsSum(t *testing.T) {
	a := newTestAsset(500, Discrete())
	alice := accountHolder(1)
	bob := accountHolder(2)

	a, err := CirculateSupply(a, alice, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err = CirculateSupply(a, bob, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Circulation(a); got != 250 {
		t.Fatalf("circulation = %d, want 250", got)
	}
	if got := a.Holdings.sum(); got != Circulation(a) {
		t.Fatalf("holdings sum %d != circulation %d", got, Circulation(a))
	}
}

func TestBalanceOfAbsentHolderIsNone(t *testing.T) {
	a := newTestAsset(100, Discrete())
	alice := accountHolder(1)
	if _, ok := BalanceOf(a, alice); ok {
		t.Fatalf("expected no entry for a holder never allocated to")
	}
}
