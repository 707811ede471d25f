package asset

// Holdings maps a Holder to its Balance. The invariants kept by
// CirculateSupply and TransferHoldings:
//  1. no entry has balance 0 (zero entries are pruned immediately)
//  2. no entry is negative
//  3. the sum of all balances never exceeds the owning asset's
//     supplyInitial
//
// Preallocate enforces only (1): it drops zero entries and checks
// neither sign nor total.
type Holdings map[Holder]Balance

// clone returns a shallow copy of h, safe for a caller to mutate without
// affecting the original map.
func (h Holdings) clone() Holdings {
	out := make(Holdings, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// sum returns the total of all balances in h.
func (h Holdings) sum() Balance {
	var total Balance
	for _, v := range h {
		total += v
	}
	return total
}

// sorted returns the holders of h in ascending (tag, address bytes)
// order, the ordering the binary codec requires for determinism.
func (h Holdings) sorted() []Holder {
	out := make([]Holder, 0, len(h))
	for k := range h {
		out = append(out, k)
	}
	// insertion sort is fine here: holdings sets are small per asset and
	// this keeps the dependency surface to the standard library only
	// where sort.Slice would otherwise need a closure allocation on
	// every encode call.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Balance returns the holder's balance, or (0, false) if h has no entry
// for it. A stored zero balance never occurs, so the boolean alone
// disambiguates "no entry" from "zero".
func (h Holdings) Balance(holder Holder) (Balance, bool) {
	b, ok := h[holder]
	return b, ok
}

// circulateSupply moves amount units between the asset's uncirculated
// supply pool and holder's balance. A positive amount
// moves units into circulation (supply decreases, holder's balance
// increases); a negative amount reverses that. The resulting Asset is
// returned unchanged from a on failure.
func circulateSupply(a Asset, holder Holder, amount Balance) (Asset, error) {
	if a.Supply < amount {
		return a, &InsufficientSupply{Asset: a.Address, Supply: a.Supply}
	}

	next := a
	next.Holdings = a.Holdings.clone()
	next.Supply = a.Supply - amount

	newBal := next.Holdings[holder] + amount
	if newBal < 0 {
		return a, &InsufficientSupply{Asset: a.Address, Supply: a.Supply}
	}
	if next.Supply < 0 || next.Supply > a.SupplyInitial {
		return a, &InsufficientSupply{Asset: a.Address, Supply: a.Supply}
	}

	if newBal == 0 {
		delete(next.Holdings, holder)
	} else {
		next.Holdings[holder] = newBal
	}
	return next, nil
}

// CirculateSupply is the public entry point for circulateSupply.
func CirculateSupply(a Asset, holder Holder, amount Balance) (Asset, error) {
	return circulateSupply(a, holder, amount)
}

// TransferHoldings moves amount units of a's holdings from one holder to
// another, implemented as a debit-then-credit pair of circulations with
// net-zero supply impact.
func TransferHoldings(a Asset, from, to Holder, amount Balance) (Asset, error) {
	if from == to {
		return a, &SelfTransfer{Holder: from}
	}
	bal, ok := a.Holdings.Balance(from)
	if !ok {
		return a, &HolderDoesNotExist{Holder: from}
	}
	if amount < 0 || amount > bal {
		return a, &InsufficientHoldings{Holder: from, Balance: bal}
	}

	debited, err := circulateSupply(a, from, -amount)
	if err != nil {
		return a, err
	}
	credited, err := circulateSupply(debited, to, amount)
	if err != nil {
		return a, err
	}
	return credited, nil
}

// Preallocate replaces a's holdings wholesale with the given map. It
// does not adjust Supply; this is the only path that sets holdings
// without a corresponding supply decrement, and is permitted solely at
// asset creation, not ongoing circulation. Zero-valued entries in
// holdings are dropped to preserve the no-zero-entries invariant.
func Preallocate(a Asset, holdings Holdings) Asset {
	next := a
	next.Holdings = make(Holdings, len(holdings))
	for h, bal := range holdings {
		if bal == 0 {
			continue
		}
		next.Holdings[h] = bal
	}
	return next
}
