package core

import "github.com/shopspring/decimal"

// Aggregate mutations. Every method that can touch the parts collection
// re-derives PartsTotal and FinalPrice from scratch before returning, so
// the invariant FinalPrice == ServicesTotal + Σ(part sale line totals)
// holds after every call. The recompute is always a full pass over the
// current parts slice, never an incremental adjustment — incremental
// totals drift under out-of-order mutations.

// recomputeTotals re-derives the sale-side totals from the parts collection.
func (o *ServiceOrder) recomputeTotals() {
	partsTotal := decimal.Zero
	for _, p := range o.Parts {
		partsTotal = partsTotal.Add(p.LineRevenue())
	}
	o.PartsTotal = RoundCurrency(partsTotal)
	o.FinalPrice = RoundCurrency(o.ServicesTotal.Add(o.PartsTotal))
}

// AddPart appends a part and recomputes totals.
func (o *ServiceOrder) AddPart(p Part) {
	o.Parts = append(o.Parts, p)
	o.recomputeTotals()
}

// UpdatePart replaces the part with a matching ID in place, preserving its
// position. An unknown ID is a silent no-op — the totals are still
// recomputed, so the call is harmless either way.
func (o *ServiceOrder) UpdatePart(p Part) {
	for i := range o.Parts {
		if o.Parts[i].ID == p.ID {
			o.Parts[i] = p
			break
		}
	}
	o.recomputeTotals()
}

// RemovePart filters out the part with the given ID and recomputes totals.
// Unknown IDs are a no-op.
func (o *ServiceOrder) RemovePart(partID string) {
	kept := o.Parts[:0]
	for _, p := range o.Parts {
		if p.ID != partID {
			kept = append(kept, p)
		}
	}
	o.Parts = kept
	o.recomputeTotals()
}

// SetPartStatus updates only the status of the matching part. Status can't
// change the totals, but the recompute runs anyway to keep every parts
// mutation on the same code path.
func (o *ServiceOrder) SetPartStatus(partID string, status PartStatus) {
	for i := range o.Parts {
		if o.Parts[i].ID == partID {
			o.Parts[i].Status = status
			break
		}
	}
	o.recomputeTotals()
}

// AddLaborAllocation appends a labor allocation. Labor is cost-side only:
// neither PartsTotal nor FinalPrice moves.
func (o *ServiceOrder) AddLaborAllocation(l LaborAllocation) {
	o.LaborAllocations = append(o.LaborAllocations, l)
}

// RemoveLaborAllocation removes the allocation with the given ID.
// Unknown IDs are a no-op.
func (o *ServiceOrder) RemoveLaborAllocation(allocationID string) {
	kept := o.LaborAllocations[:0]
	for _, l := range o.LaborAllocations {
		if l.ID != allocationID {
			kept = append(kept, l)
		}
	}
	o.LaborAllocations = kept
}

// SetStatus replaces the production stage. Backward transitions are
// allowed — rework routinely sends an order to an earlier stage.
func (o *ServiceOrder) SetStatus(status OrderStatus) {
	o.Status = status
}

// SetServicesTotal replaces the manually entered labor sale quote and
// re-derives FinalPrice.
func (o *ServiceOrder) SetServicesTotal(total decimal.Decimal) {
	o.ServicesTotal = total
	o.recomputeTotals()
}

// AddNote appends a free-text note to the order history.
func (o *ServiceOrder) AddNote(note string) {
	o.Notes = append(o.Notes, note)
}

// Clone returns a deep copy safe to hand to another goroutine while the
// original keeps mutating.
func (o *ServiceOrder) Clone() *ServiceOrder {
	cp := *o
	cp.Parts = append([]Part(nil), o.Parts...)
	cp.LaborAllocations = append([]LaborAllocation(nil), o.LaborAllocations...)
	cp.Notes = append([]string(nil), o.Notes...)
	return &cp
}
