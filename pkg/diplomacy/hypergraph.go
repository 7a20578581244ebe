package diplomacy

// OrderRef is a single order placed into the turn's hypergraph, with its
// province references pre-resolved to dense indices and its structural
// legality already decided. A Move/Support/Convoy order is a hyperedge
// touching its own province, its target, and (for support/convoy) an aux
// unit elsewhere on the board; Attackers and SupportsOf are the derived
// indexes over that hyperedge set that the encoder queries instead of
// rescanning the order list.
type OrderRef struct {
	Order Order

	ProvIdx      int16
	TargetIdx    int16
	AuxLocIdx    int16
	AuxTargetIdx int16

	// Void is true when a support or convoy order's aux reference does not
	// match the board's orders (see voidCheck). A void
	// order behaves as a Hold and never participates in the constraint
	// network as anything but an immovable unit.
	Void       bool
	VoidReason string
}

// Hypergraph is the turn's order set indexed for constant-time lookup by
// province, the shape component C's encoder is built against.
type Hypergraph struct {
	Orders []OrderRef
	lookup [ProvinceCount]int16
}

// BuildHypergraph resolves every order's province references and flags
// structurally void orders. Orders are assumed pre-validated by
// ValidateAndDefaultOrders; BuildHypergraph only catches the aux-reference
// problems that validation does not (a support whose target power later
// turns out to already have vacated is a resolution question, not a
// structural one, so it is left to the encoder).
func BuildHypergraph(orders []Order, gs *GameState, m *DiplomacyMap) *Hypergraph {
	h := &Hypergraph{Orders: make([]OrderRef, len(orders))}
	for i := range h.lookup {
		h.lookup[i] = -1
	}

	for i, o := range orders {
		ref := OrderRef{
			Order:        o,
			ProvIdx:      idxOf(m, o.Location),
			TargetIdx:    idxOf(m, o.Target),
			AuxLocIdx:    idxOf(m, o.AuxLoc),
			AuxTargetIdx: idxOf(m, o.AuxTarget),
		}
		h.Orders[i] = ref
		if ref.ProvIdx >= 0 {
			h.lookup[ref.ProvIdx] = int16(i)
		}
	}

	for i := range h.Orders {
		h.voidCheck(&h.Orders[i], gs, m)
	}
	return h
}

func idxOf(m *DiplomacyMap, prov string) int16 {
	if prov == "" {
		return -1
	}
	return int16(m.ProvinceIndex(prov))
}

// voidCheck flags support/convoy orders whose aux reference does not name a
// live order on the board: no order at the aux province, or (for a support
// of a move, or a convoy) the aux unit is not moving to the claimed target.
// The aux unit's type is not compared with the order's AuxUnitType.
func (h *Hypergraph) voidCheck(ref *OrderRef, gs *GameState, m *DiplomacyMap) {
	switch ref.Order.Type {
	case OrderSupport:
		aux := h.OrderAt(ref.AuxLocIdx)
		if aux == nil {
			ref.Void = true
			ref.VoidReason = "no order at supported unit's province"
			return
		}
		if ref.AuxTargetIdx >= 0 && !(aux.Order.Type == OrderMove && aux.TargetIdx == ref.AuxTargetIdx) {
			ref.Void = true
			ref.VoidReason = "supported unit is not moving to the claimed target"
		}
	case OrderConvoy:
		aux := h.OrderAt(ref.AuxLocIdx)
		if aux == nil || aux.Order.Type != OrderMove || aux.TargetIdx != ref.AuxTargetIdx {
			ref.Void = true
			ref.VoidReason = "convoyed unit is not moving to the claimed target"
		}
	}
}

// OrderAt returns the order at the given dense province index, or nil.
func (h *Hypergraph) OrderAt(provIdx int16) *OrderRef {
	if provIdx < 0 {
		return nil
	}
	idx := h.lookup[provIdx]
	if idx < 0 {
		return nil
	}
	return &h.Orders[idx]
}

// OrderAtLoc returns the order at the given province ID, or nil.
func (h *Hypergraph) OrderAtLoc(m *DiplomacyMap, loc string) *OrderRef {
	return h.OrderAt(idxOf(m, loc))
}

// Attackers returns every non-void Move order whose target is targetIdx.
func (h *Hypergraph) Attackers(targetIdx int16) []*OrderRef {
	var out []*OrderRef
	for i := range h.Orders {
		o := &h.Orders[i]
		if o.Void || o.Order.Type != OrderMove || o.TargetIdx != targetIdx {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SupportsOf returns every non-void Support order backing the hold at
// holdIdx (if targetIdx is -1) or the move holdIdx -> targetIdx.
func (h *Hypergraph) SupportsOf(holdIdx, targetIdx int16) []*OrderRef {
	var out []*OrderRef
	for i := range h.Orders {
		o := &h.Orders[i]
		if o.Void || o.Order.Type != OrderSupport {
			continue
		}
		if o.AuxLocIdx != holdIdx {
			continue
		}
		if o.AuxTargetIdx != targetIdx {
			continue
		}
		out = append(out, o)
	}
	return out
}
