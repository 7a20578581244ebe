package diplomacy

import "testing"

// TestDSON_FormatParseRoundTrip covers every DSON order shape from both
// directions: format then parse back, and parse the canonical string
// directly, checked against the same expected DSONOrder.
func TestDSON_FormatParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		want DSONOrder
	}{
		{"hold", "A vie H", DSONOrder{Type: DSONHold, UnitType: Army, Location: "vie"}},
		{"move", "A bud - rum", DSONOrder{Type: DSONMove, UnitType: Army, Location: "bud", Target: "rum"}},
		{"fleet move", "F tri - adr", DSONOrder{Type: DSONMove, UnitType: Fleet, Location: "tri", Target: "adr"}},
		{"support hold", "A tyr S A vie H", DSONOrder{Type: DSONSupportHold, UnitType: Army, Location: "tyr", AuxUnitType: Army, AuxLocation: "vie"}},
		{"support move", "A gal S A bud - rum", DSONOrder{Type: DSONSupportMove, UnitType: Army, Location: "gal", AuxUnitType: Army, AuxLocation: "bud", AuxTarget: "rum"}},
		{"convoy", "F mao C A bre - spa", DSONOrder{Type: DSONConvoy, UnitType: Fleet, Location: "mao", AuxUnitType: Army, AuxLocation: "bre", AuxTarget: "spa"}},
		{"fleet move split coast", "F nrg - stp/nc", DSONOrder{Type: DSONMove, UnitType: Fleet, Location: "nrg", Target: "stp", TargetCoast: NorthCoast}},
		{"retreat move", "A vie R boh", DSONOrder{Type: DSONRetreat, UnitType: Army, Location: "vie", Target: "boh"}},
		{"disband", "F tri D", DSONOrder{Type: DSONDisband, UnitType: Fleet, Location: "tri"}},
		{"fleet retreat with coast", "F stp/nc R nwy", DSONOrder{Type: DSONRetreat, UnitType: Fleet, Location: "stp", Coast: NorthCoast, Target: "nwy"}},
		{"build army", "A vie B", DSONOrder{Type: DSONBuild, UnitType: Army, Location: "vie"}},
		{"build fleet split coast", "F stp/sc B", DSONOrder{Type: DSONBuild, UnitType: Fleet, Location: "stp", Coast: SouthCoast}},
		{"waive", "W", DSONOrder{Type: DSONWaive}},
		{"support fleet hold", "A tyr S F tri H", DSONOrder{Type: DSONSupportHold, UnitType: Army, Location: "tyr", AuxUnitType: Fleet, AuxLocation: "tri"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseDSON(tt.text)
			if err != nil {
				t.Fatalf("ParseDSON(%q): %v", tt.text, err)
			}
			if len(parsed) != 1 {
				t.Fatalf("expected 1 order, got %d", len(parsed))
			}
			assertDSONOrderEqual(t, tt.want, parsed[0])

			formatted := FormatDSON([]DSONOrder{tt.want})
			if formatted != tt.text {
				t.Errorf("FormatDSON: got %q, want %q", formatted, tt.text)
			}

			reparsed, err := ParseDSON(formatted)
			if err != nil {
				t.Fatalf("re-ParseDSON(%q): %v", formatted, err)
			}
			assertDSONOrderEqual(t, tt.want, reparsed[0])
		})
	}
}

func TestDSON_MultipleOrders(t *testing.T) {
	text := "A vie - tri ; A bud - ser ; F tri - alb"
	want := []DSONOrder{
		{Type: DSONMove, UnitType: Army, Location: "vie", Target: "tri"},
		{Type: DSONMove, UnitType: Army, Location: "bud", Target: "ser"},
		{Type: DSONMove, UnitType: Fleet, Location: "tri", Target: "alb"},
	}

	orders, err := ParseDSON(text)
	if err != nil {
		t.Fatalf("ParseDSON error: %v", err)
	}
	if len(orders) != len(want) {
		t.Fatalf("count: got %d, want %d", len(orders), len(want))
	}
	for i := range want {
		assertDSONOrderEqual(t, want[i], orders[i])
	}
	if got := FormatDSON(orders); got != text {
		t.Errorf("FormatDSON: got %q, want %q", got, text)
	}
}

func TestParseDSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid unit type", "X vie H"},
		{"too short", "A"},
		{"missing action", "A vie"},
		{"bad province", "A vien H"},
		{"bad move target", "A vie - xxxx"},
		{"support too short", "A gal S A"},
		{"convoy no dash", "F mao C A bre = spa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDSON(tt.input)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseDSON_EmptyInput(t *testing.T) {
	orders, err := ParseDSON("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected 0 orders, got %d", len(orders))
	}
}

// TestParseDSONToOrders_FeedsResolve is the codec's real exercise: orders
// submitted as DSON text for one power, bridged straight into Resolve
// alongside orders built directly, same as cmd/adjudicate does.
func TestParseDSONToOrders_FeedsResolve(t *testing.T) {
	m := StandardMap()
	gs := stateWith(
		Unit{Army, France, "par", NoCoast},
		Unit{Army, France, "mar", NoCoast},
		Unit{Army, Germany, "bur", NoCoast},
	)

	franceOrders, err := ParseDSONToOrders("A par - bur ; A mar S A par - bur", France)
	if err != nil {
		t.Fatalf("ParseDSONToOrders: %v", err)
	}
	germanyOrders, err := ParseDSONToOrders("A bur H", Germany)
	if err != nil {
		t.Fatalf("ParseDSONToOrders: %v", err)
	}

	orders := append(franceOrders, germanyOrders...)
	results, dislodged, err := Resolve(orders, gs, m)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := resultFor(results, "par"); got != ResultSucceeded {
		t.Errorf("par: got %v, want succeeded", got)
	}
	if len(dislodged) != 1 || dislodged[0].DislodgedFrom != "bur" {
		t.Errorf("expected bur dislodged, got %+v", dislodged)
	}
}

// TestDSON_OrderConversions covers the Order/RetreatOrder/BuildOrder <->
// DSONOrder bridges that feed cmd/adjudicate's "executed_dson" output and
// ParseDSONToOrders.
func TestDSON_OrderConversions(t *testing.T) {
	move := Order{UnitType: Army, Power: Austria, Location: "bud", Type: OrderMove, Target: "rum"}
	if got := OrderToDSON(move); got.Type != DSONMove || got.Target != "rum" {
		t.Errorf("OrderToDSON(move): got %+v", got)
	}
	back := DSONToOrder(DSONOrder{Type: DSONMove, UnitType: Army, Location: "bud", Target: "rum"}, Austria)
	if back.Type != OrderMove || back.Power != Austria || back.Target != "rum" {
		t.Errorf("DSONToOrder: got %+v", back)
	}

	retreat := RetreatOrder{UnitType: Fleet, Power: England, Location: "tri", Type: RetreatDisband}
	if got := RetreatOrderToDSON(retreat); got.Type != DSONDisband {
		t.Errorf("RetreatOrderToDSON(disband): got %+v", got)
	}
	retreatBack := DSONToRetreatOrder(DSONOrder{Type: DSONRetreat, UnitType: Army, Location: "vie", Target: "boh"}, Austria)
	if retreatBack.Type != RetreatMove || retreatBack.Target != "boh" {
		t.Errorf("DSONToRetreatOrder: got %+v", retreatBack)
	}

	build := BuildOrder{Power: Russia, Type: BuildUnit, UnitType: Fleet, Location: "stp", Coast: SouthCoast}
	if got := BuildOrderToDSON(build); got.Type != DSONBuild || got.Coast != SouthCoast {
		t.Errorf("BuildOrderToDSON: got %+v", got)
	}
	buildBack := DSONToBuildOrder(DSONOrder{Type: DSONBuild, UnitType: Fleet, Location: "stp", Coast: SouthCoast}, Russia)
	if buildBack.Type != BuildUnit || buildBack.Coast != SouthCoast {
		t.Errorf("DSONToBuildOrder: got %+v", buildBack)
	}
}

func FuzzDSON_RoundTrip(f *testing.F) {
	f.Add("A vie H")
	f.Add("A bud - rum")
	f.Add("F nrg - stp/nc")
	f.Add("A gal S A bud - rum")
	f.Add("A tyr S A vie H")
	f.Add("F mao C A bre - spa")
	f.Add("A vie R boh")
	f.Add("F tri D")
	f.Add("A vie B")
	f.Add("F stp/sc B")
	f.Add("W")
	f.Add("A vie - tri ; A bud - ser ; F tri - alb")

	f.Fuzz(func(t *testing.T, dson string) {
		orders, err := ParseDSON(dson)
		if err != nil {
			return
		}

		formatted := FormatDSON(orders)
		orders2, err := ParseDSON(formatted)
		if err != nil {
			t.Fatalf("second parse failed: %v (formatted=%q)", err, formatted)
		}

		formatted2 := FormatDSON(orders2)
		if formatted != formatted2 {
			t.Fatalf("round-trip not stable:\nfirst:  %s\nsecond: %s", formatted, formatted2)
		}
	})
}

// assertDSONOrderEqual compares two DSONOrders field by field.
func assertDSONOrderEqual(t *testing.T, want, got DSONOrder) {
	t.Helper()
	if want.Type != got.Type {
		t.Errorf("Type: want %v, got %v", want.Type, got.Type)
	}
	if want.UnitType != got.UnitType {
		t.Errorf("UnitType: want %v, got %v", want.UnitType, got.UnitType)
	}
	if want.Location != got.Location {
		t.Errorf("Location: want %q, got %q", want.Location, got.Location)
	}
	if want.Coast != got.Coast {
		t.Errorf("Coast: want %q, got %q", want.Coast, got.Coast)
	}
	if want.Target != got.Target {
		t.Errorf("Target: want %q, got %q", want.Target, got.Target)
	}
	if want.TargetCoast != got.TargetCoast {
		t.Errorf("TargetCoast: want %q, got %q", want.TargetCoast, got.TargetCoast)
	}
	if want.AuxUnitType != got.AuxUnitType {
		t.Errorf("AuxUnitType: want %v, got %v", want.AuxUnitType, got.AuxUnitType)
	}
	if want.AuxLocation != got.AuxLocation {
		t.Errorf("AuxLocation: want %q, got %q", want.AuxLocation, got.AuxLocation)
	}
	if want.AuxCoast != got.AuxCoast {
		t.Errorf("AuxCoast: want %q, got %q", want.AuxCoast, got.AuxCoast)
	}
	if want.AuxTarget != got.AuxTarget {
		t.Errorf("AuxTarget: want %q, got %q", want.AuxTarget, got.AuxTarget)
	}
	if want.AuxTargetCoast != got.AuxTargetCoast {
		t.Errorf("AuxTargetCoast: want %q, got %q", want.AuxTargetCoast, got.AuxTargetCoast)
	}
}
