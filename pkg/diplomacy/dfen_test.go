package diplomacy

import (
	"strings"
	"testing"
)

// expectedInitialDFEN is the canonical DFEN for Spring 1901 Movement.
// Units are sorted by power (A,E,F,G,I,R,T) then province alphabetically.
const expectedInitialDFEN = "1901sm/" +
	"Aabud,Aftri,Aavie," +
	"Efedi,Eflon,Ealvp," +
	"Ffbre,Famar,Fapar," +
	"Gaber,Gfkie,Gamun," +
	"Ifnap,Iarom,Iaven," +
	"Ramos,Rfsev,Rfstp.sc,Rawar," +
	"Tfank,Tacon,Tasmy/" +
	"Abud,Atri,Avie,Eedi,Elon,Elvp,Fbre,Fmar,Fpar," +
	"Gber,Gkie,Gmun,Inap,Irom,Iven," +
	"Rmos,Rsev,Rstp,Rwar," +
	"Tank,Tcon,Tsmy," +
	"Nbel,Nbul,Nden,Ngre,Nhol,Nnwy,Npor,Nrum,Nser,Nspa,Nswe,Ntun/-"

func TestDFEN_RoundTrip_InitialState(t *testing.T) {
	original := NewInitialState()
	encoded := EncodeDFEN(original)
	if encoded != expectedInitialDFEN {
		t.Errorf("EncodeDFEN(initial) mismatch\ngot:  %s\nwant: %s", encoded, expectedInitialDFEN)
	}

	decoded, err := DecodeDFEN(encoded)
	if err != nil {
		t.Fatalf("DecodeDFEN failed: %v", err)
	}
	if len(decoded.Units) != 22 || len(decoded.SupplyCenters) != 34 || len(decoded.Dislodged) != 0 {
		t.Fatalf("decoded shape: units=%d scs=%d dislodged=%d", len(decoded.Units), len(decoded.SupplyCenters), len(decoded.Dislodged))
	}

	if reencoded := EncodeDFEN(decoded); reencoded != encoded {
		t.Errorf("round-trip not deterministic\nfirst:  %s\nsecond: %s", encoded, reencoded)
	}
	assertGameStatesEqual(t, original, decoded)
}

// TestDFEN_RoundTrip_NonMovementPhases exercises the retreat and build
// phase encodings together with split-coast provinces and empty-unit
// boards, table-driven instead of one function per phase.
func TestDFEN_RoundTrip_NonMovementPhases(t *testing.T) {
	tests := []struct {
		name        string
		gs          *GameState
		wantPrefix  string
		wantNoDislg bool
	}{
		{
			name: "retreat with dislodgements",
			gs: &GameState{
				Year: 1902, Season: Fall, Phase: PhaseRetreat,
				Units: []Unit{
					{Army, Austria, "bud", NoCoast},
					{Army, Austria, "vie", NoCoast},
					{Fleet, Austria, "tri", NoCoast},
					{Army, Austria, "gre", NoCoast},
				},
				SupplyCenters: map[string]Power{
					"bud": Austria, "gre": Austria, "tri": Austria, "vie": Austria,
					"edi": England, "lon": England, "lvp": England,
					"bre": France, "mar": France, "par": France,
					"ber": Germany, "kie": Germany, "mun": Germany,
					"nap": Italy, "rom": Italy, "ven": Italy,
					"mos": Russia, "sev": Russia, "stp": Russia, "war": Russia,
					"ank": Turkey, "con": Turkey, "smy": Turkey,
					"bel": Neutral, "bul": Neutral, "den": Neutral,
					"hol": Neutral, "nwy": Neutral, "por": Neutral,
					"rum": Neutral, "ser": Neutral, "spa": Neutral,
					"swe": Neutral, "tun": Neutral,
				},
				Dislodged: []DislodgedUnit{
					{Unit: Unit{Army, Austria, "ser", NoCoast}, DislodgedFrom: "ser", AttackerFrom: "bul"},
					{Unit: Unit{Fleet, Russia, "sev", NoCoast}, DislodgedFrom: "sev", AttackerFrom: "bla"},
				},
			},
			wantPrefix: "1902fr/",
		},
		{
			name: "build phase, no dislodged",
			gs: &GameState{
				Year: 1901, Season: Fall, Phase: PhaseBuild,
				Units: []Unit{
					{Army, Austria, "tri", NoCoast},
					{Army, Austria, "rum", NoCoast},
					{Fleet, Austria, "gre", NoCoast},
				},
				SupplyCenters: map[string]Power{
					"bud": Austria, "tri": Austria, "vie": Austria, "rum": Austria, "gre": Austria,
					"edi": England, "lon": England, "lvp": England,
					"bre": France, "mar": France, "par": France,
					"ber": Germany, "kie": Germany, "mun": Germany,
					"nap": Italy, "rom": Italy, "ven": Italy,
					"mos": Russia, "sev": Russia, "stp": Russia, "war": Russia,
					"ank": Turkey, "con": Turkey, "smy": Turkey,
					"bel": Neutral, "bul": Neutral, "den": Neutral,
					"hol": Neutral, "nwy": Neutral, "por": Neutral,
					"ser": Neutral, "spa": Neutral, "swe": Neutral, "tun": Neutral,
				},
			},
			wantPrefix:  "1901fb/",
			wantNoDislg: true,
		},
		{
			name: "split-coast units",
			gs: &GameState{
				Year: 1902, Season: Spring, Phase: PhaseMovement,
				Units: []Unit{
					{Fleet, Russia, "stp", NorthCoast},
					{Fleet, Turkey, "bul", EastCoast},
					{Fleet, France, "spa", SouthCoast},
				},
				SupplyCenters: map[string]Power{"stp": Russia, "bul": Turkey, "spa": France},
			},
			wantPrefix: "1902sm/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeDFEN(tt.gs)
			if !strings.HasPrefix(encoded, tt.wantPrefix) {
				t.Errorf("prefix: got %q, want %q", encoded, tt.wantPrefix)
			}
			if tt.wantNoDislg {
				parts := strings.Split(encoded, "/")
				if parts[3] != "-" {
					t.Errorf("expected no dislodged units, got: %s", parts[3])
				}
			}

			decoded, err := DecodeDFEN(encoded)
			if err != nil {
				t.Fatalf("DecodeDFEN failed: %v", err)
			}
			if reencoded := EncodeDFEN(decoded); reencoded != encoded {
				t.Errorf("round-trip mismatch:\nfirst:  %s\nsecond: %s", encoded, reencoded)
			}
			assertGameStatesEqual(t, tt.gs, decoded)
		})
	}
}

func TestDecodeDFEN_Errors(t *testing.T) {
	tests := []struct {
		name string
		dfen string
	}{
		{"too few sections", "1901sm/units/scs"},
		{"invalid year", "ABCsm/units/scs/-"},
		{"invalid season", "1901xm/units/scs/-"},
		{"invalid phase", "1901sx/units/scs/-"},
		{"invalid power in unit", "1901sm/Xavie/Abud/-"},
		{"invalid unit type", "1901sm/Axvie/Abud/-"},
		{"short phase info", "sm/-/-/-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDFEN(tt.dfen)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecodeDFEN_SpecExample_Retreat(t *testing.T) {
	dfen := "1902fr/" +
		"Aabud,Aavie,Aftri,Aagre," +
		"Efnth,Efnwy,Eabel,Eflon," +
		"Ffmao,Fabur,Fapar,Ffbre," +
		"Gaden,Gamun,Gfkie,Gaber," +
		"Ifnap,Iaven,Iarom," +
		"Ramos,Rawar,Ragal,Rfstp.sc," +
		"Tabul,Tfbla,Tacon,Tasmy,Tfank/" +
		"Abud,Agre,Atri,Avie," +
		"Ebel,Eedi,Elon,Elvp," +
		"Fbre,Fmar,Fpar," +
		"Gber,Gden,Gkie,Gmun," +
		"Inap,Irom,Iven," +
		"Rmos,Rsev,Rstp,Rwar," +
		"Tank,Tbul,Tcon,Tsmy," +
		"Nhol,Nnwy,Npor,Nrum,Nser,Nspa,Nswe,Ntun/" +
		"Aaser<bul,Rfsev<bla"

	gs, err := DecodeDFEN(dfen)
	if err != nil {
		t.Fatalf("DecodeDFEN failed: %v", err)
	}
	if gs.Year != 1902 || gs.Season != Fall || gs.Phase != PhaseRetreat {
		t.Errorf("phase info: got %d %q %q", gs.Year, gs.Season, gs.Phase)
	}
	if len(gs.Units) != 28 || len(gs.Dislodged) != 2 || len(gs.SupplyCenters) != 34 {
		t.Errorf("shape: units=%d dislodged=%d scs=%d", len(gs.Units), len(gs.Dislodged), len(gs.SupplyCenters))
	}

	for _, d := range gs.Dislodged {
		switch d.Unit.Province {
		case "ser":
			if d.Unit.Power != Austria || d.Unit.Type != Army || d.AttackerFrom != "bul" {
				t.Errorf("wrong dislodged ser entry: %+v", d)
			}
		case "sev":
			if d.Unit.Power != Russia || d.Unit.Type != Fleet || d.AttackerFrom != "bla" {
				t.Errorf("wrong dislodged sev entry: %+v", d)
			}
		default:
			t.Errorf("unexpected dislodged province: %s", d.Unit.Province)
		}
	}
}

// TestDFEN_SurvivesResolve decodes a DFEN position, runs it through a full
// Resolve/ApplyResolution turn, and re-encodes the result: the codec is
// exercised end to end by the adjudication core it feeds, not just by
// round-tripping itself.
func TestDFEN_SurvivesResolve(t *testing.T) {
	m := StandardMap()
	dfen := "1901sm/Fapar,Gamun/Fpar,Gmun,Nbur/-"
	gs, err := DecodeDFEN(dfen)
	if err != nil {
		t.Fatalf("DecodeDFEN failed: %v", err)
	}

	orders := []Order{
		{UnitType: Army, Power: France, Location: "par", Type: OrderMove, Target: "bur"},
		{UnitType: Army, Power: Germany, Location: "mun", Type: OrderMove, Target: "bur"},
	}
	results, dislodged, err := Resolve(orders, gs, m)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for _, r := range results {
		if r.Result != ResultBounced {
			t.Errorf("%s: got %v, want bounced", r.Order.Location, r.Result)
		}
	}

	ApplyResolution(gs, m, results, dislodged)
	after := EncodeDFEN(gs)
	if !strings.Contains(after, "Fapar") || !strings.Contains(after, "Gamun") {
		t.Errorf("bounced units should remain in place, got: %s", after)
	}
}

// assertGameStatesEqual compares two game states structurally.
func assertGameStatesEqual(t *testing.T, want, got *GameState) {
	t.Helper()

	if want.Year != got.Year {
		t.Errorf("year: want %d, got %d", want.Year, got.Year)
	}
	if want.Season != got.Season {
		t.Errorf("season: want %q, got %q", want.Season, got.Season)
	}
	if want.Phase != got.Phase {
		t.Errorf("phase: want %q, got %q", want.Phase, got.Phase)
	}
	if len(want.Units) != len(got.Units) {
		t.Errorf("unit count: want %d, got %d", len(want.Units), len(got.Units))
	}
	if len(want.SupplyCenters) != len(got.SupplyCenters) {
		t.Errorf("SC count: want %d, got %d", len(want.SupplyCenters), len(got.SupplyCenters))
	}
	if len(want.Dislodged) != len(got.Dislodged) {
		t.Errorf("dislodged count: want %d, got %d", len(want.Dislodged), len(got.Dislodged))
	}

	for prov, wantPower := range want.SupplyCenters {
		gotPower, ok := got.SupplyCenters[prov]
		if !ok {
			t.Errorf("missing SC %s in decoded", prov)
			continue
		}
		if wantPower != gotPower {
			t.Errorf("SC %s: want %q, got %q", prov, wantPower, gotPower)
		}
	}

	gotUnits := make(map[string]Unit)
	for _, u := range got.Units {
		gotUnits[u.Province] = u
	}
	for _, wu := range want.Units {
		gu, ok := gotUnits[wu.Province]
		if !ok {
			t.Errorf("missing unit at %s in decoded", wu.Province)
			continue
		}
		if wu.Type != gu.Type || wu.Power != gu.Power || wu.Coast != gu.Coast {
			t.Errorf("unit at %s: want %+v, got %+v", wu.Province, wu, gu)
		}
	}

	gotDislodged := make(map[string]DislodgedUnit)
	for _, d := range got.Dislodged {
		gotDislodged[d.Unit.Province] = d
	}
	for _, wd := range want.Dislodged {
		gd, ok := gotDislodged[wd.Unit.Province]
		if !ok {
			t.Errorf("missing dislodged at %s in decoded", wd.Unit.Province)
			continue
		}
		if wd.Unit.Type != gd.Unit.Type || wd.Unit.Power != gd.Unit.Power || wd.AttackerFrom != gd.AttackerFrom {
			t.Errorf("dislodged at %s: want %+v, got %+v", wd.Unit.Province, wd, gd)
		}
	}
}

func FuzzDFEN_RoundTrip(f *testing.F) {
	f.Add(expectedInitialDFEN)
	f.Add("1902fr/Aabud,Tfbla/" +
		"Abud,Atri,Avie,Eedi,Elon,Elvp,Fbre,Fmar,Fpar," +
		"Gber,Gkie,Gmun,Inap,Irom,Iven,Rmos,Rsev,Rstp,Rwar," +
		"Tank,Tcon,Tsmy," +
		"Nbel,Nbul,Nden,Ngre,Nhol,Nnwy,Npor,Nrum,Nser,Nspa,Nswe,Ntun/" +
		"Rfsev<bla")
	f.Add("1901fb/Aatri,Aarum,Afgre/" +
		"Abud,Atri,Avie,Arum,Agre,Eedi,Elon,Elvp,Fbre,Fmar,Fpar," +
		"Gber,Gkie,Gmun,Inap,Irom,Iven,Rmos,Rsev,Rstp,Rwar," +
		"Tank,Tcon,Tsmy," +
		"Nbel,Nbul,Nden,Nhol,Nnwy,Npor,Nser,Nspa,Nswe,Ntun/-")

	f.Fuzz(func(t *testing.T, dfen string) {
		gs, err := DecodeDFEN(dfen)
		if err != nil {
			return
		}
		encoded := EncodeDFEN(gs)
		gs2, err := DecodeDFEN(encoded)
		if err != nil {
			t.Fatalf("second decode failed: %v (encoded=%q)", err, encoded)
		}
		encoded2 := EncodeDFEN(gs2)
		if encoded != encoded2 {
			t.Fatalf("round-trip not stable:\nfirst:  %s\nsecond: %s", encoded, encoded2)
		}
	})
}
