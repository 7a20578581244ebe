package diplomacy

import (
	"fmt"
	"sort"
	"testing"
)

// TestMapAdjacencySymmetry checks that every adjacency StandardMap exposes
// is bidirectional: if army or fleet movement is allowed from A to B, the
// reverse direction is allowed too. BuildHypergraph and every strength
// computation in encoder.go walk this adjacency data in both directions
// (an attacker's province must be adjacent to its target, and a supporter's
// target must be adjacent to the supported move's destination), so an
// asymmetric entry here would silently make some attacks one-way.
func TestMapAdjacencySymmetry(t *testing.T) {
	m := StandardMap()
	var errors []string

	for from, adjs := range m.Adjacencies {
		for _, adj := range adjs {
			if adj.ArmyOK {
				if !m.Adjacent(adj.To, NoCoast, from, NoCoast, false) {
					errors = append(errors, fmt.Sprintf("army %s->%s has no reverse", from, adj.To))
				}
			}
			if adj.FleetOK {
				if !m.Adjacent(adj.To, adj.ToCoast, from, adj.FromCoast, true) {
					errors = append(errors, fmt.Sprintf("fleet %s/%s->%s/%s has no reverse", from, adj.FromCoast, adj.To, adj.ToCoast))
				}
			}
		}
	}

	if len(errors) > 0 {
		sort.Strings(errors)
		t.Errorf("found %d asymmetric adjacency entries:\n%s", len(errors), joinLines(errors))
	}
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

// TestAdjacencySpotChecks verifies a representative sample of the standard
// map's adjacencies against the DPjudge reference, covering plain army/fleet
// pairs, fleet-only sea zones, army-only inland borders, and every
// split-coast province's per-coast restrictions.
func TestAdjacencySpotChecks(t *testing.T) {
	m := StandardMap()

	army := func(a, b string) { t.Helper(); mustAdjacent(t, m, a, NoCoast, b, NoCoast, false) }
	fleet := func(a, ac string, b, bc string) {
		t.Helper()
		mustAdjacent(t, m, a, Coast(ac), b, Coast(bc), true)
	}

	// Inland army-only borders.
	army("par", "bur")
	army("bur", "mun")
	army("mun", "ber")
	army("war", "mos")

	// Both army and fleet (coastal neighbors without an intervening sea zone).
	army("bel", "hol")
	fleet("bel", "", "hol", "")
	army("gre", "bul")

	// Fleet-only sea zones.
	fleet("adr", "", "ion", "")
	fleet("eng", "", "mao", "")
	fleet("bal", "", "bot", "")

	// Split-coast restrictions: a fleet on one coast cannot reach the other
	// coast's neighbors directly.
	fleet("bul", "ec", "bla", "")
	fleet("bul", "sc", "gre", "")
	if m.Adjacent("bul", EastCoast, "gre", NoCoast, true) {
		t.Error("bul/ec should not reach gre directly (gre is off the sc side)")
	}
	fleet("stp", "nc", "bar", "")
	fleet("stp", "sc", "bot", "")
	fleet("spa", "nc", "gas", "")
	fleet("spa", "sc", "mar", "")
}

func mustAdjacent(t *testing.T, m *DiplomacyMap, from string, fromCoast Coast, to string, toCoast Coast, fleet bool) {
	t.Helper()
	if !m.Adjacent(from, fromCoast, to, toCoast, fleet) {
		kind := "army"
		if fleet {
			kind = "fleet"
		}
		t.Errorf("expected %s adjacency %s/%s -> %s/%s", kind, from, fromCoast, to, toCoast)
	}
}

// TestAdjacencyCountSanity bounds the total adjacency table size instead of
// pinning an exact transcribed count: the standard 34-province-center, 75
// total province map has a well-known, narrow range of directed adjacency
// entries (a handful more or less would indicate a transcription error in
// map_data.go, not a meaningful map variant).
func TestAdjacencyCountSanity(t *testing.T) {
	m := StandardMap()
	total := 0
	for _, adjs := range m.Adjacencies {
		total += len(adjs)
	}
	if total < 400 || total > 460 {
		t.Errorf("directed adjacency entry count %d outside expected [400,460] range", total)
	}
}

// TestSplitCoastFleetReachability verifies that fleets on specific coasts of
// split-coast provinces can reach exactly the expected destinations.
func TestSplitCoastFleetReachability(t *testing.T) {
	m := StandardMap()

	tests := []struct {
		prov     string
		coast    Coast
		expected []string
	}{
		{"bul", EastCoast, []string{"bla", "con", "rum"}},
		{"bul", SouthCoast, []string{"aeg", "con", "gre"}},
		{"spa", NorthCoast, []string{"gas", "mao", "por"}},
		{"spa", SouthCoast, []string{"gol", "mao", "mar", "por", "wes"}},
		{"stp", NorthCoast, []string{"bar", "nwy"}},
		{"stp", SouthCoast, []string{"bot", "fin", "lvn"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.prov, tt.coast), func(t *testing.T) {
			actual := m.ProvincesAdjacentTo(tt.prov, tt.coast, true)
			sort.Strings(actual)
			expected := append([]string(nil), tt.expected...)
			sort.Strings(expected)

			if len(actual) != len(expected) {
				t.Errorf("fleet from %s/%s: got %v, want %v", tt.prov, tt.coast, actual, expected)
				return
			}
			for i := range actual {
				if actual[i] != expected[i] {
					t.Errorf("fleet from %s/%s: got %v, want %v", tt.prov, tt.coast, actual, expected)
					return
				}
			}
		})
	}
}

// TestCanBeConvoyed_MultiHopChain exercises validate.go's canBeConvoyed
// (rewritten on lvlath/bfs.BFS over the fleet graph) across a three-fleet
// chain, confirming the adjacency data that TestMapAdjacencySymmetry checks
// for consistency actually drives the reachability the CSP's convoy
// constraints depend on (hasConvoyPath, convoyChainExists in encoder.go).
func TestCanBeConvoyed_MultiHopChain(t *testing.T) {
	m := StandardMap()
	gs := stateWith(
		Unit{Army, England, "lon", NoCoast},
		Unit{Fleet, England, "eng", NoCoast},
		Unit{Fleet, England, "mao", NoCoast},
		Unit{Fleet, England, "wes", NoCoast},
	)

	if !canBeConvoyed("lon", "tun", gs, m) {
		t.Error("expected lon -> tun to be convoyable via eng-mao-wes fleet chain")
	}

	gsShort := stateWith(
		Unit{Army, England, "lon", NoCoast},
		Unit{Fleet, England, "eng", NoCoast},
		Unit{Fleet, England, "mao", NoCoast},
	)
	if canBeConvoyed("lon", "tun", gsShort, m) {
		t.Error("expected lon -> tun NOT convoyable with wes missing from the chain (not adjacent to tun)")
	}
}
