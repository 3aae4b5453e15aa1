package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Reason classifies a pair decision. The matcher is a pure function;
// callers aggregate reasons into run statistics instead of the matcher
// mutating shared counters.
type Reason string

const (
	ReasonOK          Reason = "ok"
	ReasonSizeGate    Reason = "size_mismatch"
	ReasonFactionGate Reason = "faction_mismatch"
	ReasonCoreGate    Reason = "core_tokens"
)

// Result carries the pair decision plus the gate that rejected it.
type Result struct {
	Matched bool
	Reason  Reason
}

// MinMatchScore is the minimum token-overlap score an accepted pair
// needs to enter ranked selection. Gate-passing pairs that overlap on
// fewer tokens are too thin to trust.
const MinMatchScore = 3

// nonBuildableModifiers mark abstract job/story archetypes that never
// have a physical hull.
var nonBuildableModifiers = NewSet(
	"mixed",
	"escort",
	"leader",
	"op",
	"specialops",
	"military",
	"envoy",
	"expeditionary",
	"cypher",
)

// Archetype is the matcher's view of one ship archetype.
type Archetype struct {
	ShipID    string
	Source    string
	SizeClass string // "S" | "M" | "L" | "XL", "" when undetermined
	Tokens    Set    // normalized
}

// Macro is the matcher's view of one hull macro.
type Macro struct {
	MacroID string
	Tokens  Set // normalized
}

// Buildable reports whether an archetype's token set denotes a
// physical hull: a size token is required and non-buildable modifier
// tokens are excluded. Numbered variants like ship_arg_m_miner_01 are
// real hulls; their index segments never survive Tokenize, so a
// numeric token here means the set was assembled by hand and is
// rejected.
func Buildable(tokens Set) bool {
	hasSize := false
	for size := range sizeTokens {
		if tokens.Has(size) {
			hasSize = true
			break
		}
	}
	if !hasSize {
		return false
	}
	for mod := range nonBuildableModifiers {
		if tokens.Has(mod) {
			return false
		}
	}
	for t := range tokens {
		if isDigits(t) {
			return false
		}
	}
	return true
}

// Match decides whether one archetype and one macro denote the same
// hull. Gates run in fixed order; the first failure rejects with its
// reason and no further evaluation.
func Match(a Archetype, m Macro) Result {
	// Size gate: the archetype's declared size class must appear in the
	// macro's identifier.
	if a.SizeClass == "" || !m.Tokens.Has(strings.ToLower(a.SizeClass)) {
		return Result{Reason: ReasonSizeGate}
	}

	// Faction gate: when both sides carry recognized faction families,
	// the family sets must intersect. A side with no faction signal
	// matches anything on this axis. Sub-faction mismatches inside one
	// family (arg vs ant) fall through to the core gate.
	shipFactions := FamilyCodes(a.Tokens)
	macroFactions := FamilyCodes(m.Tokens)
	if len(shipFactions) > 0 && len(macroFactions) > 0 && disjoint(shipFactions, macroFactions) {
		return Result{Reason: ReasonFactionGate}
	}

	// Core-token gate: every meaningful word the archetype declares must
	// appear in the macro's identifier. The converse is not required;
	// macros carry extra decoration (variant letters) that archetypes
	// never mention.
	if !subset(coreTokens(a.Tokens), coreTokens(m.Tokens)) {
		return Result{Reason: ReasonCoreGate}
	}

	return Result{Matched: true, Reason: ReasonOK}
}

// coreTokens strips size tokens, stopwords, and numeric tokens, and
// canonicalizes faction spellings in place. Faction tokens stay in the
// set: "antigone" and "ant" compare equal after canonicalization, but
// "arg" and "ant" stay distinct, so an Argon archetype cannot claim an
// Antigone macro through the subset test.
func coreTokens(tokens Set) Set {
	out := make(Set, len(tokens))
	for t := range tokens {
		if sizeTokens.Has(t) || stopwords.Has(t) || isDigits(t) {
			continue
		}
		if canon := CanonicalFactionToken(t); canon != "" {
			out.Add(canon)
			continue
		}
		out.Add(t)
	}
	return out
}

// Score ranks an accepted pair by raw token overlap. Overlap that
// survives only on generic class words (fighter, scout, ...) scores
// zero: role alone never identifies a hull.
func Score(a Archetype, m Macro) int {
	var overlap, meaningful int
	for t := range a.Tokens {
		if !m.Tokens.Has(t) {
			continue
		}
		overlap++
		if !genericClassTokens.Has(t) {
			meaningful++
		}
	}
	if meaningful == 0 {
		return 0
	}
	return overlap
}

// Pairing is one accepted (archetype, macro) claim.
type Pairing struct {
	ShipID       string
	MacroID      string
	Score        int
	MultiVariant bool // archetype claimed more than one macro
}

// Unmatched is the diagnostic record for an archetype that passed the
// buildability filter but claimed no macro.
type Unmatched struct {
	ShipID  string
	Source  string
	Tokens  []string
	Nearest string // closest macro id by edit distance, "" when no macros exist
}

// Outcome is the full reconciliation result.
type Outcome struct {
	Pairings   []Pairing
	Unmatched  []Unmatched
	Rejections map[Reason]int
}

// Reconcile joins archetypes to macros under the global selection
// policy: each macro is claimed by at most one archetype, first claim
// wins. Gate-passing candidates scoring below MinMatchScore never
// enter selection. Archetypes are processed in ship-id order and
// candidates per archetype in descending score then ascending macro
// id, so the whole outcome is reproducible.
func Reconcile(archetypes []Archetype, macros []Macro) *Outcome {
	out := &Outcome{Rejections: make(map[Reason]int)}

	sorted := make([]Archetype, len(archetypes))
	copy(sorted, archetypes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ShipID < sorted[j].ShipID })

	claimed := make(map[string]string, len(macros)) // macro id -> ship id

	for _, arch := range sorted {
		type scored struct {
			macro Macro
			score int
		}
		var candidates []scored
		for _, m := range macros {
			res := Match(arch, m)
			if !res.Matched {
				out.Rejections[res.Reason]++
				continue
			}
			score := Score(arch, m)
			if score < MinMatchScore {
				continue
			}
			candidates = append(candidates, scored{macro: m, score: score})
		}

		if len(candidates) == 0 {
			out.Unmatched = append(out.Unmatched, Unmatched{
				ShipID:  arch.ShipID,
				Source:  arch.Source,
				Tokens:  arch.Tokens.Sorted(),
				Nearest: nearestMacro(arch.ShipID, macros),
			})
			continue
		}

		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].macro.MacroID < candidates[j].macro.MacroID
		})

		var won []Pairing
		for _, c := range candidates {
			if _, taken := claimed[c.macro.MacroID]; taken {
				continue
			}
			claimed[c.macro.MacroID] = arch.ShipID
			won = append(won, Pairing{ShipID: arch.ShipID, MacroID: c.macro.MacroID, Score: c.score})
		}

		if len(won) == 0 {
			// Every candidate already claimed by an earlier archetype.
			out.Unmatched = append(out.Unmatched, Unmatched{
				ShipID:  arch.ShipID,
				Source:  arch.Source,
				Tokens:  arch.Tokens.Sorted(),
				Nearest: nearestMacro(arch.ShipID, macros),
			})
			continue
		}

		multi := len(won) > 1
		for i := range won {
			won[i].MultiVariant = multi
		}
		out.Pairings = append(out.Pairings, won...)
	}

	return out
}

// nearestMacro suggests the macro id closest to the ship id by edit
// distance. Purely a diagnostic aid for unmatched archetypes.
func nearestMacro(shipID string, macros []Macro) string {
	best := ""
	bestDist := -1
	for _, m := range macros {
		d := levenshtein.ComputeDistance(shipID, m.MacroID)
		if bestDist < 0 || d < bestDist || (d == bestDist && m.MacroID < best) {
			best = m.MacroID
			bestDist = d
		}
	}
	return best
}

func subset(a, b Set) bool {
	for t := range a {
		if !b.Has(t) {
			return false
		}
	}
	return true
}

func disjoint(a, b Set) bool {
	for t := range a {
		if b.Has(t) {
			return false
		}
	}
	return true
}
