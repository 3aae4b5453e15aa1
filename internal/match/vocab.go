package match

// Faction vocabulary. Identifiers name factions inconsistently: full
// historical names ("antigone", "holyorder"), 3-letter prefixes
// ("ant", "hol"), or nothing at all. Three lookups cover the three
// concerns:
//
//   - factionAliases canonicalizes full-name spellings onto the
//     3-letter token most identifiers already use;
//   - factionCodes maps canonical tokens to the faction output code,
//     preserving sub-faction distinctions (ANT, HOP, MIN, ZYA, FRF);
//   - factionFamilies collapses sub-factions onto their parent family
//     for the faction gate and the race column.

// factionAliases maps full faction names found in identifiers to the
// canonical 3-letter token spelling.
var factionAliases = map[string]string{
	// Argon family
	"argon":    "arg",
	"antigone": "ant",
	"hatikvah": "hat",

	// Boron family
	"boron": "bor",

	// Paranid family
	"paranid":   "par",
	"holyorder": "hol",

	// Teladi family
	"teladi":   "tel",
	"ministry": "min",

	// Split family
	"split":       "spl",
	"fallensplit": "frf",
	"court":       "spl",

	// Terran family
	"terran":  "ter",
	"pioneer": "pio",

	// Pirate / criminal factions
	"loanshark": "loa",
	"vigor":     "vig",
	"riptide":   "rip",

	// Edge cases
	"yaki":  "yak",
	"xenon": "xen",
}

// factionCodes maps canonical faction tokens to the code shown in the
// output faction column. Sub-factions keep their own code here.
var factionCodes = map[string]string{
	"arg": "ARG", "ant": "ANT", "hat": "HAT",
	"bor": "BOR",
	"par": "PAR", "hol": "HOP", "tri": "TRI",
	"tel": "TEL", "min": "MIN",
	"spl": "SPL", "zya": "ZYA", "frf": "FRF",
	"ter": "TER", "pio": "PIO", "atf": "ATF",
	"loa": "LOA", "vig": "VIG", "rip": "RIP",
	"yak": "YAK",
	"xen": "XEN",
}

// factionFamilies maps canonical faction tokens to family codes. The
// faction gate and the race column work at this granularity.
var factionFamilies = map[string]string{
	"arg": "ARG", "ant": "ARG", "hat": "ARG",
	"bor": "BOR",
	"par": "PAR", "hol": "PAR", "tri": "PAR",
	"tel": "TEL", "min": "TEL",
	"spl": "SPL", "zya": "SPL", "frf": "SPL",
	"ter": "TER", "pio": "TER", "atf": "TER",
	"loa": "LOA", "vig": "LOA", "rip": "LOA",
	"yak": "YAK",
	"xen": "XEN",
}

// genericClassTokens are role words too common to be discriminating on
// their own; a match supported only by these (plus size) is rejected by
// the scorer.
var genericClassTokens = NewSet(
	"fighter",
	"scout",
	"trader",
	"miner",
	"carrier",
	"destroyer",
	"frigate",
	"corvette",
	"gunboat",
	"resupplier",
	"builder",
)

// sizeTokens are the physical ship size classes.
var sizeTokens = NewSet("s", "m", "l", "xl")

// CanonicalFactionToken resolves one lowercase token to its canonical
// 3-letter faction token. Returns "" when the token carries no faction
// signal. The alias table is authoritative and consulted first.
func CanonicalFactionToken(token string) string {
	if canon, ok := factionAliases[token]; ok {
		return canon
	}
	if _, ok := factionFamilies[token]; ok {
		return token
	}
	return ""
}

// FactionCode maps one token to the output faction code, preserving
// sub-faction distinctions (ANT stays ANT, not ARG). Returns "" when
// the token carries no faction signal.
func FactionCode(token string) string {
	return factionCodes[CanonicalFactionToken(token)]
}

// FamilyCode maps one token to its faction family code: sub-factions
// collapse onto their parent (ANT -> ARG, MIN -> TEL). Returns "" when
// the token carries no faction signal.
func FamilyCode(token string) string {
	return factionFamilies[CanonicalFactionToken(token)]
}

// FamilyCodes returns the set of faction family codes a token set
// carries.
func FamilyCodes(tokens Set) Set {
	out := make(Set)
	for t := range tokens {
		if code := FamilyCode(t); code != "" {
			out.Add(code)
		}
	}
	return out
}

// Normalize expands a token set onto the shared vocabulary:
//
//   - trader/trans name the same role on the two sides of the join, so
//     either implies the other;
//   - full faction names are replaced by their canonical 3-letter
//     token ("antigone" becomes "ant") so both sides spell factions
//     the same way.
//
// Returns a new set; re-application is a no-op (idempotent).
func Normalize(tokens Set) Set {
	out := make(Set, len(tokens)+1)
	for t := range tokens {
		if canon, ok := factionAliases[t]; ok {
			out.Add(canon)
			continue
		}
		out.Add(t)
	}
	if out.Has("trader") {
		out.Add("trans")
	}
	if out.Has("trans") {
		out.Add("trader")
	}
	return out
}
