package assemble

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/x4tools/shipqueue/internal/economy"
	"github.com/x4tools/shipqueue/internal/translation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EquipmentRow is one deduplicated piece of buildable equipment.
type EquipmentRow struct {
	Source     string
	ID         string // canonical id, cosmetic variant segment stripped
	Name       string
	Race       string
	Size       string
	Mark       string
	PriceMin   int
	PriceAvg   int
	PriceMax   int
	BuildTime  float64
	Components []LabeledComponent
}

// Categories lists the equipment categories in report order.
var Categories = []string{"Engines", "Thrusters", "Shields", "Weapons", "Turrets"}

type categoryRule struct {
	name string
	re   *regexp.Regexp
}

// categoryRules is evaluated in order; the first match wins. Shields
// must check both the shield_ and shieldgen_ spellings.
var categoryRules = []categoryRule{
	{"Engines", regexp.MustCompile(`(?i)^(engine|eng)_[a-z0-9_]+`)},
	{"Thrusters", regexp.MustCompile(`(?i)^(thruster|thrust)_[a-z0-9_]+`)},
	{"Shields", regexp.MustCompile(`(?i)^(shield|shieldgen)_[a-z0-9_]+`)},
	{"Weapons", regexp.MustCompile(`(?i)^(weapon)_[a-z0-9_]+`)},
	{"Turrets", regexp.MustCompile(`(?i)^(turret)_[a-z0-9_]+`)},
}

// DetectCategory classifies a ware id, returning "" for non-equipment.
func DetectCategory(wareID string) string {
	for _, rule := range categoryRules {
		if rule.re.MatchString(wareID) {
			return rule.name
		}
	}
	return ""
}

var (
	idVariantRE = regexp.MustCompile(`(?i)_(\d{2})_(mk\d+)$`)
	markRE      = regexp.MustCompile(`(?i)(?:^|_)mk(\d+)(?:_|$)`)
	idPartsRE   = regexp.MustCompile(`(?i)^(engine|thruster|shield|weapon|turret)_(.+)$`)
)

// CanonicalID strips the cosmetic two-digit variant segment that sits
// immediately before a mark suffix, collapsing cosmetically distinct
// but functionally identical items onto one key. Idempotent.
func CanonicalID(wareID string) string {
	return idVariantRE.ReplaceAllString(wareID, "_$2")
}

// raceCodes are the 3-letter codes that appear inside equipment ids.
var raceCodes = map[string]bool{
	"arg": true, "ant": true, "bor": true, "par": true, "tel": true,
	"spl": true, "ter": true, "pio": true, "yak": true, "vig": true,
	"rip": true, "xen": true, "gen": true,
}

var equipSizeCodes = map[string]bool{"s": true, "m": true, "l": true, "xl": true}

// ParseIDParts pulls (race, size, mark) out of an equipment id. The
// first race code and first size code found win; the mark comes from
// the first mkN segment anywhere in the id. Ids without the expected
// category prefix yield all-empty results.
func ParseIDParts(wareID string) (race, size, mark string) {
	m := idPartsRE.FindStringSubmatch(wareID)
	if m == nil {
		return "", "", ""
	}
	rest := strings.ToLower(m[2])
	for _, p := range strings.Split(rest, "_") {
		if race == "" && raceCodes[p] {
			race = strings.ToUpper(p)
		}
		if size == "" && equipSizeCodes[p] {
			size = strings.ToUpper(p)
		}
	}
	if mm := markRE.FindStringSubmatch(rest); mm != nil {
		mark = "Mk" + mm[1]
	}
	return race, size, mark
}

// descriptorMap turns id tokens into the weapon-class names players
// actually see. "standard" maps to the empty string on purpose: it
// carries no information in a display name.
var descriptorMap = map[string]string{
	"beam":      "Beam Emitter",
	"laser":     "Pulse Laser",
	"cannon":    "Blast Mortar",
	"burst":     "Burst Ray",
	"gatling":   "Bolt Repeater",
	"shotgun":   "Shard Battery",
	"ion":       "Ion Blaster",
	"charge":    "Muon Charger",
	"scrapbeam": "Tractor Beam",
	"allround":  "All-round",
	"standard":  "",
}

// Xenon and Boron reuse generic tokens for entirely different weapon
// lines, so their descriptors are checked before the shared map.
var xenonDescriptorOverrides = map[string]string{
	"laser":   "Impulse Projector",
	"beam":    "Plasma Cutter Beam",
	"gatling": "Needler Gun",
}

var boronDescriptorOverrides = map[string]string{
	"laser":   "Phase Cannon",
	"beam":    "Ion Projector",
	"railgun": "Ion Pulse Railgun",
	"flak":    "Ion Atomiser",
}

// uniqueOverrides names one-off hero equipment whose ids resist every
// general rule.
var uniqueOverrides = map[string]string{
	"shield_gen_m_yacht_01_mk1":                   "Astrid M Shield",
	"shield_pir_xl_battleship_01_standard_01_mk1": "Erlking XL Shield",
}

var descriptorCaser = cases.Title(language.English)

// Descriptors extracts the display-name fragments from an equipment id,
// applying the race-specific override tables first. Duplicates are
// dropped, order preserved.
func Descriptors(wareID, race string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(d string) {
		if d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for _, t := range strings.Split(strings.ToLower(wareID), "_") {
		switch {
		case race == "BOR" && boronDescriptorOverrides[t] != "":
			add(boronDescriptorOverrides[t])
		case race == "XEN" && xenonDescriptorOverrides[t] != "":
			add(xenonDescriptorOverrides[t])
		default:
			if d, ok := descriptorMap[t]; ok {
				add(d)
				continue
			}
			if isAlpha(t) && !raceCodes[t] && !equipSizeCodes[t] {
				add(descriptorCaser.String(t))
			}
		}
	}
	return out
}

// markNumber parses the numeric part of a "MkN" label so Mk2 sorts
// before Mk10. Markless rows sort first.
func markNumber(mark string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(mark, "Mk"))
	if err != nil {
		return 0
	}
	return n
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// synthesizeName builds a fallback display name from id parts when a
// ware has no usable name attribute.
func synthesizeName(race, size, mark string, descriptors []string) string {
	parts := make([]string, 0, 3+len(descriptors))
	for _, p := range [...]string{race, size} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, descriptors...)
	if mark != "" {
		parts = append(parts, mark)
	}
	return strings.Join(parts, " ")
}

// EquipmentStats summarises equipment assembly per category.
type EquipmentStats struct {
	Unresolved map[string]int // category -> rows left with raw text refs
	Duplicates int
}

// AssembleEquipment buckets buildable equipment wares by category,
// deduplicating on (category, canonical id) with the first occurrence
// winning. Wares are scanned in id order so the lowest cosmetic variant
// claims the canonical key deterministically.
func AssembleEquipment(
	wares map[string]*economy.Ware,
	ledger *economy.Ledger,
	table translation.Table,
	log *slog.Logger,
) (map[string][]EquipmentRow, EquipmentStats) {
	stats := EquipmentStats{Unresolved: make(map[string]int)}
	byCategory := make(map[string][]EquipmentRow, len(Categories))

	ids := make([]string, 0, len(wares))
	for id := range wares {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	seen := make(map[[2]string]bool)
	for _, wareID := range ids {
		category := DetectCategory(wareID)
		if category == "" {
			continue
		}
		prod := ledger.ByWare[wareID]
		if prod == nil || prod.Transport != economy.TransportEquipment {
			continue
		}
		ware := wares[wareID]

		race, size, mark := ParseIDParts(wareID)
		if race == "" {
			switch {
			case strings.Contains(wareID, "_xen_"):
				race = "XEN"
			case strings.Contains(wareID, "_gen_"):
				race = "GEN"
			}
		}

		canonical := CanonicalID(wareID)
		key := [2]string{category, canonical}
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		name := resolveEquipmentName(wareID, ware, table, race, size, mark)
		if translation.IsUnresolvedRef(name) {
			stats.Unresolved[category]++
		}

		byCategory[category] = append(byCategory[category], EquipmentRow{
			Source:     ware.Source,
			ID:         canonical,
			Name:       name,
			Race:       race,
			Size:       size,
			Mark:       mark,
			PriceMin:   prod.PriceMin,
			PriceAvg:   prod.PriceAvg,
			PriceMax:   prod.PriceMax,
			BuildTime:  prod.BuildTime,
			Components: labelComponents(prod.Components),
		})
	}

	for _, rows := range byCategory {
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if ra, rb := sourceRank(a.Source), sourceRank(b.Source); ra != rb {
				return ra < rb
			}
			if a.Source != b.Source {
				return a.Source < b.Source
			}
			if ra, rb := sizeRank(a.Size), sizeRank(b.Size); ra != rb {
				return ra < rb
			}
			if ma, mb := markNumber(a.Mark), markNumber(b.Mark); ma != mb {
				return ma < mb
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
	}

	for category, n := range stats.Unresolved {
		log.Warn("equipment names left unresolved",
			"category", category, "count", n)
	}
	return byCategory, stats
}

// resolveEquipmentName picks the display name for one equipment ware:
// unique override, then translated name attribute, then a name
// synthesized from the id parts.
func resolveEquipmentName(
	wareID string,
	ware *economy.Ware,
	table translation.Table,
	race, size, mark string,
) string {
	if name, ok := uniqueOverrides[wareID]; ok {
		return name
	}
	raw := ware.NameRaw
	if raw == "" || raw == wareID {
		return synthesizeName(race, size, mark, Descriptors(wareID, race))
	}
	return translation.Resolve(raw, table, raw)
}

// CategoryOrder gives a stable rank for a category name, with unknown
// categories last.
func CategoryOrder(category string) int {
	for i, c := range Categories {
		if c == category {
			return i
		}
	}
	return len(Categories)
}
