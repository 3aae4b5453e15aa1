package assemble

import (
	"reflect"
	"testing"

	"github.com/x4tools/shipqueue/internal/economy"
	"github.com/x4tools/shipqueue/internal/testutil"
	"github.com/x4tools/shipqueue/internal/translation"
)

func TestDetectCategory(t *testing.T) {
	cases := []struct {
		wareID string
		want   string
	}{
		{"engine_arg_s_travel_01_mk1", "Engines"},
		{"eng_spl_m_allround_01_mk2", "Engines"},
		{"thruster_gen_m_mk1", "Thrusters"},
		{"shield_par_l_standard_01_mk1", "Shields"},
		{"shieldgen_xen_m_standard_01_mk1", "Shields"},
		{"weapon_ter_s_laser_01_mk1", "Weapons"},
		{"turret_tel_m_gatling_01_mk1", "Turrets"},
		{"ore", ""},
		{"ship_arg_s_fighter_01", ""},
	}
	for _, tc := range cases {
		if got := DetectCategory(tc.wareID); got != tc.want {
			t.Errorf("DetectCategory(%q) = %q, want %q", tc.wareID, got, tc.want)
		}
	}
}

func TestCanonicalID(t *testing.T) {
	cases := []struct {
		wareID string
		want   string
	}{
		{"turret_par_m_shotgun_01_mk1", "turret_par_m_shotgun_mk1"},
		{"turret_par_m_shotgun_02_mk1", "turret_par_m_shotgun_mk1"},
		{"engine_arg_s_travel_01_mk3", "engine_arg_s_travel_mk3"},
		// no cosmetic segment, unchanged
		{"turret_par_m_shotgun_mk1", "turret_par_m_shotgun_mk1"},
		// variant segment not directly before the mark suffix stays
		{"shield_pir_xl_battleship_01_standard_01_mk1", "shield_pir_xl_battleship_01_standard_mk1"},
	}
	for _, tc := range cases {
		got := CanonicalID(tc.wareID)
		if got != tc.want {
			t.Errorf("CanonicalID(%q) = %q, want %q", tc.wareID, got, tc.want)
		}
		if again := CanonicalID(got); again != got {
			t.Errorf("CanonicalID not idempotent: %q -> %q -> %q", tc.wareID, got, again)
		}
	}
}

func TestParseIDParts(t *testing.T) {
	cases := []struct {
		wareID           string
		race, size, mark string
	}{
		{"turret_par_m_shotgun_01_mk1", "PAR", "M", "Mk1"},
		{"engine_arg_s_travel_01_mk3", "ARG", "S", "Mk3"},
		{"shield_xen_l_standard_01_mk1", "XEN", "L", "Mk1"},
		{"weapon_gen_xl_beam_01_mk2", "GEN", "XL", "Mk2"},
		{"thruster_gen_m_mk1", "GEN", "M", "Mk1"},
		{"notequipment_arg_s_mk1", "", "", ""},
	}
	for _, tc := range cases {
		race, size, mark := ParseIDParts(tc.wareID)
		if race != tc.race || size != tc.size || mark != tc.mark {
			t.Errorf("ParseIDParts(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tc.wareID, race, size, mark, tc.race, tc.size, tc.mark)
		}
	}
}

func TestDescriptors(t *testing.T) {
	cases := []struct {
		wareID string
		race   string
		want   []string
	}{
		{"weapon_arg_s_laser_01_mk1", "ARG", []string{"Weapon", "Pulse Laser"}},
		{"weapon_xen_s_laser_01_mk1", "XEN", []string{"Weapon", "Impulse Projector"}},
		{"weapon_bor_s_laser_01_mk1", "BOR", []string{"Weapon", "Phase Cannon"}},
		// "standard" carries no information and is dropped
		{"shield_bor_m_standard_01_mk1", "BOR", []string{"Shield"}},
		{"turret_tel_m_gatling_01_mk1", "TEL", []string{"Turret", "Bolt Repeater"}},
	}
	for _, tc := range cases {
		if got := Descriptors(tc.wareID, tc.race); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Descriptors(%q, %q) = %v, want %v", tc.wareID, tc.race, got, tc.want)
		}
	}
}

func equipProd(wareID string, transport economy.Transport) *economy.Production {
	return &economy.Production{
		Source:    "base",
		WareID:    wareID,
		Transport: transport,
		PriceMin:  100,
		PriceAvg:  150,
		PriceMax:  200,
		BuildTime: 10,
		Components: []economy.Component{
			{Ware: "energycells", Amount: 10},
			{Ware: "engineparts", Amount: 4},
		},
	}
}

func TestAssembleEquipment(t *testing.T) {
	wares := map[string]*economy.Ware{
		"turret_par_m_shotgun_01_mk1": {Source: "base", ID: "turret_par_m_shotgun_01_mk1", NameRaw: "{20105, 1}"},
		"turret_par_m_shotgun_02_mk1": {Source: "base", ID: "turret_par_m_shotgun_02_mk1", NameRaw: "{20105, 1}"},
		"weapon_xen_s_laser_01_mk1":   {Source: "base", ID: "weapon_xen_s_laser_01_mk1"},
		"shield_gen_m_yacht_01_mk1":   {Source: "base", ID: "shield_gen_m_yacht_01_mk1", NameRaw: "{20106, 7}"},
		"engine_arg_s_travel_01_mk1":  {Source: "ego_dlc_split", ID: "engine_arg_s_travel_01_mk1", NameRaw: "{20107, 99}"},
		"engine_arg_s_noprod_01_mk1":  {Source: "base", ID: "engine_arg_s_noprod_01_mk1", NameRaw: "{20107, 1}"},
		"ore":                         {Source: "base", ID: "ore", NameRaw: "Ore"},
	}
	ledger := &economy.Ledger{
		ByWare: map[string]*economy.Production{
			"turret_par_m_shotgun_01_mk1": equipProd("turret_par_m_shotgun_01_mk1", economy.TransportEquipment),
			"turret_par_m_shotgun_02_mk1": equipProd("turret_par_m_shotgun_02_mk1", economy.TransportEquipment),
			"weapon_xen_s_laser_01_mk1":   equipProd("weapon_xen_s_laser_01_mk1", economy.TransportEquipment),
			"shield_gen_m_yacht_01_mk1":   equipProd("shield_gen_m_yacht_01_mk1", economy.TransportEquipment),
			"engine_arg_s_travel_01_mk1":  equipProd("engine_arg_s_travel_01_mk1", economy.TransportEquipment),
			"ore":                         equipProd("ore", economy.TransportShip),
		},
	}
	table := translation.Table{
		{Page: 20105, ID: 1}: "Shard Battery Turret",
	}

	byCategory, stats := AssembleEquipment(wares, ledger, table, testutil.NewNopLogger())

	turrets := byCategory["Turrets"]
	if len(turrets) != 1 {
		t.Fatalf("Turrets = %d rows, want 1 (cosmetic variant deduplicated)", len(turrets))
	}
	if turrets[0].ID != "turret_par_m_shotgun_mk1" {
		t.Errorf("turret ID = %q, want canonical id", turrets[0].ID)
	}
	if turrets[0].Name != "Shard Battery Turret" {
		t.Errorf("turret Name = %q, want translated name", turrets[0].Name)
	}
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}

	weapons := byCategory["Weapons"]
	if len(weapons) != 1 {
		t.Fatalf("Weapons = %d rows, want 1", len(weapons))
	}
	if want := "XEN S Weapon Impulse Projector Mk1"; weapons[0].Name != want {
		t.Errorf("synthesized name = %q, want %q", weapons[0].Name, want)
	}

	shields := byCategory["Shields"]
	if len(shields) != 1 || shields[0].Name != "Astrid M Shield" {
		t.Fatalf("Shields = %+v, want the unique override row", shields)
	}

	engines := byCategory["Engines"]
	if len(engines) != 1 {
		t.Fatalf("Engines = %d rows, want 1 (ware without production dropped)", len(engines))
	}
	if engines[0].Name != "{20107, 99}" {
		t.Errorf("untranslated name = %q, want raw reference passthrough", engines[0].Name)
	}
	if stats.Unresolved["Engines"] != 1 {
		t.Errorf("Unresolved[Engines] = %d, want 1", stats.Unresolved["Engines"])
	}

	// ore is transport "ship" and must not appear anywhere
	for cat, rows := range byCategory {
		for _, r := range rows {
			if r.ID == "ore" {
				t.Errorf("non-equipment ware leaked into %s", cat)
			}
		}
	}

	if got := labelComponents(equipProd("x", economy.TransportEquipment).Components); got[0].Label != "Energy Cells" || got[1].Label != "Engine Parts" {
		t.Errorf("labelComponents = %v, want labeled materials", got)
	}
}

func TestAssembleEquipmentMarkOrder(t *testing.T) {
	// Marks sort numerically: Mk2 before Mk10, not the other way
	// around as a string compare would have it.
	wares := map[string]*economy.Ware{
		"engine_arg_s_travel_01_mk10": {Source: "base", ID: "engine_arg_s_travel_01_mk10"},
		"engine_arg_s_travel_01_mk2":  {Source: "base", ID: "engine_arg_s_travel_01_mk2"},
	}
	ledger := &economy.Ledger{
		ByWare: map[string]*economy.Production{
			"engine_arg_s_travel_01_mk10": equipProd("engine_arg_s_travel_01_mk10", economy.TransportEquipment),
			"engine_arg_s_travel_01_mk2":  equipProd("engine_arg_s_travel_01_mk2", economy.TransportEquipment),
		},
	}

	byCategory, _ := AssembleEquipment(wares, ledger, translation.Table{}, testutil.NewNopLogger())

	engines := byCategory["Engines"]
	if len(engines) != 2 {
		t.Fatalf("Engines = %d rows, want 2", len(engines))
	}
	if engines[0].Mark != "Mk2" || engines[1].Mark != "Mk10" {
		t.Errorf("mark order = %q, %q, want Mk2 then Mk10", engines[0].Mark, engines[1].Mark)
	}
}

func TestMaterialLabelPassthrough(t *testing.T) {
	if got := MaterialLabel("hullparts"); got != "Hull Parts" {
		t.Errorf("MaterialLabel(hullparts) = %q", got)
	}
	if got := MaterialLabel("modded_alloy"); got != "modded_alloy" {
		t.Errorf("MaterialLabel passthrough = %q, want raw id", got)
	}
}
