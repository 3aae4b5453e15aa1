package economy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/x4tools/shipqueue/internal/testutil"
)

func writeWares(t *testing.T, root, source, content string) {
	t.Helper()
	dir := filepath.Join(root, "libraries")
	if source != "base" {
		dir = filepath.Join(root, "extensions", source, "libraries")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wares.xml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExtractProduction(t *testing.T) {
	root := t.TempDir()
	writeWares(t, root, "base", `<wares>
		<ware id="ship_arg_m_miner_01_a" transport="ship" name="{20101,21601}">
			<price min="100" average="200" max="300"/>
			<production time="120.5" method="default">
				<primary>
					<ware ware="energycells" amount="50"/>
					<ware ware="hullparts" amount="80"/>
				</primary>
			</production>
			<component ref="ship_arg_m_miner_01_a_macro"/>
		</ware>
		<ware id="water" transport="container">
			<price min="1" average="2" max="3"/>
			<production time="10"><primary/></production>
		</ware>
		<ware id="paintmod" transport="equipment"/>
	</wares>`)

	ledger := ExtractProduction(root, testutil.NewTestLogger(t))

	if len(ledger.ByWare) != 1 {
		t.Fatalf("expected 1 buildable ware, got %d", len(ledger.ByWare))
	}

	prod := ledger.ByMacro["ship_arg_m_miner_01_a_macro"]
	if prod == nil {
		t.Fatal("expected ledger keyed by macro ref")
	}
	if prod.PriceAvg != 200 {
		t.Errorf("expected avg price 200, got %d", prod.PriceAvg)
	}
	if prod.BuildTime != 120.5 {
		t.Errorf("expected build time 120.5, got %v", prod.BuildTime)
	}
	if len(prod.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(prod.Components))
	}
}

func TestExtractProduction_DuplicateMaterialsSummed(t *testing.T) {
	root := t.TempDir()
	writeWares(t, root, "base", `<wares>
		<ware id="shield_arg_s_standard_01_mk1" transport="equipment">
			<price min="1" average="2" max="3"/>
			<production time="10">
				<primary>
					<ware ware="energycells" amount="5"/>
					<ware ware="shieldcomponents" amount="2"/>
					<ware ware="energycells" amount="3"/>
				</primary>
			</production>
		</ware>
	</wares>`)

	ledger := ExtractProduction(root, testutil.NewTestLogger(t))
	prod := ledger.ByWare["shield_arg_s_standard_01_mk1"]
	if prod == nil {
		t.Fatal("expected equipment ware in ledger")
	}
	if len(prod.Components) != 2 {
		t.Fatalf("expected duplicate material collapsed to 2 entries, got %d", len(prod.Components))
	}
	if prod.Components[0].Ware != "energycells" || prod.Components[0].Amount != 8 {
		t.Errorf("expected summed energycells amount 8, got %+v", prod.Components[0])
	}
}

func TestExtractProduction_MalformedFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeWares(t, root, "base", `<wares>
		<ware id="ok_ware" transport="ship">
			<price min="1" average="2" max="3"/>
			<production time="5"><primary><ware ware="hullparts" amount="1"/></primary></production>
		</ware>
	</wares>`)
	writeWares(t, root, "broken_dlc", `<wares><ware`)

	ledger := ExtractProduction(root, testutil.NewTestLogger(t))
	if len(ledger.ByWare) != 1 {
		t.Errorf("expected the good file to survive the malformed one, got %d wares", len(ledger.ByWare))
	}
}

func TestExtractWares_OverlayPatchSemantics(t *testing.T) {
	root := t.TempDir()
	writeWares(t, root, "base", `<wares>
		<ware id="engine_arg_s_travel_01_mk1" name="{20107,1204}" transport="equipment"/>
	</wares>`)
	writeWares(t, root, "dlc", `<wares>
		<ware id="engine_arg_s_travel_01_mk1" name="{99,99}" group="engines"/>
	</wares>`)

	wares := ExtractWares(root, testutil.NewTestLogger(t))
	w := wares["engine_arg_s_travel_01_mk1"]
	if w == nil {
		t.Fatal("expected merged ware")
	}
	if w.Source != "base" {
		t.Errorf("expected original source preserved, got %q", w.Source)
	}
	if w.NameRaw != "{20107,1204}" {
		t.Errorf("expected first name to win, got %q", w.NameRaw)
	}
	if w.Group != "engines" {
		t.Errorf("expected overlay to fill empty group, got %q", w.Group)
	}
}
