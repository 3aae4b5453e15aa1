package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	cliconfig "github.com/x4tools/shipqueue/internal/cli/config"
	"github.com/x4tools/shipqueue/internal/state"
	"github.com/x4tools/shipqueue/internal/testutil"
)

// writeDataRoot lays out a minimal but complete unpacked data tree:
// one buildable hull with its macro and component files, one turret,
// and the matching translation entries.
func writeDataRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"libraries/ships.xml": `<ships>
  <ship id="ship_arg_s_fighter">
    <category tags="[fighter]" faction="[argon]" size="ship_s"/>
  </ship>
</ships>`,
		"libraries/wares.xml": `<wares>
  <ware id="ship_arg_s_fighter_01_a" name="{20101,10101}" transport="ship">
    <price min="90000" average="100000" max="110000"/>
    <production time="30" amount="1" method="default">
      <primary>
        <ware ware="energycells" amount="50"/>
        <ware ware="hullparts" amount="120"/>
      </primary>
    </production>
    <component ref="ship_arg_s_fighter_01_a_macro"/>
  </ware>
  <ware id="turret_par_m_shotgun_01_mk1" name="{20105,1}" transport="equipment">
    <price min="100" average="150" max="200"/>
    <production time="10" amount="1" method="default">
      <primary>
        <ware ware="energycells" amount="10"/>
        <ware ware="turretcomponents" amount="5"/>
      </primary>
    </production>
  </ware>
</wares>`,
		"t/0001-l044.xml": `<language id="44">
  <page id="20101">
    <t id="10101">Nodan Vanguard</t>
  </page>
  <page id="20105">
    <t id="1">Shard Battery Turret</t>
  </page>
</language>`,
		"assets/units/size_s/macros/ship_arg_s_fighter_01_a_macro.xml": `<macros>
  <macro name="ship_arg_s_fighter_01_a_macro" class="ship_s">
    <component ref="ship_arg_s_fighter_01_a"/>
    <properties>
      <identification name="{20101,10101}"/>
      <people capacity="1"/>
      <hull max="3500"/>
    </properties>
  </macro>
</macros>`,
		"assets/units/size_s/ship_arg_s_fighter_01_a.xml": `<components>
  <component name="ship_arg_s_fighter_01_a">
    <connections>
      <connection name="con_engine_01" tags="engine"/>
      <connection name="con_engine_02" tags="engine"/>
      <connection name="con_shieldgen_01" tags="shield small"/>
      <connection name="con_weapon_01" tags="weapon standard small"/>
    </connections>
  </component>
</components>`,
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func commandContext(t *testing.T, cfg *cliconfig.Config) context.Context {
	t.Helper()
	ctx := WithConfig(context.Background(), cfg)
	return WithLogger(ctx, testutil.NewTestLogger(t))
}

func TestExtractCommand(t *testing.T) {
	root := writeDataRoot(t)
	workDir := t.TempDir()
	outPath := filepath.Join(workDir, "report.xlsx")
	statePath := filepath.Join(workDir, "state", "shipqueue.db")

	cfg := &cliconfig.Config{
		DataRoot:   root,
		OutputFile: outPath,
		LanguageID: 44,
		StatePath:  statePath,
	}

	cmd := NewExtractCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.ExecuteContext(commandContext(t, cfg)); err != nil {
		t.Fatalf("extract: %v", err)
	}

	f, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got, _ := f.GetCellValue("Hulls", "D2"); got != "Nodan Vanguard" {
		t.Errorf("hull name = %q", got)
	}
	if got, _ := f.GetCellValue("Turrets", "C2"); got != "Shard Battery Turret" {
		t.Errorf("turret name = %q", got)
	}

	if !strings.Contains(out.String(), "1 hulls") {
		t.Errorf("summary output = %q", out.String())
	}

	// the run must be recorded as completed with matching counts
	store := state.NewSQLiteStore()
	if err := store.Open(statePath); err != nil {
		t.Fatalf("open state: %v", err)
	}
	defer func() { _ = store.Close() }()
	runs, err := store.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].Status != state.RunStatusCompleted {
		t.Errorf("run status = %q", runs[0].Status)
	}
	if runs[0].Counts.Hulls != 1 || runs[0].Counts.Equipment != 1 {
		t.Errorf("run counts = %+v", runs[0].Counts)
	}
}

func TestExtractCommandBadRootFails(t *testing.T) {
	workDir := t.TempDir()
	cfg := &cliconfig.Config{
		DataRoot:   filepath.Join(workDir, "does-not-exist"),
		OutputFile: filepath.Join(workDir, "report.xlsx"),
		LanguageID: 44,
		StatePath:  filepath.Join(workDir, "state.db"),
	}

	cmd := NewExtractCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	if err := cmd.ExecuteContext(commandContext(t, cfg)); err == nil {
		t.Fatal("expected error for missing data root")
	}

	// the failed run is still recorded
	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		t.Fatalf("open state: %v", err)
	}
	defer func() { _ = store.Close() }()
	runs, err := store.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != state.RunStatusFailed {
		t.Fatalf("runs = %+v, want one failed run", runs)
	}
}

func TestListCommand(t *testing.T) {
	root := writeDataRoot(t)
	cfg := &cliconfig.Config{
		DataRoot:   root,
		OutputFile: "unused.xlsx",
		LanguageID: 44,
		StatePath:  filepath.Join(t.TempDir(), "state.db"),
	}

	cmd := NewListCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.ExecuteContext(commandContext(t, cfg)); err != nil {
		t.Fatalf("list: %v", err)
	}

	for _, want := range []string{"Nodan Vanguard", "Shard Battery Turret", "Hulls"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q", want)
		}
	}
}

func TestListCommandCategory(t *testing.T) {
	root := writeDataRoot(t)
	cfg := &cliconfig.Config{
		DataRoot:   root,
		OutputFile: "unused.xlsx",
		LanguageID: 44,
		StatePath:  filepath.Join(t.TempDir(), "state.db"),
	}

	cmd := NewListCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--category", "turrets"})
	if err := cmd.ExecuteContext(commandContext(t, cfg)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out.String(), "Nodan Vanguard") {
		t.Error("hulls shown despite --category turrets")
	}
	if !strings.Contains(out.String(), "Shard Battery Turret") {
		t.Error("turret rows missing")
	}

	bad := NewListCommand()
	bad.SetOut(new(bytes.Buffer))
	bad.SetErr(new(bytes.Buffer))
	bad.SetArgs([]string{"--category", "lasers"})
	if err := bad.ExecuteContext(commandContext(t, cfg)); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestCatalogueCommand(t *testing.T) {
	root := writeDataRoot(t)
	outPath := filepath.Join(t.TempDir(), "catalogue.json")
	cfg := &cliconfig.Config{
		DataRoot:   root,
		OutputFile: "unused.xlsx",
		LanguageID: 44,
		StatePath:  "unused.db",
	}

	cmd := NewCatalogueCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--out", outPath})
	if err := cmd.ExecuteContext(commandContext(t, cfg)); err != nil {
		t.Fatalf("catalogue: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("catalogue not written: %v", err)
	}
	if !strings.Contains(string(data), "turret_par_m_shotgun_01_mk1") {
		t.Error("catalogue missing turret ware")
	}
	if !strings.Contains(out.String(), "2 wares") {
		t.Errorf("summary = %q", out.String())
	}
}

func TestRunsCommandEmpty(t *testing.T) {
	cfg := &cliconfig.Config{
		OutputFile: "unused.xlsx",
		LanguageID: 44,
		StatePath:  filepath.Join(t.TempDir(), "absent.db"),
	}
	cmd := NewRunsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.ExecuteContext(commandContext(t, cfg)); err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out.String(), "No runs recorded yet.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2026-08-29", "abc123")
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "shipqueue v1.2.3") {
		t.Errorf("output = %q", out.String())
	}
}
