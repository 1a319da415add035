package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmidr/boomer/pkg/boomer"
)

const testProfiles = `
profiles:
  board:
    bom:
      designator: Designator
      comment: Comment
    pnp:
      separator: SEMICOLON
      designator: Ref
      comment: Val
      footprint: Package
      coord_x: X
      coord_y: Y
      layer: Side
      coord_unit_mils: false
`

type testFiles struct {
	dir    string
	config string
	bom    string
	pnp    string
}

func writeTestFiles(t *testing.T) testFiles {
	t.Helper()
	dir := t.TempDir()
	files := testFiles{
		dir:    dir,
		config: filepath.Join(dir, "boomer.yaml"),
		bom:    filepath.Join(dir, "bom.csv"),
		pnp:    filepath.Join(dir, "pnp.csv"),
	}
	write := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(files.config, testProfiles)
	write(files.bom, "Designator,Comment\n\"R1, R2\",10k\nR5,10K\nC7,\n")
	write(files.pnp, "Ref;Val;Package;X;Y;Side\nR1;10k;0402;0;0;T\nR2;10k;0402;1;0;T\nR5;10k 1%;0402;20;0;T\nR3;4k7;0402;40;0;B\n")
	return files
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbose = "", false

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckText(t *testing.T) {
	f := writeTestFiles(t)

	out, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Cross-check report for: bom.csv")
	assert.Contains(t, out, "BOM parts missing in the PnP: 1\n  C7: ?\n")
	assert.Contains(t, out, "PnP parts missing in the BOM: 1\n  R3: 4k7\n")
	assert.Contains(t, out, "BOM and PnP comment mismatch: 1\n  R5: BOM='0402_10K', PnP='10k 1%'\n")
	assert.Contains(t, out, "PnP parts too close: 1\n  R1 <-> R2: 1.00 mm\n")
}

func TestCheckJSONToFile(t *testing.T) {
	f := writeTestFiles(t)
	report := filepath.Join(f.dir, "report.json")

	_, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp,
		"--format", "json", "-o", report, "--min-distance", "0.5")
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var doc struct {
		ProximityConflicts []any `json:"proximity_conflicts"`
		CommentMismatches  []any `json:"comment_mismatches"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Empty(t, doc.ProximityConflicts)
	assert.Len(t, doc.CommentMismatches, 1)
}

func TestCheckStrict(t *testing.T) {
	f := writeTestFiles(t)

	_, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "--strict", "--no-color")
	assert.True(t, errors.Is(err, errDiscrepancies))
}

func TestCheckTwoPnPFiles(t *testing.T) {
	f := writeTestFiles(t)
	top := filepath.Join(f.dir, "top.csv")
	bottom := filepath.Join(f.dir, "bottom.csv")
	require.NoError(t, os.WriteFile(top, []byte("Ref;Val;Package;X;Y;Side\nR1;10k;0402;0;0;\nR2;10k;0402;10;0;\n"), 0644))
	require.NoError(t, os.WriteFile(bottom, []byte("Ref;Val;Package;X;Y;Side\nR5;10K;;0;0;\nC7;;;10;0;\n"), 0644))

	out, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", top, "--pnp2", bottom, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "BOM parts missing in the PnP: 0")
	assert.Contains(t, out, "PnP parts missing in the BOM: 0")
	assert.Contains(t, out, "BOM and PnP comment mismatch: 0")
	assert.Contains(t, out, "PnP parts too close: 0")
}

func TestCheckPnP2ColumnMismatch(t *testing.T) {
	f := writeTestFiles(t)
	bottom := filepath.Join(f.dir, "bottom.csv")
	require.NoError(t, os.WriteFile(bottom, []byte("Ref;Val\nR5;10K\n"), 0644))

	_, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "--pnp2", bottom)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PnP has 6 columns, but PnP2 has 2 columns")
}

func TestCheckSavedProject(t *testing.T) {
	f := writeTestFiles(t)

	_, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "-p", "board",
		"--save-project", "-o", filepath.Join(f.dir, "r.txt"))
	require.NoError(t, err)

	out, err := execute(t, "check", "-c", f.config, "--project", f.bom, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<h5>PnP parts too close: 1</h5>")

	out, err = execute(t, "projects", "-c", f.config)
	require.NoError(t, err)
	assert.Contains(t, out, f.bom+"\n  pnp: "+f.pnp+"\n  profile: board\n")
}

func TestCheckProjectFromOtherDirectory(t *testing.T) {
	f := writeTestFiles(t)
	t.Chdir(f.dir)

	_, err := execute(t, "check", "-c", f.config, "--bom", "bom.csv", "--pnp", "pnp.csv",
		"-p", "board", "--save-project", "-o", "r.txt")
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	out, err := execute(t, "check", "-c", f.config, "--project", f.bom, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "PnP parts too close: 1")

	out, err = execute(t, "projects", "-c", f.config)
	require.NoError(t, err)
	assert.Contains(t, out, f.bom+"\n  pnp: "+f.pnp+"\n")
}

func TestCheckLastRow(t *testing.T) {
	f := writeTestFiles(t)
	bom := filepath.Join(f.dir, "bom-total.csv")
	require.NoError(t, os.WriteFile(bom, []byte("Designator,Comment\n\"R1, R2\",10k\nR5,10K\nC7,\nTotal,4\n"), 0644))

	out, err := execute(t, "check", "-c", f.config, "--bom", bom, "--pnp", f.pnp, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "BOM parts missing in the PnP: 2")
	assert.Contains(t, out, "  Total: 4\n")

	out, err = execute(t, "check", "-c", f.config, "--bom", bom, "--pnp", f.pnp, "--no-color", "--bom-last-row", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "BOM parts missing in the PnP: 1\n  C7: ?\n")
	assert.NotContains(t, out, "Total")

	out, err = execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "--no-color", "--pnp-last-row", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "PnP parts missing in the BOM: 0")
}

func TestCheckLastRowOutOfRange(t *testing.T) {
	f := writeTestFiles(t)

	_, err := execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "--bom-last-row", "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, boomer.ErrConfiguration)
	var cfgErr *boomer.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = execute(t, "check", "-c", f.config, "--bom", f.bom, "--pnp", f.pnp, "--pnp-last-row", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --pnp-last-row")
}

func TestCheckErrors(t *testing.T) {
	f := writeTestFiles(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing pnp", []string{"--bom", f.bom}, "both --bom and --pnp are required"},
		{"unknown profile", []string{"--bom", f.bom, "--pnp", f.pnp, "-p", "nope"}, "profile not found"},
		{"bad format", []string{"--bom", f.bom, "--pnp", f.pnp, "-f", "pdf"}, "invalid format"},
		{"bad distance", []string{"--bom", f.bom, "--pnp", f.pnp, "--min-distance", "0"}, "invalid min distance"},
		{"unknown project", []string{"--project", "x.csv"}, "project not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"check", "-c", f.config}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPreview(t *testing.T) {
	f := writeTestFiles(t)

	out, err := execute(t, "preview", f.pnp, "-s", "semicolon", "--first-row", "2", "--last-row", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "002 | R1 | 10k | 0402 | 0 | 0 | T | ", lines[0])
	assert.Equal(t, "003 | R2 | 10k | 0402 | 1 | 0 | T | ", lines[1])

	out, err = execute(t, "preview", f.pnp, "-s", "semicolon", "--last-row", "2", "--letters")
	require.NoError(t, err)
	assert.Equal(t, "    | A   | B   | C       | D | E | F    | \n"+
		"001 | Ref | Val | Package | X | Y | Side | \n"+
		"002 | R1  | 10k | 0402    | 0 | 0 | T    | \n", out)
}

func TestProfilesCommands(t *testing.T) {
	f := writeTestFiles(t)

	_, err := execute(t, "profiles", "init", "new", "-c", f.config)
	require.NoError(t, err)
	_, err = execute(t, "profiles", "init", "new", "-c", f.config)
	assert.Error(t, err)

	out, err := execute(t, "profiles", "-c", f.config)
	require.NoError(t, err)
	assert.Equal(t, "board (0 project(s))\nnew (0 project(s))\n", out)

	out, err = execute(t, "profiles", "show", "board", "-c", f.config)
	require.NoError(t, err)
	assert.Contains(t, out, "designator: Ref")

	_, err = execute(t, "profiles", "delete", "new", "-c", f.config)
	require.NoError(t, err)
	out, err = execute(t, "profiles", "-c", f.config)
	require.NoError(t, err)
	assert.NotContains(t, out, "new")
}
