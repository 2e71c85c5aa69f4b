package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hansbonini/nanitools/pkg/workbook"
	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]string, order ...string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet failed: %v", err)
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir for toolchains older than Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestAddGlobalFlags(t *testing.T) {
	saved := opts
	t.Cleanup(func() { opts = saved })

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addGlobalFlags(flags)

	if err := flags.Parse([]string{"-v", "-c", "columns.yaml", "--log-file", "run.log"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !opts.Verbose || opts.ConfigFile != "columns.yaml" || opts.LogFile != "run.log" {
		t.Errorf("opts = %+v", opts)
	}
}

func TestResolveWorkbook_Argument(t *testing.T) {
	got, err := resolveWorkbook([]string{"story.xlsx"})
	if err != nil || got != "story.xlsx" {
		t.Errorf("resolveWorkbook() = %q, %v", got, err)
	}
}

func TestResolveWorkbook_Discovery(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.xlsx", "~$a.xlsx"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	chdir(t, dir)

	got, err := resolveWorkbook(nil)
	if err != nil {
		t.Fatalf("resolveWorkbook() failed: %v", err)
	}
	if filepath.Base(got) != "a.xlsx" {
		t.Errorf("resolveWorkbook() = %q, want a.xlsx", got)
	}
}

func TestResolveWorkbook_NoneFound(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := resolveWorkbook(nil); !errors.Is(err, workbook.ErrWorkbookNotFound) {
		t.Errorf("resolveWorkbook() error = %v, want ErrWorkbookNotFound", err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "story.xlsx")
	writeWorkbook(t, input, map[string][][]string{
		"Character": {{"中文顯示", "id", "是否有立繪"}, {"Alice", "A01", "T"}},
		"S1":        {{"角色", "對話內容", "選項"}, {"Alice", "Hello"}, {"", "Next", "S2"}},
		"S2":        {{"角色", "對話內容"}, {"", "The end."}},
	}, "Character", "S1", "S2")
	output := filepath.Join(dir, "out")
	report := filepath.Join(dir, "report.yaml")

	rootCmd.SetArgs([]string{"convert", "--report", report, input, output})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(output, "S1.nani"))
	if err != nil {
		t.Fatalf("S1.nani not written: %v", err)
	}
	if !strings.Contains(string(data), "# S2\nThe end.\n@stopAvg") {
		t.Errorf("S1.nani should inline S2, got %q", data)
	}
	if _, err := os.Stat(filepath.Join(output, "S2.nani")); !os.IsNotExist(err) {
		t.Error("S2.nani should not be written")
	}
	if _, err := os.Stat(report); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestCharactersCommand(t *testing.T) {
	input := filepath.Join(t.TempDir(), "cast.xlsx")
	writeWorkbook(t, input, map[string][][]string{
		"Character": {{"中文顯示", "id", "是否有立繪"}, {"Alice", "A01", "T"}, {"Bob", "B01", "F"}},
	}, "Character")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"characters", input})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("characters failed: %v", err)
	}

	for _, want := range []string{"display_name: Alice", "id: B01", "has_portrait: false"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, out.String())
		}
	}
}
