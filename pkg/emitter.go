// Package pkg converts dialogue workbooks into Naninovel scripts.
// This file contains the exporters that write root scripts and the YAML conversion report.
package pkg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hansbonini/nanitools/pkg/common"
	"gopkg.in/yaml.v3"
)

// EmitFailure records a script that could not be written
type EmitFailure struct {
	Sheet string
	Path  string
	Err   error
}

func (f EmitFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", common.ErrFailedToWriteScript, f.Path, f.Err)
}

// ScriptFileEmitter writes each root script to <outputDir>/<sheet>.<extension>.
type ScriptFileEmitter struct {
	fileName func(sheet string) string
}

// NewScriptFileEmitter creates an emitter naming files through fileName
func NewScriptFileEmitter(fileName func(sheet string) string) *ScriptFileEmitter {
	return &ScriptFileEmitter{fileName: fileName}
}

// Emit writes every root of merger, lines joined by a single newline.
// A failed file is logged and reported without stopping the others;
// only a missing output directory that cannot be created is fatal.
func (e *ScriptFileEmitter) Emit(merger ScriptMerger, outputDir string) ([]string, []EmitFailure, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, nil, common.FormatError(common.ErrFailedToCreateOutputDir, err)
	}

	var written []string
	var failures []EmitFailure
	for _, sheet := range merger.Roots() {
		path := filepath.Join(outputDir, e.fileName(sheet))
		content := strings.Join(merger.Lines(sheet), "\n")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			common.LogWarn(common.WarnScriptWriteFailed, path, err)
			failures = append(failures, EmitFailure{Sheet: sheet, Path: path, Err: err})
			continue
		}
		common.LogInfo(common.InfoScriptExported, sheet, path)
		written = append(written, path)
	}
	return written, failures, nil
}

// SkippedSheet names a sheet left out of the conversion and why
type SkippedSheet struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

// MergedSheet names a sheet inlined into another
type MergedSheet struct {
	Name string `yaml:"name"`
	Into string `yaml:"into"`
}

// ConversionResult summarizes one workbook conversion
type ConversionResult struct {
	Workbook     string         `yaml:"workbook"`
	OutputDir    string         `yaml:"output_dir"`
	Characters   int            `yaml:"characters"`
	Compiled     []string       `yaml:"compiled"`
	Skipped      []SkippedSheet `yaml:"skipped,omitempty"`
	Roots        []string       `yaml:"roots"`
	Merged       []MergedSheet  `yaml:"merged,omitempty"`
	Written      []string       `yaml:"written"`
	Failed       []string       `yaml:"failed,omitempty"`
	DroppedRows  int            `yaml:"dropped_rows"`
	MergePasses  int            `yaml:"merge_passes"`
	FailedWrites int            `yaml:"failed_writes"`
}

// ExportReport writes the conversion result as YAML
func ExportReport(result *ConversionResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		file.Close()
		return common.FormatError(common.ErrFailedToEncodeYAML, err)
	}
	if err := encoder.Close(); err != nil {
		file.Close()
		return common.FormatError(common.ErrFailedToEncodeYAML, err)
	}
	if err := file.Close(); err != nil {
		return common.FormatError(common.ErrFailedToWriteReport, err)
	}

	common.LogInfo(common.InfoReportExported, path)
	return nil
}

// ExportCharacters writes the registry entries as YAML
func ExportCharacters(registry *CharacterRegistry, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	payload := struct {
		Characters []CharacterEntry `yaml:"characters"`
	}{Characters: registry.Entries()}
	if err := encoder.Encode(payload); err != nil {
		return common.FormatError(common.ErrFailedToEncodeYAML, err)
	}
	return encoder.Close()
}
