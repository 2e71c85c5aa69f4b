package pkg

import (
	"path/filepath"

	"github.com/hansbonini/nanitools/pkg/common"
	"github.com/hansbonini/nanitools/pkg/config"
	"github.com/hansbonini/nanitools/pkg/workbook"
)

// Reasons recorded for sheets left out of a conversion
const (
	SkipReasonUnreadable      = "unreadable"
	SkipReasonMissingDialogue = "missing dialogue column"
)

// ConvertProcessor runs the full conversion pipeline:
// character registry, per-sheet compilation, script graph merge and file output.
type ConvertProcessor struct {
	cfg config.Config
}

// NewConvertProcessor creates a processor for the given configuration
func NewConvertProcessor(cfg config.Config) *ConvertProcessor {
	return &ConvertProcessor{cfg: cfg}
}

// DefaultOutputDir returns the folder named after the workbook, next to it.
func DefaultOutputDir(workbookPath string) string {
	return filepath.Join(filepath.Dir(workbookPath), common.BaseNameWithoutExt(workbookPath))
}

// ConvertFile opens a workbook file and converts it.
// An empty outputDir selects DefaultOutputDir.
func (p *ConvertProcessor) ConvertFile(inputFile, outputDir string) (*ConversionResult, error) {
	wb, err := workbook.Open(inputFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenWorkbook, err)
	}
	defer wb.Close()

	if outputDir == "" {
		outputDir = DefaultOutputDir(inputFile)
	}

	result, err := p.Process(wb, outputDir)
	if result != nil {
		result.Workbook = inputFile
	}
	return result, err
}

// Process converts an opened workbook and writes the root scripts into outputDir.
func (p *ConvertProcessor) Process(wb workbook.Workbook, outputDir string) (*ConversionResult, error) {
	result := &ConversionResult{OutputDir: outputDir}

	registry := LoadCharacterRegistry(wb, p.cfg)
	result.Characters = registry.Len()

	scripts, compiler := p.compileSheets(wb, registry, result)
	result.DroppedRows = compiler.DroppedRows()

	graph := NewScriptGraph(scripts)
	common.LogDebug(common.DebugGraphBuilt, graph.Len())
	graph.Merge()
	common.LogInfo(common.InfoMergeCompleted, graph.TotalMerges(), graph.Passes())

	result.Roots = graph.Roots()
	result.MergePasses = graph.Passes()
	for _, name := range graph.MergedAway() {
		into, _ := graph.MergedInto(name)
		result.Merged = append(result.Merged, MergedSheet{Name: name, Into: into})
	}

	if len(result.Roots) == 0 {
		common.LogInfo(common.InfoNoScriptsToWrite)
	}

	emitter := NewScriptFileEmitter(p.cfg.OutputFileName)
	written, failures, err := emitter.Emit(graph, outputDir)
	if err != nil {
		return result, err
	}
	result.Written = written
	for _, failure := range failures {
		result.Failed = append(result.Failed, failure.Error())
	}
	result.FailedWrites = len(failures)

	common.LogInfo(common.InfoConversionSummary,
		len(result.Compiled), len(result.Written), result.DroppedRows, result.FailedWrites)
	return result, nil
}

// compileSheets compiles every non-reserved sheet in workbook order.
func (p *ConvertProcessor) compileSheets(wb workbook.Workbook, registry *CharacterRegistry, result *ConversionResult) ([]SheetScript, *SheetCompiler) {
	compiler := NewSheetCompiler(registry, p.cfg.Terminator).WithCharacterSheet(p.cfg.CharacterSheet)

	var scripts []SheetScript
	for _, sheet := range wb.SheetNames() {
		if p.cfg.IsReservedSheet(sheet) {
			common.LogDebug(common.DebugReservedSheet, sheet)
			continue
		}
		common.LogInfo(common.InfoProcessingSheet, sheet)

		table, err := wb.Table(sheet)
		if err != nil {
			common.LogWarn(common.WarnSheetUnreadable, sheet, err)
			result.Skipped = append(result.Skipped, SkippedSheet{Name: sheet, Reason: SkipReasonUnreadable})
			continue
		}

		rows, err := RowsFromTable(table, p.cfg.Columns)
		if err != nil {
			common.LogWarn(common.WarnMissingDialogueColumn, sheet, p.cfg.Columns.Dialogue)
			result.Skipped = append(result.Skipped, SkippedSheet{Name: sheet, Reason: SkipReasonMissingDialogue})
			continue
		}

		lines := compiler.Compile(sheet, rows)
		common.LogDebug(common.DebugSheetCompiled, sheet, len(lines))
		scripts = append(scripts, SheetScript{Name: sheet, Lines: lines})
		result.Compiled = append(result.Compiled, sheet)
	}
	return scripts, compiler
}

// LoadCharacters opens a workbook file and returns its character registry
func (p *ConvertProcessor) LoadCharacters(inputFile string) (*CharacterRegistry, error) {
	wb, err := workbook.Open(inputFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenWorkbook, err)
	}
	defer wb.Close()
	return LoadCharacterRegistry(wb, p.cfg), nil
}
