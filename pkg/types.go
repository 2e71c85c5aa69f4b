package pkg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hansbonini/nanitools/pkg/workbook"
)

// Script directives of the output dialect
const (
	DirectiveChar   = "@char"
	DirectiveHide   = "@hide"
	DirectiveChoice = "@choice"
	DirectiveStop   = "@stop"
)

// Section markers inserted where a merged sheet begins
const (
	SectionCommentFormat = "; User marker: [# %s]"
	SectionLabelFormat   = "# %s"
)

// choiceJumpPattern captures the target of a choice line: @choice "text" goto:.Target
var choiceJumpPattern = regexp.MustCompile(`^@choice\s+"[^"]*"\s+goto:\.(.+)`)

// CharacterEntry is one row of the character table
type CharacterEntry struct {
	DisplayName string `yaml:"display_name"`
	ID          string `yaml:"id"`
	HasPortrait bool   `yaml:"has_portrait"`
}

// Row is one dialogue row with its cells already trimmed.
// RawChoice keeps the untrimmed choice cell so blank-but-present cells can be told apart from absent ones.
type Row struct {
	Number          int // row number as shown by spreadsheet editors
	Speaker         string
	Text            string
	Choice          string
	RawChoice       string
	HasChoiceColumn bool
}

// IsChoice reports whether the row is an option of a choice block
func (r Row) IsChoice() bool {
	return r.Text != "" && r.Choice != ""
}

// IsInvalidChoice reports whether the row has text and a choice cell that trims to nothing
func (r Row) IsInvalidChoice() bool {
	return r.Text != "" && r.Choice == "" && r.HasChoiceColumn && r.RawChoice != ""
}

// SheetScript is the compiled line sequence of one sheet
type SheetScript struct {
	Name  string
	Lines []string
}

// CharLine shows a character
func CharLine(id string) string {
	return DirectiveChar + " " + id
}

// HideLine hides a character
func HideLine(id string) string {
	return DirectiveHide + " " + id
}

// SpeechLine attributes text to a character
func SpeechLine(id, text string) string {
	return id + ": " + text
}

// ChoiceLine presents an option that jumps to the named section
func ChoiceLine(text, target string) string {
	return fmt.Sprintf(`%s "%s" goto:.%s`, DirectiveChoice, text, target)
}

// ChoiceTarget extracts the jump target of a choice line.
// The boolean is false for lines that are not choice jumps.
func ChoiceTarget(line string) (string, bool) {
	match := choiceJumpPattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

// SectionHeader returns the lines that open an inlined section
func SectionHeader(name string) []string {
	return []string{
		fmt.Sprintf(SectionCommentFormat, name),
		fmt.Sprintf(SectionLabelFormat, name),
	}
}

// CharacterLookup resolves speakers to character ids
type CharacterLookup interface {
	Lookup(displayName string) (string, bool)
	HasPortrait(id string) bool
}

// ScriptCompiler turns the rows of one sheet into script lines
type ScriptCompiler interface {
	Compile(sheet string, rows []Row) []string
}

// ScriptMerger inlines choice targets into their referrers
type ScriptMerger interface {
	Merge() int
	Roots() []string
	MergedAway() []string
	Lines(name string) []string
}

// ScriptEmitter writes root scripts to persistent storage
type ScriptEmitter interface {
	Emit(merger ScriptMerger, outputDir string) ([]string, []EmitFailure, error)
}

// ConversionProcessor runs a complete workbook conversion
type ConversionProcessor interface {
	Process(wb workbook.Workbook, outputDir string) (*ConversionResult, error)
}
