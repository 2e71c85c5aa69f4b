package pkg

import (
	"errors"
	"fmt"

	"github.com/hansbonini/nanitools/pkg/common"
	"github.com/hansbonini/nanitools/pkg/config"
	"github.com/hansbonini/nanitools/pkg/workbook"
)

// ErrMissingDialogueColumn is returned for sheets without the dialogue column
var ErrMissingDialogueColumn = errors.New("missing dialogue column")

// RowsFromTable extracts dialogue rows from a sheet in table order.
func RowsFromTable(table *workbook.Table, columns config.Columns) ([]Row, error) {
	if !table.HasColumn(columns.Dialogue) {
		return nil, fmt.Errorf("%w: %s", ErrMissingDialogueColumn, columns.Dialogue)
	}

	rows := make([]Row, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		speaker, _ := table.Cell(i, columns.Speaker)
		text, _ := table.Cell(i, columns.Dialogue)
		rawChoice, hasChoice := table.Cell(i, columns.Choice)
		rows = append(rows, Row{
			Number:          workbook.RowNumber(i),
			Speaker:         common.NormalizeCell(speaker),
			Text:            common.NormalizeCell(text),
			Choice:          common.NormalizeCell(rawChoice),
			RawChoice:       rawChoice,
			HasChoiceColumn: hasChoice,
		})
	}
	return rows, nil
}

// SheetCompiler converts dialogue rows into script lines.
type SheetCompiler struct {
	characters     CharacterLookup
	terminator     string
	characterSheet string
	droppedRows    int
}

// NewSheetCompiler creates a compiler resolving speakers through characters.
// terminator closes every sheet that offers no choice.
func NewSheetCompiler(characters CharacterLookup, terminator string) *SheetCompiler {
	return &SheetCompiler{
		characters:     characters,
		terminator:     terminator,
		characterSheet: config.DefaultCharacterSheet,
	}
}

// WithCharacterSheet sets the sheet name quoted in unknown-speaker warnings
func (c *SheetCompiler) WithCharacterSheet(name string) *SheetCompiler {
	c.characterSheet = name
	return c
}

// DroppedRows returns how many rows were rejected with a warning so far
func (c *SheetCompiler) DroppedRows() int {
	return c.droppedRows
}

// sheetState is the speaker and choice state carried from one row to the next.
type sheetState struct {
	lines         []string
	shownID       string // speaker currently on screen, "" when none
	inChoiceBlock bool
	anyChoice     bool
}

// Compile produces the script lines for one sheet. State never leaks between calls.
func (c *SheetCompiler) Compile(sheet string, rows []Row) []string {
	st := &sheetState{}
	for _, row := range rows {
		c.step(sheet, st, row)
	}
	c.finish(st)
	return st.lines
}

func (c *SheetCompiler) step(sheet string, st *sheetState, row Row) {
	if row.IsChoice() {
		if !st.inChoiceBlock {
			c.hideShown(st)
			st.inChoiceBlock = true
		}
		st.anyChoice = true
		st.lines = append(st.lines, ChoiceLine(row.Text, row.Choice))
		st.shownID = ""
		common.LogDebug(common.DebugRowClassified, row.Number, sheet, "choice")
		return
	}

	if st.inChoiceBlock {
		st.lines = append(st.lines, DirectiveStop)
		st.inChoiceBlock = false
	}

	if row.IsInvalidChoice() {
		common.LogWarn(common.WarnInvalidChoice, row.Number, sheet, row.Text, row.RawChoice)
		c.droppedRows++
		return
	}

	if row.Text == "" {
		return
	}

	if row.Speaker == "" {
		c.hideShown(st)
		st.lines = append(st.lines, row.Text)
		st.shownID = ""
		common.LogDebug(common.DebugRowClassified, row.Number, sheet, "narration")
		return
	}

	id, ok := c.characters.Lookup(row.Speaker)
	if !ok {
		common.LogWarn(common.WarnUnknownSpeaker, row.Number, sheet, row.Speaker, row.Text, c.characterSheet)
		c.droppedRows++
		return
	}

	if st.shownID != id {
		c.hideShown(st)
		if c.characters.HasPortrait(id) {
			st.lines = append(st.lines, CharLine(id))
		}
	}
	st.lines = append(st.lines, SpeechLine(id, row.Text))
	st.shownID = id
	common.LogDebug(common.DebugRowClassified, row.Number, sheet, "speech")
}

func (c *SheetCompiler) finish(st *sheetState) {
	if st.inChoiceBlock {
		st.lines = append(st.lines, DirectiveStop)
		st.inChoiceBlock = false
	}
	c.hideShown(st)
	if len(st.lines) > 0 && !st.anyChoice {
		st.lines = append(st.lines, c.terminator)
	}
}

// hideShown hides the speaker on screen, if any, when it has a portrait.
// It does not clear shownID; callers decide what comes on screen next.
func (c *SheetCompiler) hideShown(st *sheetState) {
	if st.shownID != "" && c.characters.HasPortrait(st.shownID) {
		st.lines = append(st.lines, HideLine(st.shownID))
	}
}
