package pkg

import (
	"github.com/hansbonini/nanitools/pkg/common"
	"github.com/hansbonini/nanitools/pkg/config"
	"github.com/hansbonini/nanitools/pkg/workbook"
)

// portraitFlagFalse is the only folded flag value that marks a character without portrait
const portraitFlagFalse = "f"

// CharacterRegistry maps display names to character ids and records which ids have a portrait.
// It is immutable once built; an empty registry is valid and resolves nothing.
type CharacterRegistry struct {
	ids       map[string]string
	portraits map[string]bool
	entries   []CharacterEntry
}

// NewCharacterRegistry builds a registry from entries. Entries with an empty
// display name or id are discarded; a later entry for the same key replaces an earlier one.
func NewCharacterRegistry(entries []CharacterEntry) *CharacterRegistry {
	r := &CharacterRegistry{
		ids:       make(map[string]string),
		portraits: make(map[string]bool),
	}
	for _, entry := range entries {
		entry.DisplayName = common.NormalizeCell(entry.DisplayName)
		entry.ID = common.NormalizeCell(entry.ID)
		if entry.DisplayName == "" || entry.ID == "" {
			continue
		}
		r.ids[entry.DisplayName] = entry.ID
		r.portraits[entry.ID] = entry.HasPortrait
		r.entries = append(r.entries, entry)
		common.LogDebug(common.DebugCharacterMapped, entry.DisplayName, entry.ID, entry.HasPortrait)
	}
	return r
}

// LoadCharacterRegistry reads the character table of a workbook.
// A missing sheet, missing columns or an unreadable table yield an empty registry and a warning.
func LoadCharacterRegistry(wb workbook.Workbook, cfg config.Config) *CharacterRegistry {
	if !hasSheet(wb, cfg.CharacterSheet) {
		common.LogWarn(common.WarnNoCharacterSheet, cfg.CharacterSheet)
		return NewCharacterRegistry(nil)
	}

	table, err := wb.Table(cfg.CharacterSheet)
	if err != nil {
		common.LogWarn(common.WarnSheetUnreadable, cfg.CharacterSheet, err)
		return NewCharacterRegistry(nil)
	}

	registry := CharacterRegistryFromTable(table, cfg.Columns)
	if registry.Len() > 0 {
		common.LogInfo(common.InfoCharactersLoaded, registry.Len(), cfg.CharacterSheet)
	}
	return registry
}

// CharacterRegistryFromTable builds a registry from a character table.
func CharacterRegistryFromTable(table *workbook.Table, columns config.Columns) *CharacterRegistry {
	if table == nil {
		return NewCharacterRegistry(nil)
	}
	if !table.HasColumn(columns.DisplayName) || !table.HasColumn(columns.ID) {
		common.LogWarn(common.WarnCharacterColumns, table.Name, columns.DisplayName, columns.ID)
		return NewCharacterRegistry(nil)
	}

	entries := make([]CharacterEntry, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		name, _ := table.Cell(i, columns.DisplayName)
		id, _ := table.Cell(i, columns.ID)
		flag, _ := table.Cell(i, columns.HasPortrait)
		entries = append(entries, CharacterEntry{
			DisplayName: name,
			ID:          id,
			HasPortrait: ParsePortraitFlag(flag),
		})
	}

	registry := NewCharacterRegistry(entries)
	if registry.Len() == 0 {
		common.LogWarn(common.WarnEmptyCharacterTable, table.Name)
	}
	return registry
}

// ParsePortraitFlag interprets a has-portrait cell. Only "F" (trimmed, any case)
// means no portrait; blank and every other value mean the character has one.
func ParsePortraitFlag(raw string) bool {
	return common.FoldFlag(raw) != portraitFlagFalse
}

// Lookup returns the id registered for a display name
func (r *CharacterRegistry) Lookup(displayName string) (string, bool) {
	id, ok := r.ids[displayName]
	return id, ok
}

// HasPortrait reports whether show/hide directives apply to id.
// It is total: ids missing from the registry default to true.
func (r *CharacterRegistry) HasPortrait(id string) bool {
	hasPortrait, ok := r.portraits[id]
	if !ok {
		return true
	}
	return hasPortrait
}

// Len returns the number of distinct display names
func (r *CharacterRegistry) Len() int {
	return len(r.ids)
}

// Entries returns the accepted character rows in table order
func (r *CharacterRegistry) Entries() []CharacterEntry {
	entries := make([]CharacterEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

func hasSheet(wb workbook.Workbook, name string) bool {
	for _, sheet := range wb.SheetNames() {
		if sheet == name {
			return true
		}
	}
	return false
}
