// Package config loads the conversion settings for NaniTools.
// Settings live in an optional YAML file; any field left out keeps its default,
// so a file may override only the column names that differ in a given workbook.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hansbonini/nanitools/pkg/common"
	"gopkg.in/yaml.v3"
)

// Columns names the header cells recognized in the workbook sheets.
type Columns struct {
	DisplayName string `yaml:"display_name"`
	ID          string `yaml:"id"`
	HasPortrait string `yaml:"has_portrait"`
	Speaker     string `yaml:"speaker"`
	Dialogue    string `yaml:"dialogue"`
	Choice      string `yaml:"choice"`
}

// Config holds everything the converter needs besides the workbook itself.
type Config struct {
	CharacterSheet string  `yaml:"character_sheet"`
	StageSheet     string  `yaml:"stage_sheet"`
	Extension      string  `yaml:"extension"`
	Terminator     string  `yaml:"terminator"`
	Columns        Columns `yaml:"columns"`
}

// Default values match the layout of the Naninovel dialogue workbooks.
const (
	DefaultCharacterSheet = "Character"
	DefaultStageSheet     = "Stage"
	DefaultExtension      = "nani"
	DefaultTerminator     = "@stopAvg"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CharacterSheet: DefaultCharacterSheet,
		StageSheet:     DefaultStageSheet,
		Extension:      DefaultExtension,
		Terminator:     DefaultTerminator,
		Columns: Columns{
			DisplayName: "中文顯示",
			ID:          "id",
			HasPortrait: "是否有立繪",
			Speaker:     "角色",
			Dialogue:    "對話內容",
			Choice:      "選項",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, common.FormatError(common.ErrFailedToLoadConfig, err)
	}
	if err := checkSchema(data); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, common.FormatError(common.ErrFailedToParseConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	common.LogDebug(common.DebugConfigLoaded, path)
	return cfg, nil
}

// Validate reports every problem found in the configuration at once.
func (c Config) Validate() error {
	var problems []error

	required := map[string]string{
		"character_sheet":      c.CharacterSheet,
		"stage_sheet":          c.StageSheet,
		"extension":            c.Extension,
		"terminator":           c.Terminator,
		"columns.display_name": c.Columns.DisplayName,
		"columns.id":           c.Columns.ID,
		"columns.has_portrait": c.Columns.HasPortrait,
		"columns.speaker":      c.Columns.Speaker,
		"columns.dialogue":     c.Columns.Dialogue,
		"columns.choice":       c.Columns.Choice,
	}
	for _, key := range sortedKeys(required) {
		if strings.TrimSpace(required[key]) == "" {
			problems = append(problems, fmt.Errorf("%s must not be empty", key))
		}
	}

	if c.CharacterSheet != "" && c.CharacterSheet == c.StageSheet {
		problems = append(problems, fmt.Errorf("character_sheet and stage_sheet must differ (both %q)", c.CharacterSheet))
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		problems = append(problems, fmt.Errorf("extension %q must not contain a path separator", c.Extension))
	}

	if len(problems) > 0 {
		return common.FormatError(common.ErrInvalidConfig, errors.Join(problems...))
	}
	return nil
}

// IsReservedSheet reports whether a sheet carries metadata and must not be compiled.
func (c Config) IsReservedSheet(name string) bool {
	return name == c.CharacterSheet || name == c.StageSheet
}

// OutputFileName returns the script file name for a sheet.
func (c Config) OutputFileName(sheet string) string {
	return sheet + "." + strings.TrimPrefix(c.Extension, ".")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
