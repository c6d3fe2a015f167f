package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fschwar4/cohortflow/pkg/flow"
)

// stepRecord is the on-disk shape of one step. The count key accepts both
// "count" and the original's short "n"; when both are present, count wins.
type stepRecord struct {
	Heading              string `toml:"heading" json:"heading"`
	Description          string `toml:"description" json:"description"`
	Count                *int   `toml:"count" json:"count"`
	N                    *int   `toml:"n" json:"n"`
	ExclusionDescription string `toml:"exclusion_description" json:"exclusion_description"`
	Color                string `toml:"color" json:"color"`
	ColorName            string `toml:"color_name" json:"color_name"`
	ExclusionColor       string `toml:"exclusion_color" json:"exclusion_color"`
	ExclusionColorName   string `toml:"exclusion_color_name" json:"exclusion_color_name"`
}

// stepFile is the TOML document shape: a sequence of [[step]] tables.
type stepFile struct {
	Steps []stepRecord `toml:"step"`
}

// loadSteps reads step records from a TOML ([[step]] tables) or JSON
// (top-level array) file, chosen by extension.
func loadSteps(path string) ([]flow.Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read steps file: %w", err)
	}

	var records []stepRecord
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var doc stepFile
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		records = doc.Steps
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported steps file %s: use .toml or .json", path)
	}

	steps := make([]flow.Step, len(records))
	for i, r := range records {
		count := r.Count
		if count == nil {
			count = r.N
		}
		if count == nil {
			return nil, fmt.Errorf("step %d in %s is missing a count", i, path)
		}
		steps[i] = flow.Step{
			Heading:              r.Heading,
			Description:          r.Description,
			Count:                *count,
			ExclusionDescription: r.ExclusionDescription,
			Color:                r.Color,
			ColorName:            r.ColorName,
			ExclusionColor:       r.ExclusionColor,
			ExclusionColorName:   r.ExclusionColorName,
		}
	}
	return steps, nil
}
