package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStepsTOML(t *testing.T) {
	path := writeTemp(t, "steps.toml", `
[[step]]
heading = "Registered"
count = 350

[[step]]
heading = "Screened"
n = 150
exclusion_description = "Not eligible"
color_name = "steelblue"
`)

	steps, err := loadSteps(path)
	if err != nil {
		t.Fatalf("loadSteps() unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(steps))
	}
	if steps[0].Heading != "Registered" || steps[0].Count != 350 {
		t.Errorf("steps[0] = %+v", steps[0])
	}
	if steps[1].Count != 150 {
		t.Errorf("steps[1].Count = %d, want 150 via the n alias", steps[1].Count)
	}
	if steps[1].ExclusionDescription != "Not eligible" || steps[1].ColorName != "steelblue" {
		t.Errorf("steps[1] = %+v", steps[1])
	}
}

func TestLoadStepsCountWinsOverAlias(t *testing.T) {
	path := writeTemp(t, "steps.toml", `
[[step]]
count = 100
n = 42
`)
	steps, err := loadSteps(path)
	if err != nil {
		t.Fatalf("loadSteps() unexpected error: %v", err)
	}
	if steps[0].Count != 100 {
		t.Errorf("Count = %d, want count key to win over n", steps[0].Count)
	}
}

func TestLoadStepsJSON(t *testing.T) {
	path := writeTemp(t, "steps.json", `[
  {"heading": "Registered", "N": 350},
  {"heading": "Analysed", "N": 120, "exclusion_description": "Lost to follow-up"}
]`)

	steps, err := loadSteps(path)
	if err != nil {
		t.Fatalf("loadSteps() unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(steps))
	}
	if steps[0].Count != 350 {
		t.Errorf("steps[0].Count = %d, the uppercase N key should match", steps[0].Count)
	}
	if steps[1].ExclusionDescription != "Lost to follow-up" {
		t.Errorf("steps[1] = %+v", steps[1])
	}
}

func TestLoadStepsErrors(t *testing.T) {
	t.Run("missing count", func(t *testing.T) {
		path := writeTemp(t, "steps.toml", "[[step]]\nheading = \"A\"\n")
		_, err := loadSteps(path)
		if err == nil || !strings.Contains(err.Error(), "missing a count") {
			t.Errorf("error = %v, want missing count", err)
		}
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := writeTemp(t, "steps.yaml", "steps: []")
		if _, err := loadSteps(path); err == nil {
			t.Error("yaml input should be rejected")
		}
	})

	t.Run("nonexistent file", func(t *testing.T) {
		if _, err := loadSteps(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("missing file should error")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeTemp(t, "steps.toml", "[[step\n")
		if _, err := loadSteps(path); err == nil {
			t.Error("malformed TOML should error")
		}
	})
}
