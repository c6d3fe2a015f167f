package style

import (
	"reflect"
	"testing"
)

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]any
		override map[string]any
		want     map[string]any
	}{
		{
			name:     "empty override keeps base",
			base:     map[string]any{"a": 1, "b": "x"},
			override: map[string]any{},
			want:     map[string]any{"a": 1, "b": "x"},
		},
		{
			name:     "scalar replaced",
			base:     map[string]any{"a": 1},
			override: map[string]any{"a": 2},
			want:     map[string]any{"a": 2},
		},
		{
			name:     "new key added",
			base:     map[string]any{"a": 1},
			override: map[string]any{"b": 2},
			want:     map[string]any{"a": 1, "b": 2},
		},
		{
			name: "nested maps merge recursively",
			base: map[string]any{
				"figure": map[string]any{"dpi": 200, "title_pad": 20.0},
			},
			override: map[string]any{
				"figure": map[string]any{"dpi": 300},
			},
			want: map[string]any{
				"figure": map[string]any{"dpi": 300, "title_pad": 20.0},
			},
		},
		{
			name:     "map replaced by scalar",
			base:     map[string]any{"a": map[string]any{"x": 1}},
			override: map[string]any{"a": 7},
			want:     map[string]any{"a": 7},
		},
		{
			name:     "scalar replaced by map",
			base:     map[string]any{"a": 7},
			override: map[string]any{"a": map[string]any{"x": 1}},
			want:     map[string]any{"a": map[string]any{"x": 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deepMerge(tt.base, tt.override)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("deepMerge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeepMergeDoesNotMutateBase(t *testing.T) {
	base := map[string]any{
		"colors": map[string]any{"main_start": "#ffffff", "main_end": "#ffffff"},
	}
	_ = deepMerge(base, map[string]any{
		"colors": map[string]any{"main_start": "#d6eaf8"},
	})

	inner := base["colors"].(map[string]any)
	if inner["main_start"] != "#ffffff" {
		t.Errorf("base was mutated: main_start = %v", inner["main_start"])
	}
}
