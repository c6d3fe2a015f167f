package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fschwar4/cohortflow/pkg/flow/sink"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty defaults to png", in: "", want: []string{"png"}},
		{name: "single", in: "svg", want: []string{"svg"}},
		{name: "list with spaces", in: "png, SVG ,pdf", want: []string{"png", "svg", "pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats(sink.Formats()); err != nil {
		t.Errorf("all sink formats should validate, got %v", err)
	}
	if err := validateFormats([]string{"png", "dot"}); err != nil {
		t.Errorf("dot should validate, got %v", err)
	}
	err := validateFormats([]string{"png", "bmp"})
	if err == nil || !strings.Contains(err.Error(), "invalid format: bmp") {
		t.Errorf("validateFormats(bmp) = %v, want invalid format error", err)
	}
}
