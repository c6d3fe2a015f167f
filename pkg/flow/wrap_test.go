package flow

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  []string
	}{
		{name: "empty", s: "", width: 10, want: nil},
		{name: "whitespace only", s: "  \t  ", width: 10, want: nil},
		{name: "fits on one line", s: "assessed for eligibility", width: 30, want: []string{"assessed for eligibility"}},
		{name: "exact width fits", s: "ab cd", width: 5, want: []string{"ab cd"}},
		{name: "one past width breaks", s: "ab cde", width: 5, want: []string{"ab", "cde"}},
		{
			name:  "greedy fill",
			s:     "patients excluded due to missing baseline data",
			width: 16,
			want:  []string{"patients", "excluded due to", "missing baseline", "data"},
		},
		{name: "long word unbroken", s: "pneumonoultramicroscopic a", width: 8, want: []string{"pneumonoultramicroscopic", "a"}},
		{name: "internal whitespace collapses", s: "a   b\tc", width: 20, want: []string{"a b c"}},
		{name: "width zero disables wrapping", s: "a b  c", width: 0, want: []string{"a b c"}},
		{name: "single word", s: "randomized", width: 3, want: []string{"randomized"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.s, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %v, want %v", tt.s, tt.width, got, tt.want)
			}
		})
	}
}
