package commands

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		verb    Verb
		indices []int
		args    string
	}{
		{"/yes", VerbYes, nil, ""},
		{"yes", VerbYes, nil, ""},
		{"  /NO  ", VerbNo, nil, ""},
		{"/analyze", VerbAnalyze, nil, ""},
		{"/help@cleanupbot", VerbHelp, nil, ""},
		{"/delete_only 1-3,5", VerbDeleteOnly, []int{1, 2, 3, 5}, "1-3,5"},
		{"/except 2 4", VerbExcept, []int{2, 4}, "2 4"},
		{"/delete_only", VerbDeleteOnly, []int{}, ""},
		{"/summary", VerbSummary, nil, ""},
		{"/backups", VerbBackups, nil, ""},
		{"what is this", VerbUnknown, nil, "what is this"},
		{"", VerbUnknown, nil, ""},
		{"   ", VerbUnknown, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Parse(tt.in)
			if got.Verb != tt.verb {
				t.Errorf("Parse(%q).Verb = %q, want %q", tt.in, got.Verb, tt.verb)
			}
			if tt.indices != nil && !reflect.DeepEqual(got.Indices, tt.indices) {
				t.Errorf("Parse(%q).Indices = %v, want %v", tt.in, got.Indices, tt.indices)
			}
			if got.Args != tt.args {
				t.Errorf("Parse(%q).Args = %q, want %q", tt.in, got.Args, tt.args)
			}
		})
	}
}

func TestParseIndexRanges(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"1-3,5", []int{1, 2, 3, 5}},
		{"5,1-3", []int{1, 2, 3, 5}},
		{"1,1,2-3,3", []int{1, 2, 3}},
		{"3 1\t2", []int{1, 2, 3}},
		{"1-3, x, 7", []int{1, 2, 3, 7}},
		{"a-b,oops", []int{}},
		{"", []int{}},
		{"3-1", []int{}}, // inverted range matches nothing
	}

	for _, tt := range tests {
		if got := ParseIndexRanges(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIndexRanges(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
