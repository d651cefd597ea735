package parser

import (
	"testing"

	"github.com/nathoo/spinwheel/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  types.Command
	}{
		{"", types.Command{}},
		{"   ", types.Command{}},
		{"spin", types.Command{Verb: "spin"}},
		{"SPIN", types.Command{Verb: "spin"}},
		{"s", types.Command{Verb: "spin"}},
		{"roll", types.Command{Verb: "spin"}},
		{"add Movie: Avatar", types.Command{Verb: "add", Arg: "Movie: Avatar"}},
		{"a   The Lion King  ", types.Command{Verb: "add", Arg: "The Lion King"}},
		{"+Titanic", types.Command{Verb: "add", Arg: "Titanic"}},
		{"+ Titanic", types.Command{Verb: "add", Arg: "Titanic"}},
		{"-3", types.Command{Verb: "remove", Arg: "3"}},
		{"rm item-4", types.Command{Verb: "remove", Arg: "item-4"}},
		{"delete The Matrix", types.Command{Verb: "remove", Arg: "The Matrix"}},
		{"ls", types.Command{Verb: "list"}},
		{"reset", types.Command{Verb: "clear"}},
		{"preset movies", types.Command{Verb: "load", Arg: "movies"}},
		{"geo", types.Command{Verb: "layout"}},
		{"stop", types.Command{Verb: "cancel"}},
		{"state", types.Command{Verb: "status"}},
		{"dance wildly", types.Command{Verb: "dance", Arg: "wildly"}},
		{"add\tTabbed Label", types.Command{Verb: "add", Arg: "Tabbed Label"}},
	}
	for _, tt := range tests {
		got := Parse(tt.input)
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParse_PreservesArgCase(t *testing.T) {
	got := Parse("ADD The Dark Knight")
	if got.Verb != "add" || got.Arg != "The Dark Knight" {
		t.Errorf("Parse = %+v", got)
	}
}
