package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"code", "Visual Studio Code"},
		{"explorer.exe", "Explorer"},
		{"", "untitled"},
	}
	got := Format(rows, nil)
	want := []string{
		"code          Visual Studio Code",
		"explorer.exe  Explorer          ",
		"              untitled          ",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows\n%q\n%q", got, want)
	}
}

func TestFormatRightAlignment(t *testing.T) {
	got := Format([][]string{{"7", "ab"}, {"1234", "c"}}, []Column{{Align: AlignRight}})
	want := []string{"   7  ab", "1234  c "}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows %q", got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestFormatCapsColumnWidth(t *testing.T) {
	got := Format([][]string{{"gnome-terminal-server", "shell"}, {"vim", "notes"}}, []Column{{Max: 8}})
	if len([]rune(got[0])) != len([]rune(got[1])) {
		t.Fatalf("rows not aligned: %q", got)
	}
	if got[1] != "vim       notes" {
		t.Fatalf("unexpected capped row %q", got[1])
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"b", "c"}}, nil)
	if got[0] != "a   " || got[1] != "b  c" {
		t.Fatalf("unexpected ragged rows %q", got)
	}
}
