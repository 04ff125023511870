package ast

import (
	"reflect"
	"testing"
)

func TestParseFQFnName(t *testing.T) {
	tests := []struct {
		input string
		want  FQFnName
	}{
		{"double", UserName("double")},
		{"my_v1", UserName("my_v1")},
		{"Int::add", StdlibName("Int", "add", 0)},
		{"String::length_v1", StdlibName("String", "length", 1)},
		{"acme.text.shout_v0", PackageName("acme", []string{"text"}, "shout", 0)},
		{"acme.A.B.f_v12", PackageName("acme", []string{"A", "B"}, "f", 12)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFQFnName(tt.input)
			if err != nil {
				t.Fatalf("ParseFQFnName(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFQFnName(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
			if s := got.String(); s != tt.input {
				t.Errorf("String() = %q, want %q", s, tt.input)
			}
		})
	}
}

func TestParseFQFnNameErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"Int::",
		"::add",
		"A::B::c",
		"acme.f_v0",
		"acme.text.shout",
		"acme..shout_v0",
		"acme.text.shout_vX",
	} {
		if _, err := ParseFQFnName(input); err == nil {
			t.Errorf("ParseFQFnName(%q) should fail", input)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name FQFnName
		want string
	}{
		{StdlibName("String", "length", 1), "String::length"},
		{StdlibName("String", "length", 0), "String::length"},
		{PackageName("acme", []string{"text"}, "shout", 3), "acme.text.shout"},
		{UserName("f"), "f"},
	}
	for _, tt := range tests {
		if got := tt.name.BaseName(); got != tt.want {
			t.Errorf("BaseName(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == 0 || seen[id] {
			t.Fatalf("NewID returned %d twice or zero", id)
		}
		seen[id] = true
	}
}
