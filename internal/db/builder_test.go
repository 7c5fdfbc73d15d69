package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Build(t *testing.T) {
	def, err := NewIndex("gasit:listing:idx").
		Prefix("gasit:listing:").
		Text("title").
		Tag("status").
		Geo("location").
		Numeric("created_at").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.Name != "gasit:listing:idx" {
		t.Errorf("name: got %s", def.Name)
	}
	if def.StorageType != StorageHash {
		t.Errorf("storage type: got %s, want HASH", def.StorageType)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "gasit:listing:" {
		t.Errorf("prefixes: got %v", def.Prefixes)
	}
	if len(def.Fields) != 4 {
		t.Fatalf("fields: got %d, want 4", len(def.Fields))
	}

	wantTypes := []IndexFieldType{IndexFieldText, IndexFieldTag, IndexFieldGeo, IndexFieldNumeric}
	for i, want := range wantTypes {
		if def.Fields[i].Type != want {
			t.Errorf("field %d type: got %d, want %d", i, def.Fields[i].Type, want)
		}
	}
}

func TestIndexBuilder_Validation(t *testing.T) {
	if _, err := NewIndex("").Text("title").Build(); err == nil {
		t.Error("empty index name should fail")
	}
	if _, err := NewIndex("idx").Build(); err == nil {
		t.Error("index without fields should fail")
	}
	if _, err := NewIndex("idx").Text("title").Text("title").Build(); err == nil {
		t.Error("duplicate field should fail")
	}
	if _, err := NewIndex("bad name").Text("title").Build(); err == nil {
		t.Error("index name with spaces should fail")
	}
}

func TestIndexDefinition_String(t *testing.T) {
	def := NewIndex("gasit:listing:idx").
		Prefix("gasit:listing:").
		Text("title").
		Geo("location").
		MustBuild()

	s := def.String()
	for _, want := range []string{"FT.CREATE", "ON HASH", "PREFIX gasit:listing:", "title TEXT", "location GEO"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}
