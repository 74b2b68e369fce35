package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"))
	if s.Len() != 0 {
		t.Fatalf("expected empty set, got %d", s.Len())
	}
}

func TestLoad_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Load(path)
	if s.Len() != 0 {
		t.Fatalf("expected empty set from corrupt file, got %d", s.Len())
	}
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")

	s := NewSeenSet()
	for _, id := range []string{"3", "1", "2"} {
		s.Add(id)
	}
	if err := Save(path, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := Load(path).IDs()
	want := []string{"3", "1", "2"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: got %v want %v", got, want)
		}
	}
}

func TestSave_CapKeepsMostRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")

	// first run: 1500 ids
	s := NewSeenSet()
	for i := 0; i < 1500; i++ {
		s.Add(fmt.Sprintf("job-%04d", i))
	}
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	// second run: 1000 more, 2500 total inserted across runs
	s = Load(path)
	for i := 1500; i < 2500; i++ {
		s.Add(fmt.Sprintf("job-%04d", i))
	}
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	got := Load(path).IDs()
	if len(got) != MaxSeen {
		t.Fatalf("expected %d retained ids, got %d", MaxSeen, len(got))
	}
	if got[0] != "job-0500" {
		t.Fatalf("oldest retained should be job-0500, got %s", got[0])
	}
	if got[len(got)-1] != "job-2499" {
		t.Fatalf("newest retained should be job-2499, got %s", got[len(got)-1])
	}
}

func TestSave_PrettyPrintedUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_jobs.json")

	s := NewSeenSet()
	s.Add("जॉब-1")
	s.Add("job-2")
	if err := Save(path, s); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "\n  ") {
		t.Fatalf("expected indented output, got %q", b)
	}
	if !strings.Contains(string(b), "जॉब-1") {
		t.Fatalf("non-ASCII should be preserved verbatim, got %q", b)
	}

	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
}

func TestSeenSet_AddIgnoresDuplicatesAndEmpties(t *testing.T) {
	s := NewSeenSet("a")
	if s.Add("a") {
		t.Fatal("duplicate add should report false")
	}
	if s.Add("") {
		t.Fatal("empty add should report false")
	}
	if !s.Add("b") {
		t.Fatal("new add should report true")
	}
	if s.Added() != 1 {
		t.Fatalf("expected 1 added this run, got %d", s.Added())
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 ids, got %d", s.Len())
	}
}
