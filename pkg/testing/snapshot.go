package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-drift/carbon/pkg/component"
	"github.com/go-drift/carbon/pkg/surface"
)

// Snapshot captures what a FakeSurface currently displays.
type Snapshot struct {
	Sections []SectionSnapshot `json:"sections"`
}

// SectionSnapshot is one section of a Snapshot.
type SectionSnapshot struct {
	Header *ViewSnapshot  `json:"header,omitempty"`
	Cells  []ViewSnapshot `json:"cells"`
	Footer *ViewSnapshot  `json:"footer,omitempty"`
}

// ViewSnapshot describes one displayed view.
type ViewSnapshot struct {
	Path       string `json:"path,omitempty"`
	View       string `json:"view"`
	Identifier string `json:"identifier,omitempty"`
	Component  string `json:"component,omitempty"`
	Selected   bool   `json:"selected,omitempty"`
}

// CaptureSnapshot records the displayed views of s, ordered by section and
// item.
func (s *FakeSurface) CaptureSnapshot() *Snapshot {
	paths := make([]component.IndexPath, 0, len(s.visible))
	last := -1
	for at := range s.visible {
		paths = append(paths, at)
		last = max(last, at.Section)
	}
	for sec := range s.headers {
		last = max(last, sec)
	}
	for sec := range s.footers {
		last = max(last, sec)
	}
	slices.SortFunc(paths, func(a, b component.IndexPath) int {
		if a.Section != b.Section {
			return a.Section - b.Section
		}
		return a.Item - b.Item
	})

	snap := &Snapshot{Sections: make([]SectionSnapshot, last+1)}
	for i := range snap.Sections {
		snap.Sections[i].Cells = []ViewSnapshot{}
	}
	for _, at := range paths {
		v := describeView(s.visible[at])
		v.Path = at.String()
		v.Selected = s.selected[at]
		snap.Sections[at.Section].Cells = append(snap.Sections[at.Section].Cells, v)
	}
	for sec, view := range s.headers {
		v := describeView(view)
		snap.Sections[sec].Header = &v
	}
	for sec, view := range s.footers {
		v := describeView(view)
		snap.Sections[sec].Footer = &v
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. When
// CARBON_UPDATE_SNAPSHOTS=1 is set, the file is rewritten instead.
func (s *Snapshot) MatchesFile(t TB, path string) {
	t.Helper()

	if os.Getenv("CARBON_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: CARBON_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: CARBON_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other and this snapshot, or "" when
// they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func describeView(v surface.ReusableView) ViewSnapshot {
	out := ViewSnapshot{View: typeName(v)}
	c := v.RenderedComponent()
	if c.IsZero() {
		return out
	}
	out.Identifier = c.ReuseIdentifier()
	out.Component = fmt.Sprintf("%+v", c.Base())
	return out
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")
	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}
