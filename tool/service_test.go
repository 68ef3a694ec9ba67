package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tilechat/storage"
	"tilechat/tile"
)

type fakeNoteStore struct {
	notes     []storage.Note
	upserted  []storage.Note
	searched  []string
	allCalled bool
	err       error
}

func (f *fakeNoteStore) Upsert(_ context.Context, note *storage.Note) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if note.ID == "" {
		note.ID = storage.NewNoteID()
	}
	f.upserted = append(f.upserted, *note)
	return note.ID, nil
}

func (f *fakeNoteStore) SearchByTitle(_ context.Context, substring string) ([]storage.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.searched = append(f.searched, substring)
	var matches []storage.Note
	for _, n := range f.notes {
		if strings.Contains(strings.ToLower(n.Title), strings.ToLower(substring)) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

func (f *fakeNoteStore) All(_ context.Context) ([]storage.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.allCalled = true
	return f.notes, nil
}

func newTestService(store *fakeNoteStore) (*Service, *tile.Service) {
	tiles := tile.NewService()
	svc := NewService(tiles, store)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, tiles
}

func TestRunUnknownTool(t *testing.T) {
	svc, _ := newTestService(&fakeNoteStore{})

	got, err := svc.Run(t.Context(), "UnknownTool", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "Tool UnknownTool was successfully called. Tool result: Unknown tool."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunGetCurrentTime(t *testing.T) {
	svc, tiles := newTestService(&fakeNoteStore{})

	got, err := svc.Run(t.Context(), "GetCurrentTime", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "Tool GetCurrentTime was successfully called. Tool result: 12:00:00."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	active := tiles.ActiveTiles()
	if len(active) != 1 {
		t.Fatalf("active tiles = %d, want a clock tile", len(active))
	}
	if _, ok := active[0].(*tile.TimeTile); !ok {
		t.Errorf("active tile is %T", active[0])
	}
}

func TestRunCreateNewNote(t *testing.T) {
	svc, tiles := newTestService(&fakeNoteStore{})

	got, err := svc.Run(t.Context(), "CreateNewNote", map[string]any{
		"title":   "A",
		"content": "<p>B</p>",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(got, `Created a new note titled "A"`) || !strings.Contains(got, "not saved yet") {
		t.Errorf("result = %q", got)
	}

	nt, ok := tiles.ActiveNote()
	if !ok {
		t.Fatal("no note tile was displayed")
	}
	note := nt.Note()
	if note.Title != "A" || note.Content != "<p>B</p>" {
		t.Errorf("note = %+v", note)
	}
	if note.ID == "" {
		t.Error("new note has no ID")
	}
}

func TestRunSaveNote(t *testing.T) {
	store := &fakeNoteStore{}
	svc, tiles := newTestService(store)

	t.Run("no note on screen", func(t *testing.T) {
		got, err := svc.Run(t.Context(), "SaveNote", nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		want := "Tool SaveNote was successfully called. Tool result: No note found to save."
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("saves the displayed note", func(t *testing.T) {
		tiles.Request(tile.NewNoteTile(storage.Note{Title: "Groceries", Content: "<p>milk</p>"}))

		got, err := svc.Run(t.Context(), "SaveNote", nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !strings.Contains(got, `Note "Groceries" was saved`) {
			t.Errorf("result = %q", got)
		}
		if len(store.upserted) != 1 || store.upserted[0].Title != "Groceries" {
			t.Fatalf("upserted = %+v", store.upserted)
		}

		// The tile keeps the persisted copy, ID included.
		nt, _ := tiles.ActiveNote()
		if nt.Note().ID == "" {
			t.Error("tile note was not updated with the assigned ID")
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store.err = errors.New("disk full")
		defer func() { store.err = nil }()

		if _, err := svc.Run(t.Context(), "SaveNote", nil); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestRunSearchNotes(t *testing.T) {
	store := &fakeNoteStore{notes: []storage.Note{
		{ID: "1", Title: "Groceries", Content: "<p>milk</p>"},
		{ID: "2", Title: "Grocery budget", Content: "<p>100</p>"},
		{ID: "3", Title: "Travel", Content: "<p>rome</p>"},
	}}

	t.Run("single match displayed", func(t *testing.T) {
		svc, tiles := newTestService(store)
		got, err := svc.Run(t.Context(), "SearchNotes", map[string]any{"title": "travel"})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !strings.Contains(got, `Found note "Travel" and displayed it for the user`) {
			t.Errorf("result = %q", got)
		}
		nt, ok := tiles.ActiveNote()
		if !ok || nt.Note().ID != "3" {
			t.Error("matched note was not displayed")
		}
	})

	t.Run("multiple matches ask for a narrower title", func(t *testing.T) {
		svc, tiles := newTestService(store)
		got, err := svc.Run(t.Context(), "SearchNotes", map[string]any{"title": "groc"})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !strings.Contains(got, "2 notes matched") {
			t.Errorf("result = %q", got)
		}
		if _, ok := tiles.ActiveNote(); ok {
			t.Error("an ambiguous search must not display a note")
		}
	})

	t.Run("no match", func(t *testing.T) {
		svc, _ := newTestService(store)
		got, err := svc.Run(t.Context(), "SearchNotes", map[string]any{"title": "zzz"})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !strings.Contains(got, "No note found matching that title") {
			t.Errorf("result = %q", got)
		}
	})

	t.Run("empty title lists everything", func(t *testing.T) {
		svc, _ := newTestService(store)
		got, err := svc.Run(t.Context(), "SearchNotes", nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !store.allCalled {
			t.Error("an empty title must list all notes")
		}
		if !strings.Contains(got, "3 notes matched") {
			t.Errorf("result = %q", got)
		}
	})
}

func TestRunEditCurrentNote(t *testing.T) {
	svc, tiles := newTestService(&fakeNoteStore{})

	t.Run("no note on screen", func(t *testing.T) {
		got, err := svc.Run(t.Context(), "EditCurrentNote", map[string]any{"title": "X"})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !strings.Contains(got, "No note found to edit") {
			t.Errorf("result = %q", got)
		}
	})

	tiles.Request(tile.NewNoteTile(storage.Note{ID: "1", Title: "Old", Content: "<p>old</p>"}))

	t.Run("updates only the provided fields", func(t *testing.T) {
		if _, err := svc.Run(t.Context(), "EditCurrentNote", map[string]any{"title": "New"}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		nt, _ := tiles.ActiveNote()
		note := nt.Note()
		if note.Title != "New" {
			t.Errorf("title = %q", note.Title)
		}
		if note.Content != "<p>old</p>" {
			t.Errorf("content was clobbered: %q", note.Content)
		}
	})

	t.Run("argument names match case-insensitively", func(t *testing.T) {
		if _, err := svc.Run(t.Context(), "EditCurrentNote", map[string]any{"Content": "<p>new</p>"}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		nt, _ := tiles.ActiveNote()
		if nt.Note().Content != "<p>new</p>" {
			t.Errorf("content = %q", nt.Note().Content)
		}
	})
}

func TestDefinitionsIncludeTileTools(t *testing.T) {
	svc, tiles := newTestService(&fakeNoteStore{})

	base := svc.Definitions()
	baseNames := make([]string, len(base))
	for i, d := range base {
		baseNames[i] = d.Name
	}
	want := []string{"GetCurrentTime", "CreateNewNote", "SearchNotes"}
	for i, name := range want {
		if baseNames[i] != name {
			t.Fatalf("baseline definitions = %v", baseNames)
		}
	}

	tiles.Request(tile.NewNoteTile(storage.Note{Title: "A"}))
	withTile := svc.Definitions()
	if len(withTile) != len(base)+2 {
		t.Fatalf("definitions with a note tile = %d, want %d", len(withTile), len(base)+2)
	}
	// Tile contributions follow the baseline set.
	if withTile[len(base)].Name != "SaveNote" || withTile[len(base)+1].Name != "EditCurrentNote" {
		t.Errorf("tile tools = %q, %q", withTile[len(base)].Name, withTile[len(base)+1].Name)
	}

	nt, _ := tiles.ActiveNote()
	nt.SetExiting(true)
	if got := len(svc.Definitions()); got != len(base) {
		t.Errorf("exiting tile still contributes tools: %d definitions", got)
	}
}
