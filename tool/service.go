// Package tool holds the catalog of model-invocable tools and executes
// them. Execution results are short, conclusive strings that go back into
// the conversation verbatim; business outcomes such as "nothing to save"
// are results, not errors.
package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"tilechat/config"
	"tilechat/storage"
	"tilechat/tile"
)

// NoteStore is the persistence collaborator for notes. Implemented by
// storage.NoteStore; failures propagate to the caller unretried.
type NoteStore interface {
	Upsert(ctx context.Context, note *storage.Note) (string, error)
	SearchByTitle(ctx context.Context, substring string) ([]storage.Note, error)
	All(ctx context.Context) ([]storage.Note, error)
}

// Service is the tool registry and executor.
type Service struct {
	tiles *tile.Service
	notes NoteStore
	now   func() time.Time
}

func NewService(tiles *tile.Service, notes NoteStore) *Service {
	return &Service{
		tiles: tiles,
		notes: notes,
		now:   time.Now,
	}
}

// Definitions lists the advertised tools: the baseline set first, then
// tools contributed by active tiles in display order. Contributed
// definitions live only for the request being built; they are never
// persisted. Duplicate names are not deduplicated.
func (s *Service) Definitions() []mcptypes.Tool {
	defs := baselineDefinitions()
	return append(defs, s.tiles.ActiveTools()...)
}

// Run executes a tool by exact name and returns the textual result for
// history. Unknown names yield the "Unknown tool" result rather than an
// error; only note-store failures propagate.
func (s *Service) Run(ctx context.Context, name string, args map[string]any) (string, error) {
	var (
		result string
		err    error
	)

	switch name {
	case "GetCurrentTime":
		result = s.getCurrentTime()
	case "CreateNewNote":
		result = s.createNewNote(args)
	case "SaveNote":
		result, err = s.saveNote(ctx)
	case "SearchNotes":
		result, err = s.searchNotes(ctx, args)
	case "EditCurrentNote":
		result = s.editCurrentNote(args)
	default:
		result = "Unknown tool"
	}

	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Tool] %s failed: %v", name, err)
		}
		return "", err
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Tool] %s -> %s", name, result)
	}
	return wrapResult(name, result), nil
}

// wrapResult builds the fixed history wrapper. It is deliberately terse
// and conclusive so the continuation call answers from the result instead
// of re-invoking the tool.
func wrapResult(name, result string) string {
	return fmt.Sprintf("Tool %s was successfully called. Tool result: %s.", name, result)
}

func (s *Service) getCurrentTime() string {
	now := s.now()
	s.tiles.Request(tile.NewTimeTile(now))
	return now.Format("15:04:05")
}

func (s *Service) createNewNote(args map[string]any) string {
	note := storage.Note{
		ID:      storage.NewNoteID(),
		Title:   stringArg(args, "title"),
		Content: stringArg(args, "content"),
	}
	s.tiles.Request(tile.NewNoteTile(note))
	return fmt.Sprintf("Created a new note titled %q and displayed it for the user. It is not saved yet", note.Title)
}

func (s *Service) saveNote(ctx context.Context) (string, error) {
	nt, ok := s.tiles.ActiveNote()
	if !ok {
		return "No note found to save", nil
	}

	note := nt.Note()
	if _, err := s.notes.Upsert(ctx, &note); err != nil {
		return "", fmt.Errorf("failed to save note: %w", err)
	}
	nt.SetNote(note)

	return fmt.Sprintf("Note %q was saved", note.Title), nil
}

func (s *Service) searchNotes(ctx context.Context, args map[string]any) (string, error) {
	title := stringArg(args, "title")

	var (
		matches []storage.Note
		err     error
	)
	if title == "" {
		matches, err = s.notes.All(ctx)
	} else {
		matches, err = s.notes.SearchByTitle(ctx, title)
	}
	if err != nil {
		return "", fmt.Errorf("failed to search notes: %w", err)
	}

	switch len(matches) {
	case 0:
		return "No note found matching that title", nil
	case 1:
		s.tiles.Request(tile.NewNoteTile(matches[0]))
		return fmt.Sprintf("Found note %q and displayed it for the user", matches[0].Title), nil
	default:
		return fmt.Sprintf("%d notes matched. Ask the user for a more specific title", len(matches)), nil
	}
}

func (s *Service) editCurrentNote(args map[string]any) string {
	nt, ok := s.tiles.ActiveNote()
	if !ok {
		return "No note found to edit"
	}

	note := nt.Note()
	if title, ok := lookupArg(args, "title"); ok {
		note.Title = title
	}
	if content, ok := lookupArg(args, "content"); ok {
		note.Content = content
	}
	nt.SetNote(note)

	return fmt.Sprintf("The note on screen was updated; its title is now %q", note.Title)
}

// stringArg returns the named string argument or "" when absent or not a
// string.
func stringArg(args map[string]any, name string) string {
	v, _ := lookupArg(args, name)
	return v
}

// lookupArg finds a string argument by name, falling back to a
// case-insensitive scan; models are not consistent about the casing of
// parameter names.
func lookupArg(args map[string]any, name string) (string, bool) {
	if v, ok := args[name].(string); ok {
		return v, true
	}
	for k, v := range args {
		if strings.EqualFold(k, name) {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}
