package tile

import (
	"fmt"
	"sync"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"tilechat/storage"
)

// NoteTile is the note-editor surface. While on screen it contributes the
// SaveNote and EditCurrentNote tools. The note it holds is not persisted
// until SaveNote runs.
type NoteTile struct {
	mu      sync.Mutex
	note    storage.Note
	exiting bool
}

func NewNoteTile(note storage.Note) *NoteTile {
	return &NoteTile{note: note}
}

// Note returns a copy of the currently displayed note.
func (t *NoteTile) Note() storage.Note {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.note
}

// SetNote replaces the displayed note, e.g. after an edit.
func (t *NoteTile) SetNote(note storage.Note) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.note = note
}

func (t *NoteTile) Exiting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exiting
}

// SetExiting marks the tile as animating out; an exiting note tile stops
// contributing tools and is no longer the save/edit target.
func (t *NoteTile) SetExiting(exiting bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exiting = exiting
}

func (t *NoteTile) Describe() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("a note editor showing the note titled %q with content: %s", t.note.Title, t.note.Content)
}

func (t *NoteTile) Tools() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        "SaveNote",
			Description: "Saves the current note for the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
		{
			Name:        "EditCurrentNote",
			Description: "Edits the current note on the screen for the user.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "The note title.",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "The note content. Content should be in html format.",
					},
				},
			},
		},
	}
}
