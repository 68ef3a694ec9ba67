package tool

import mcptypes "github.com/mark3labs/mcp-go/mcp"

// baselineDefinitions returns the tools advertised on every request
// regardless of what is on screen. Surface-bound tools (SaveNote,
// EditCurrentNote) are contributed by the tiles that can serve them.
func baselineDefinitions() []mcptypes.Tool {
	return []mcptypes.Tool{
		{
			Name:        "GetCurrentTime",
			Description: "Returns the current time on the server",
			InputSchema: mcptypes.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
		{
			Name:        "CreateNewNote",
			Description: "Creates a new note for the user and displays it. The note is not persisted until saved.",
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
		{
			Name:        "SearchNotes",
			Description: "Searches the user's saved notes by title and displays the note when exactly one matches.",
			InputSchema: mcptypes.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Part of the title to search for. Case-insensitive.",
					},
				},
			},
		},
	}
}
