// Package tile models the surfaces the host UI can display: a note
// editor, a time panel, a welcome screen. Tiles are the dynamic side of
// the tool catalog: an active tile can contribute tools (for example
// SaveNote when a note is on screen) and describes itself so the current
// on-screen state can be shown to the model.
package tile

import (
	"strings"
	"sync"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Tile is a displayed surface. Implementations are value-like structs; the
// Service tracks which ones are active.
type Tile interface {
	// Tools returns the tool definitions this tile contributes while it
	// is on screen. May be empty.
	Tools() []mcptypes.Tool

	// Exiting reports whether the tile is animating out. An exiting tile
	// no longer counts as active.
	Exiting() bool

	// Describe returns a short description of the tile's current content
	// for the ephemeral on-screen-context message.
	Describe() string
}

// Service tracks active tiles and notifies the host when a tool requests
// one to be displayed. The notification is fire-and-forget; the core never
// depends on the host actually rendering anything.
type Service struct {
	mu          sync.Mutex
	active      []Tile
	onRequested func(Tile)
}

func NewService() *Service {
	return &Service{}
}

// OnTileRequested registers the host display callback. Only one callback
// is kept; registering replaces the previous one.
func (s *Service) OnTileRequested(fn func(Tile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRequested = fn
}

// Request marks the tile active and notifies the host.
func (s *Service) Request(t Tile) {
	s.mu.Lock()
	s.active = append(s.active, t)
	fn := s.onRequested
	s.mu.Unlock()

	if fn != nil {
		fn(t)
	}
}

// ActiveTiles returns the non-exiting tiles in display order.
func (s *Service) ActiveTiles() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Tile
	for _, t := range s.active {
		if !t.Exiting() {
			out = append(out, t)
		}
	}
	return out
}

// ActiveTools returns the tools contributed by active tiles, in tile
// iteration order. Duplicate names are not deduplicated.
func (s *Service) ActiveTools() []mcptypes.Tool {
	var tools []mcptypes.Tool
	for _, t := range s.ActiveTiles() {
		tools = append(tools, t.Tools()...)
	}
	return tools
}

// ActiveNote returns the first active note tile, if any. This is the
// narrow query the tool executor needs: "is there a note on screen to
// save or edit".
func (s *Service) ActiveNote() (*NoteTile, bool) {
	for _, t := range s.ActiveTiles() {
		if nt, ok := t.(*NoteTile); ok {
			return nt, true
		}
	}
	return nil, false
}

// ActiveContext describes the current on-screen content for the ephemeral
// system message. ok is false when nothing is active.
func (s *Service) ActiveContext() (string, bool) {
	tiles := s.ActiveTiles()
	if len(tiles) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("Current on-screen content:")
	for _, t := range tiles {
		b.WriteString("\n- ")
		b.WriteString(t.Describe())
	}
	return b.String(), true
}
