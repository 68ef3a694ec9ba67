package tile

import mcptypes "github.com/mark3labs/mcp-go/mcp"

// WelcomeTile is the greeting surface shown before any conversation. It
// contributes no tools.
type WelcomeTile struct {
	exiting bool
}

func NewWelcomeTile() *WelcomeTile { return &WelcomeTile{} }

func (t *WelcomeTile) Tools() []mcptypes.Tool { return nil }

func (t *WelcomeTile) Exiting() bool { return t.exiting }

func (t *WelcomeTile) SetExiting(exiting bool) { t.exiting = exiting }

func (t *WelcomeTile) Describe() string { return "the welcome screen" }
