package tile

import (
	"fmt"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// TimeTile is the clock surface shown after a GetCurrentTime call. It
// contributes no tools.
type TimeTile struct {
	Shown   time.Time
	exiting bool
}

func NewTimeTile(shown time.Time) *TimeTile {
	return &TimeTile{Shown: shown}
}

func (t *TimeTile) Tools() []mcptypes.Tool { return nil }

func (t *TimeTile) Exiting() bool { return t.exiting }

func (t *TimeTile) SetExiting(exiting bool) { t.exiting = exiting }

func (t *TimeTile) Describe() string {
	return fmt.Sprintf("a clock showing %s", t.Shown.Format("15:04:05"))
}
