package render

import (
	"io"
	"sort"
	"strings"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// Renderer renders a board to an output writer.
type Renderer interface {
	Render(w io.Writer, board types.Board, opts RenderOptions) error
}

type RenderOptions struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	MaxRowLen   int
	Title       string
	// Notice is shown above the tables, e.g. after a failed fetch.
	Notice string
}

var constructors = map[string]func() Renderer{
	"table": func() Renderer { return NewTableRenderer() },
	"html":  func() Renderer { return NewHTMLRenderer() },
	"json":  func() Renderer { return NewJSONRenderer() },
	"yaml":  func() Renderer { return NewYAMLRenderer() },
	"syms":  NewSymsRenderer,
}

// New returns the renderer registered for format.
func New(format string) (Renderer, error) {
	c, ok := constructors[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, &UnknownFormatError{Name: format}
	}
	return c(), nil
}

// Formats lists the supported output formats.
func Formats() []string {
	out := make([]string, 0, len(constructors))
	for k := range constructors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UnknownFormatError reports an unsupported output format.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format: " + e.Name + "; available: " + strings.Join(Formats(), ", ")
}
