package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/coinboard/pkg/coinboard/format"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// symsRenderer prints the primary table symbols in a single comma-separated line.
type symsRenderer struct{}

func NewSymsRenderer() Renderer {
	return symsRenderer{}
}

func (symsRenderer) Render(w io.Writer, board types.Board, _ RenderOptions) error {
	symbols := make([]string, 0, len(board.Rows))
	for _, r := range board.Rows {
		sym := format.Symbol(r.Symbol)
		if sym == "" {
			continue
		}
		symbols = append(symbols, sym)
	}
	_, err := fmt.Fprintln(w, strings.Join(symbols, ","))
	return err
}
