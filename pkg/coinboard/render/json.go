package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, board types.Board, opts RenderOptions) error {
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewBoardModel(board))
}
