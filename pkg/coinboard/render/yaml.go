package render

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

type YAMLRenderer struct{}

func NewYAMLRenderer() *YAMLRenderer { return &YAMLRenderer{} }

func (r *YAMLRenderer) Render(w io.Writer, board types.Board, _ RenderOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewBoardModel(board)); err != nil {
		return err
	}
	return enc.Close()
}
