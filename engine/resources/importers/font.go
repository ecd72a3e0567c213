package importers

import (
	"bytes"
	"fmt"

	"github.com/fzipp/bmfont"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

// FontImporter parses AngelCode BMFont descriptor files (.fnt, text format).
// The referenced page atlas images load as separate texture resources.
type FontImporter struct{}

func (FontImporter) Extensions() []string {
	return []string{"fnt"}
}

func (FontImporter) Import(data []byte, baseDir string, options resources.Options) (interface{}, error) {
	desc, err := bmfont.ReadDescriptor(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}
	if len(desc.Pages) == 0 {
		return nil, fmt.Errorf("%w: font has no pages", core.ErrDecodeFailed)
	}
	return &resources.FontPayload{Descriptor: desc}, nil
}
