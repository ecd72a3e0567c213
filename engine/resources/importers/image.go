package importers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

// ImageImporter decodes png, jpeg and bmp files into texture payloads.
type ImageImporter struct{}

func (ImageImporter) Extensions() []string {
	return []string{"png", "jpg", "jpeg", "bmp"}
}

func (ImageImporter) Import(data []byte, baseDir string, options resources.Options) (interface{}, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	width := uint32(bounds.Dx())
	height := uint32(bounds.Dy())

	if options["flip_y"] == "true" {
		stride := rgba.Stride
		tmp := make([]uint8, stride)
		for top, bottom := 0, int(height)-1; top < bottom; top, bottom = top+1, bottom-1 {
			a := rgba.Pix[top*stride : (top+1)*stride]
			b := rgba.Pix[bottom*stride : (bottom+1)*stride]
			copy(tmp, a)
			copy(a, b)
			copy(b, tmp)
		}
	}

	hasTransparency := false
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] < 255 {
			hasTransparency = true
			break
		}
	}

	return &resources.TexturePayload{
		Name:            options["name"],
		Width:           width,
		Height:          height,
		ChannelCount:    4,
		HasTransparency: hasTransparency,
		Pixels:          rgba.Pix,
	}, nil
}
