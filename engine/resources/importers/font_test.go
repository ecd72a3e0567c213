package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/engine/resources"
)

const testFNT = `info face="Test Mono" size=21 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=21 base=17 scaleW=256 scaleH=256 pages=1 packed=0 alphaChnl=0 redChnl=4 greenChnl=4 blueChnl=4
page id=0 file="test_mono_0.png"
chars count=2
char id=65 x=0 y=0 width=10 height=12 xoffset=0 yoffset=4 xadvance=10 page=0 chnl=15
char id=66 x=10 y=0 width=10 height=12 xoffset=0 yoffset=4 xadvance=10 page=0 chnl=15
kernings count=1
kerning first=65 second=66 amount=-1
`

func TestFontImporterParsesDescriptor(t *testing.T) {
	out, err := FontImporter{}.Import([]byte(testFNT), "", nil)
	require.NoError(t, err)

	font := out.(*resources.FontPayload)
	assert.Equal(t, "test_mono_0.png", font.PageFile(0))
	assert.Equal(t, "", font.PageFile(7))
	assert.Equal(t, 21, font.Descriptor.Common.LineHeight)

	ch, ok := font.Descriptor.Chars['A']
	require.True(t, ok)
	assert.Equal(t, 10, ch.Width)
}

func TestFontImporterRejectsGarbage(t *testing.T) {
	_, err := FontImporter{}.Import([]byte("definitely not a font"), "", nil)
	assert.ErrorIs(t, err, core.ErrDecodeFailed)
}
