package colors

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color.RGBA
	}{
		{"#636efa", color.RGBA{0x63, 0x6e, 0xfa, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{" rgb(84, 48, 5) ", color.RGBA{84, 48, 5, 0xff}},
		{"rgba(1,2,3,128)", color.RGBA{1, 2, 3, 128}},
		{"teal", color.RGBA{0x00, 0x80, 0x80, 0xff}},
		{"Red", color.RGBA{0xff, 0x00, 0x00, 0xff}},
	} {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "  ", "#12345", "notacolor"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range Plotly {
		c, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(s), Hex(c))
	}
}

func TestByName(t *testing.T) {
	seq, ok := ByName("Plotly")
	require.True(t, ok)
	assert.Equal(t, Plotly, seq)

	seq, ok = ByName("rdbu_r")
	require.True(t, ok)
	assert.Equal(t, RdBu[0], seq[len(seq)-1])
	assert.Equal(t, RdBu[len(RdBu)-1], seq[0])

	seq, ok = ByName("viridis")
	require.True(t, ok)
	assert.Len(t, seq, viridisSteps)

	_, ok = ByName("nope")
	assert.False(t, ok)
}

func TestResample(t *testing.T) {
	out, err := Resample([]string{"#000000", "#ffffff"}, 5)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, "#000000", out[0])
	assert.Equal(t, "#ffffff", out[4])

	_, err = Resample(nil, 3)
	assert.Error(t, err)
	_, err = Resample([]string{"bogus"}, 3)
	assert.Error(t, err)
}

func TestSampleSingle(t *testing.T) {
	g, err := Gradient([]string{"#ff0000", "#0000ff"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#ff0000"}, Sample(g, 1))
}
