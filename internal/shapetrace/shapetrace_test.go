package shapetrace

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "trakcmp")
	defer teardown()

	tests := []struct {
		trace  string
		offset int
		ok     bool
	}{
		{"[g=0@-14,0+1219]", 2, true},
		{"[A=0@-14,0+1219|B=1+1195|C=2+1270]", 2, true},
		{"[H=0@-31,0+1400|H=1@-31,0+1400]", 4, true}, // 4.43
		{"[A=0@-24,0+100]", 3, true},                 // 3.43
		{"[A=0@-25,0+100]", 4, true},                 // 3.57
		{"[A=0@21,0+100]", -3, true},
		{"[A=0@0,0+100]", 0, true},
		{"[uni0041.alt=0@-70,0+100]", 10, true},
		{"[A=0+1219|B=1+1195]", 0, false},       // no offset at all
		{"[A=0@-14,5+1219]", 0, false},          // y offset is not zero
		{"[A=1@-14,0+1219]", 0, false},          // not cluster 0
		{"[B=1+1195|A=0@-14,0+1219]", 0, false}, // token must open the run
		{"", 0, false},
	}
	for _, tt := range tests {
		off, ok := FirstOffset(tt.trace)
		assert.Equal(t, tt.ok, ok, "trace %q", tt.trace)
		assert.Equal(t, tt.offset, off, "trace %q", tt.trace)
	}
}

func TestFirstOffsetTakesFirstMatch(t *testing.T) {
	block := Block(12, []Entry{
		{Command: "./hb-shape --shaper=ot", Output: "[A=0@-14,0+1219|B=1+1195]\n"},
		{Command: "./hb-shape --shaper=coretext", Output: "[A=0@-70,0+1219|B=1+1195]\n"},
	})
	off, ok := FirstOffset(block)
	require.True(t, ok)
	assert.Equal(t, 2, off)
}

func TestOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "trakcmp")
	defer teardown()

	offsets, err := Offsets([]int{3, 12, 150}, []string{
		"[A=0@-7,0+10]", "[A=0@-14,0+10]", "[A=0@-21,0+10]",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, offsets)

	_, err = Offsets([]int{3, 12, 150}, []string{
		"[A=0@-7,0+10]", "[A=0+10]", "[A=0@-21,0+10]",
	})
	var missing *MissingTokenError
	require.True(t, errors.As(err, &missing), "expected MissingTokenError, got %v", err)
	assert.Equal(t, 12, missing.Ptem)

	_, err = Offsets([]int{3}, nil)
	assert.Error(t, err)
}

func TestBlock(t *testing.T) {
	block := Block(9, []Entry{
		{Command: "./hb-shape --shaper=ot F ABC", Output: "ot-trace"},
		{Command: "./hb-shape --shaper=coretext F ABC", Output: "ct-trace\n"},
	})
	assert.Equal(t, "ptem: 9\n"+
		"$ ./hb-shape --shaper=ot F ABC\not-trace\n"+
		"$ ./hb-shape --shaper=coretext F ABC\nct-trace\n", block)
	assert.Equal(t, "ptem: 150", Label(150))
}
