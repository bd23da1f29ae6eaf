package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color int

const (
	colorUnknown color = 0
	colorRed     color = 1
	colorGreen   color = 2
)

func TestEnum(t *testing.T) {

	e := New("color").
		Add(colorUnknown, "unknown").
		Add(colorRed, "RED").
		Add(colorGreen, "GREEN")

	require.Equal(t, "color", e.Name())
	require.Equal(t, 3, e.Len())
	require.Equal(t, []string{"unknown", "RED", "GREEN"}, e.StringKeys())
	require.Equal(t, []string{"GREEN", "RED", "unknown"}, e.SortedStringKeys())

	val, ok := e.GetByIndex(colorRed)
	require.True(t, ok)
	require.Equal(t, "RED", val)

	_, ok = e.GetByIndex(color(10))
	require.False(t, ok)

	// different type with the same underlying value is another key
	_, ok = e.GetByIndex(1)
	require.False(t, ok)

	idx, ok := e.GetByString("GREEN")
	require.True(t, ok)
	require.Equal(t, colorGreen, idx.(color))

	_, ok = e.GetByString("green")
	require.False(t, ok)
}

func TestEnumDuplicates(t *testing.T) {

	require.Panics(t, func() {
		New("dup value").Add(colorRed, "a").Add(colorRed, "b")
	})

	require.Panics(t, func() {
		New("dup token").Add(colorRed, "a").Add(colorGreen, "a")
	})
}
