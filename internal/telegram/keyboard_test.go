package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulugdev/yordamchi/internal/catalog"
)

func TestMarkupEmptyKeyboardIsNil(t *testing.T) {
	assert.Nil(t, Markup(catalog.Keyboard{}))
}

func TestMarkupRendersRows(t *testing.T) {
	markup := Markup(catalog.Keyboard{Rows: [][]string{
		{"⛅ Ob-havo", "🕌 Namoz vaqtlari"},
		{"⬅️ Orqaga"},
	}})
	require.NotNil(t, markup)
	assert.True(t, markup.ResizeKeyboard)
	require.Len(t, markup.ReplyKeyboard, 2)
	require.Len(t, markup.ReplyKeyboard[0], 2)
	assert.Equal(t, "⛅ Ob-havo", markup.ReplyKeyboard[0][0].Text)
	assert.Equal(t, "⬅️ Orqaga", markup.ReplyKeyboard[1][0].Text)
}

func TestMarkupLocationButton(t *testing.T) {
	markup := Markup(catalog.Keyboard{
		Rows:            [][]string{{"📍 Joylashuvni yuborish", "⬅️ Orqaga"}},
		RequestLocation: true,
	})
	require.NotNil(t, markup)
	require.Len(t, markup.ReplyKeyboard, 1)
	assert.True(t, markup.ReplyKeyboard[0][0].Location)
	assert.False(t, markup.ReplyKeyboard[0][1].Location)
}
