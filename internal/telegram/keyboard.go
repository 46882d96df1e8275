package telegram

import (
	tele "gopkg.in/telebot.v4"

	"github.com/ulugdev/yordamchi/internal/catalog"
)

// Markup renders a catalog keyboard into a telebot reply markup. An empty
// keyboard yields nil so the previous markup stays in place.
func Markup(kb catalog.Keyboard) *tele.ReplyMarkup {
	if len(kb.Rows) == 0 {
		return nil
	}
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var rows []tele.Row
	for i, row := range kb.Rows {
		var buttons []tele.Btn
		for j, label := range row {
			if kb.RequestLocation && i == 0 && j == 0 {
				buttons = append(buttons, markup.Location(label))
				continue
			}
			buttons = append(buttons, markup.Text(label))
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Reply(rows...)
	return markup
}
