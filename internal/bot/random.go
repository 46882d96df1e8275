package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ulugdev/yordamchi/internal/flow"
)

const stepRandomInput flow.StepID = "random.input"

const (
	randomPromptText   = "🎲 Iltimos, diapazonni kiriting (masalan, 1-100):"
	badRangeText       = "❌ Iltimos, to‘g‘ri diapazon kiriting (masalan, 1-100)!"
	emptyRangeText     = "❌ Boshlang‘ich son oxirgi sondan kichik bo‘lishi kerak!"
	randomResultFormat = "🎲 Tasodifiy son: %d\nYana bir son generatsiya qilish uchun yangi diapazon kiriting yoki orqaga qayting:"
)

func (a *App) registerRandomFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepRandomInput,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: randomPromptText}
		},
		Handle: a.handleRandomInput,
	})
}

func (a *App) handleRandomInput(_ context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	parts := strings.Split(strings.TrimSpace(ev.Text), "-")
	if len(parts) != 2 {
		return flow.Retry(flow.Reply{Text: badRangeText, Keyboard: a.cat.BackMenu()}), nil
	}
	start, errStart := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, errEnd := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errStart != nil || errEnd != nil {
		return flow.Retry(flow.Reply{Text: badRangeText, Keyboard: a.cat.BackMenu()}), nil
	}
	if start >= end {
		return flow.Retry(flow.Reply{Text: emptyRangeText, Keyboard: a.cat.BackMenu()}), nil
	}

	n := a.randInt(start, end)
	return flow.Retry(flow.Reply{
		Text:     fmt.Sprintf(randomResultFormat, n),
		Keyboard: a.cat.BackMenu(),
	}), nil
}
