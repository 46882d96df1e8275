package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/providers"
)

const (
	stepCurrencyMenu   flow.StepID = "currency.menu"
	stepCurrencyFrom   flow.StepID = "currency.from"
	stepCurrencyTo     flow.StepID = "currency.to"
	stepCurrencyAmount flow.StepID = "currency.amount"
)

const (
	currencyMenuText  = "💱 Valyuta kursini ko‘rish uchun valyutani tanlang:"
	currencyBackText  = "💱 Valyuta kursi menyusiga qaytdik!"
	converterFromText = "💱 Qaysi valyutadan konvert qilmoqchisiz?"
	badAmountText     = "❌ Iltimos, to‘g‘ri miqdorni kiriting (raqam bo‘lishi kerak)!"
	ratesFailText     = "⚠️ Valyuta kurslarini olishda xatolik yuz berdi!"
)

func (a *App) registerCurrencyFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepCurrencyMenu,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: currencyMenuText, Keyboard: a.cat.CurrencyMenu()}
		},
		BackReply: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: currencyBackText, Keyboard: a.cat.CurrencyMenu()}
		},
		Handle: a.handleCurrencyMenu,
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepCurrencyFrom,
		Parent: stepCurrencyMenu,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: converterFromText, Keyboard: a.cat.CurrencySelectionMenu("")}
		},
		Handle: a.handleCurrencyFrom,
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepCurrencyTo,
		Parent: stepCurrencyFrom,
		Prompt: func(s *flow.Session) flow.Reply {
			from, _ := s.String("from")
			return flow.Reply{
				Text:     fmt.Sprintf("💱 %s dan qaysi valyutaga konvert qilmoqchisiz?", from),
				Keyboard: a.cat.CurrencySelectionMenu(from),
			}
		},
		Handle: a.handleCurrencyTo,
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepCurrencyAmount,
		Parent: stepCurrencyTo,
		Handle: a.handleCurrencyAmount,
	})
}

func (a *App) currencyMenuReply(text string) flow.Reply {
	return flow.Reply{Text: text, Keyboard: a.cat.CurrencyMenu()}
}

func (a *App) handleCurrencyMenu(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	switch ev.Text {
	case catalog.CurrencyConverterLabel:
		return flow.Prompt(
			flow.Reply{Text: converterFromText, Keyboard: a.cat.CurrencySelectionMenu("")},
			stepCurrencyFrom, nil,
		), nil

	case catalog.CurrencyAllLabel:
		rates, err := a.rates.Rates(ctx)
		if err != nil {
			return flow.Retry(a.currencyMenuReply(providers.UserText(err))), nil
		}
		var b strings.Builder
		b.WriteString("📜 **Joriy valyuta kurslari (UZS asosida):**\n")
		for _, cur := range a.cat.Currencies {
			if cur.Code == catalog.BaseCurrency {
				continue
			}
			rate, ok := rates[cur.Code]
			if !ok || rate == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s: %.2f UZS\n", cur.Label, 1/rate)
		}
		return flow.Retry(a.currencyMenuReply(b.String())), nil

	default:
		code := catalog.CurrencyCode(ev.Text)
		rates, err := a.rates.Rates(ctx)
		if err != nil {
			return flow.Retry(a.currencyMenuReply(providers.UserText(err))), nil
		}
		rate, ok := rates[code]
		if !ok || rate == 0 {
			return flow.Retry(a.currencyMenuReply(ratesFailText)), nil
		}
		text := fmt.Sprintf("💱 **%s kursi (UZS asosida):**\n1 %s = %.2f UZS", code, code, 1/rate)
		return flow.Retry(a.currencyMenuReply(text)), nil
	}
}

func (a *App) handleCurrencyFrom(_ context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	from := catalog.CurrencyCode(ev.Text)
	if !a.cat.KnownCurrency(from) {
		return flow.Retry(flow.Reply{Text: converterFromText, Keyboard: a.cat.CurrencySelectionMenu("")}), nil
	}
	return flow.Prompt(
		flow.Reply{
			Text:     fmt.Sprintf("💱 %s dan qaysi valyutaga konvert qilmoqchisiz?", from),
			Keyboard: a.cat.CurrencySelectionMenu(from),
		},
		stepCurrencyTo,
		map[string]any{"from": from},
	), nil
}

func (a *App) handleCurrencyTo(_ context.Context, s *flow.Session, ev flow.Event) (flow.Outcome, error) {
	from, _ := s.String("from")
	to := catalog.CurrencyCode(ev.Text)
	if !a.cat.KnownCurrency(to) {
		return flow.Retry(flow.Reply{
			Text:     fmt.Sprintf("💱 %s dan qaysi valyutaga konvert qilmoqchisiz?", from),
			Keyboard: a.cat.CurrencySelectionMenu(from),
		}), nil
	}
	return flow.Prompt(
		flow.Reply{
			Text:     fmt.Sprintf("💱 %s dan %s ga konvert qilish uchun miqdorni kiriting:", from, to),
			Keyboard: a.cat.BackMenu(),
		},
		stepCurrencyAmount,
		map[string]any{"to": to},
	), nil
}

func (a *App) handleCurrencyAmount(ctx context.Context, s *flow.Session, ev flow.Event) (flow.Outcome, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(ev.Text), 64)
	if err != nil {
		return flow.Retry(flow.Reply{Text: badAmountText, Keyboard: a.cat.BackMenu()}), nil
	}

	from, _ := s.String("from")
	to, _ := s.String("to")
	rates, err := a.rates.Rates(ctx)
	if err != nil {
		return flow.Prompt(a.currencyMenuReply(providers.UserText(err)), stepCurrencyMenu, nil), nil
	}
	result, err := providers.Convert(amount, from, to, rates)
	if err != nil {
		return flow.Prompt(a.currencyMenuReply(providers.UserText(err)), stepCurrencyMenu, nil), nil
	}

	text := fmt.Sprintf("💱 %s %s = %.2f %s", num(amount), from, result, to)
	return flow.Prompt(a.currencyMenuReply(text), stepCurrencyMenu, nil), nil
}
