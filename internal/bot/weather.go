package bot

import (
	"context"
	"strings"

	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/providers"
)

const (
	stepWeatherInput    flow.StepID = "weather.input"
	stepWeatherForecast flow.StepID = "weather.forecast"
)

const cityPromptText = "📍 Iltimos, shahar nomini kiriting yoki joylashuvingizni yuboring:"

const pickForecastDayText = "❌ Iltimos, ro‘yxatdan kunni tanlang!"

func (a *App) registerWeatherFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepWeatherInput,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: cityPromptText, Keyboard: a.cat.LocationMenu()}
		},
		Handle: a.handleWeatherInput,
	})
	a.engine.MustRegister(&flow.Step{
		ID:     stepWeatherForecast,
		Handle: a.handleWeatherForecast,
	})
}

func (a *App) handleWeatherInput(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	var (
		reading providers.WeatherReading
		err     error
	)
	if ev.Location != nil {
		reading, err = a.weather.CurrentByCoords(ctx, ev.Location.Lat, ev.Location.Lon)
	} else {
		reading, err = a.weather.CurrentByCity(ctx, strings.TrimSpace(ev.Text))
	}
	if err != nil {
		return flow.Terminal(providers.UserText(err)), nil
	}

	text := a.currentWeatherText(reading)
	forecast, err := a.weather.Forecast(ctx, reading.Lat, reading.Lon)
	if err != nil {
		// The current reading is still worth showing when the forecast feed
		// is unavailable.
		return flow.Terminal(text), nil
	}
	return flow.Prompt(
		flow.Reply{Text: text, Keyboard: a.cat.ForecastMenu(a.now())},
		stepWeatherForecast,
		map[string]any{"forecast": forecast},
	), nil
}

func (a *App) handleWeatherForecast(_ context.Context, s *flow.Session, ev flow.Event) (flow.Outcome, error) {
	table, _ := s.Params["forecast"].(providers.ForecastTable)
	date := strings.TrimPrefix(ev.Text, "📅 ")
	day, ok := table[date]
	if !ok {
		return flow.Retry(flow.Reply{Text: pickForecastDayText, Keyboard: a.cat.ForecastMenu(a.now())}), nil
	}
	return flow.Retry(flow.Reply{Text: a.forecastText(date, day), Keyboard: a.cat.ForecastMenu(a.now())}), nil
}
