package bot

import (
	"context"
	"strings"

	"github.com/ulugdev/yordamchi/internal/flow"
	"github.com/ulugdev/yordamchi/internal/providers"
)

const stepPrayerInput flow.StepID = "prayer.input"

// fallbackPlaceName labels a shared location when reverse lookup fails.
const fallbackPlaceName = "Joylashuvingiz"

func (a *App) registerPrayerFlow() {
	a.engine.MustRegister(&flow.Step{
		ID: stepPrayerInput,
		Prompt: func(*flow.Session) flow.Reply {
			return flow.Reply{Text: cityPromptText, Keyboard: a.cat.LocationMenu()}
		},
		Handle: a.handlePrayerInput,
	})
}

func (a *App) handlePrayerInput(ctx context.Context, _ *flow.Session, ev flow.Event) (flow.Outcome, error) {
	if ev.Location != nil {
		city := fallbackPlaceName
		if reading, err := a.weather.CurrentByCoords(ctx, ev.Location.Lat, ev.Location.Lon); err == nil && reading.City != "" {
			city = reading.City
		}
		timings, err := a.prayer.ByCoords(ctx, ev.Location.Lat, ev.Location.Lon)
		if err != nil {
			return flow.Terminal(providers.UserText(err)), nil
		}
		return flow.Terminal(a.prayerText(city, timings)), nil
	}

	timings, city, err := a.prayer.ByCity(ctx, strings.TrimSpace(ev.Text))
	if err != nil {
		return flow.Terminal(providers.UserText(err)), nil
	}
	return flow.Terminal(a.prayerText(city, timings)), nil
}
