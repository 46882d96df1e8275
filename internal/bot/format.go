package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/providers"
)

// num renders a float without trailing zeros, matching upstream readings such
// as "23.45" or "0".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (a *App) currentWeatherText(r providers.WeatherReading) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏙️ **%sdagi joriy ob-havo:**\n", r.City)
	fmt.Fprintf(&b, "🌡️ Harorat: %s°C\n", num(r.TempC))
	fmt.Fprintf(&b, "⛅ Ob-havo holati: %s\n", a.cat.WeatherLabel(r.Desc))
	fmt.Fprintf(&b, "💧 Yog‘ingarchilik (so‘nggi 1 soat): %s mm\n", num(r.PrecipMM))
	fmt.Fprintf(&b, "💨 Shamol tezligi: %s m/s\n", num(r.WindMS))
	fmt.Fprintf(&b, "🌫️ Namlik: %d%%\n", r.Humidity)
	fmt.Fprintf(&b, "🌅 Quyosh chiqishi: %s\n", r.Sunrise.Format("15:04"))
	fmt.Fprintf(&b, "🌇 Quyosh botishi: %s\n\n", r.Sunset.Format("15:04"))
	fmt.Fprintf(&b, "📌 **Maslahatlar:**\n%s", catalog.Advice(r.TempC, r.Desc, r.WindMS, r.PrecipMM))
	return b.String()
}

func (a *App) forecastText(date string, d providers.DayForecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 **%s uchun ob-havo prognozi:**\n", date)
	fmt.Fprintf(&b, "🌡️ Harorat: %s°C\n", num(d.TempC))
	fmt.Fprintf(&b, "⛅ Ob-havo holati: %s\n", a.cat.WeatherLabel(d.Desc))
	fmt.Fprintf(&b, "💧 Yog‘ingarchilik (3 soatlik): %s mm\n", num(d.PrecipMM))
	fmt.Fprintf(&b, "💨 Shamol tezligi: %s m/s\n", num(d.WindMS))
	fmt.Fprintf(&b, "🌫️ Namlik: %d%%\n\n", d.Humidity)
	fmt.Fprintf(&b, "📌 **Maslahatlar:**\n%s", catalog.Advice(d.TempC, d.Desc, d.WindMS, d.PrecipMM))
	return b.String()
}

func (a *App) prayerText(city string, t providers.PrayerTimings) string {
	labels := a.cat.PrayerLabels
	var b strings.Builder
	fmt.Fprintf(&b, "🕌 **%sdagi bugungi namoz vaqtlari (%s):**\n", city, a.now().Format("02-01-2006"))
	fmt.Fprintf(&b, "%s: %s\n", labels["Fajr"], t.Fajr)
	fmt.Fprintf(&b, "%s: %s\n", labels["Sunrise"], t.Sunrise)
	fmt.Fprintf(&b, "%s: %s\n", labels["Dhuhr"], t.Dhuhr)
	fmt.Fprintf(&b, "%s: %s\n", labels["Asr"], t.Asr)
	fmt.Fprintf(&b, "%s: %s\n", labels["Maghrib"], t.Maghrib)
	fmt.Fprintf(&b, "%s: %s", labels["Isha"], t.Isha)
	return b.String()
}
