package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTranslateCity(t *testing.T) {
	cat := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "known city", in: "Toshkent", want: "Tashkent"},
		{name: "lowercase input", in: "samarqand", want: "Samarkand"},
		{name: "straight apostrophe normalized", in: "Farg'ona", want: "Fergana"},
		{name: "curly apostrophe", in: "farg‘ona", want: "Fergana"},
		{name: "unknown city capitalized", in: "london", want: "London"},
		{name: "surrounding spaces", in: "  nukus ", want: "Nukus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cat.TranslateCity(tt.in))
		})
	}
}

func TestWeatherLabel(t *testing.T) {
	cat := Default()

	assert.Equal(t, "☀️ Quyoshli", cat.WeatherLabel("clear sky"))
	assert.Equal(t, "☁️ Volcanic ash (tarjima topilmadi)", cat.WeatherLabel("volcanic ash"))
}

func TestCurrencyCode(t *testing.T) {
	assert.Equal(t, "USD", CurrencyCode("🇺🇸 USD"))
	assert.Equal(t, "EUR", CurrencyCode("EUR"))
	assert.Equal(t, "KZT", CurrencyCode(" KZT "))
}

func TestKnownCurrency(t *testing.T) {
	cat := Default()

	assert.True(t, cat.KnownCurrency("USD"))
	assert.True(t, cat.KnownCurrency("JPY"))
	assert.False(t, cat.KnownCurrency("BTC"))
	assert.False(t, cat.KnownCurrency(""))
}

func TestMainMenuAdminRow(t *testing.T) {
	cat := Default()

	plain := cat.MainMenu(false)
	assert.Len(t, plain.Rows, 3)

	admin := cat.MainMenu(true)
	assert.Len(t, admin.Rows, 4)
	assert.Equal(t, []string{MainAdminLabel}, admin.Rows[3])
}

func TestCurrencyMenuExcludesBase(t *testing.T) {
	cat := Default()

	menu := cat.CurrencyMenu()
	for _, row := range menu.Rows {
		for _, label := range row {
			assert.NotEqual(t, "🇺🇿 UZS", label)
		}
	}
	last := menu.Rows[len(menu.Rows)-1]
	assert.Equal(t, []string{BackLabel}, last)
}

func TestCurrencySelectionMenuExclusion(t *testing.T) {
	cat := Default()

	menu := cat.CurrencySelectionMenu("USD")
	for _, row := range menu.Rows {
		for _, label := range row {
			assert.NotEqual(t, "🇺🇸 USD", label)
		}
	}
	// Without exclusion every configured currency is present.
	all := cat.CurrencySelectionMenu("")
	assert.Len(t, all.Rows, len(cat.Currencies)+1)
}

func TestForecastMenuDates(t *testing.T) {
	cat := Default()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	menu := cat.ForecastMenu(now)
	assert.Len(t, menu.Rows, 6)
	assert.Equal(t, []string{"📅 2026-03-10"}, menu.Rows[0])
	assert.Equal(t, []string{"📅 2026-03-14"}, menu.Rows[4])
	assert.Equal(t, []string{BackLabel}, menu.Rows[5])
}

func TestLocationMenuRequestsLocation(t *testing.T) {
	cat := Default()

	menu := cat.LocationMenu()
	assert.True(t, menu.RequestLocation)
	assert.Equal(t, LocationLabel, menu.Rows[0][0])
}

func TestAdvice(t *testing.T) {
	tests := []struct {
		name     string
		tempC    float64
		desc     string
		windMS   float64
		precipMM float64
		want     string
	}{
		{
			name:  "mild clear day",
			tempC: 25, desc: "clear sky",
			want: "👕 Qulay harorat. Yengil kiyimlar kiying.",
		},
		{
			name:  "freezing snow",
			tempC: -5, desc: "light snow", precipMM: 1.2,
			want: "❄️ Juda sovuq! Issiq kiyimlar kiying va ehtiyot bo‘ling.\n" +
				"❄️ Qor yog‘adi. Issiq kiyimlar va sirpanmaydigan poyabzal kiying.\n" +
				"☔ Yog‘ingarchilik kutilmoqda. Soyabon yoki yomg‘ir kiyimi oling.",
		},
		{
			name:  "hot windy rain",
			tempC: 35, desc: "light rain", windMS: 12, precipMM: 0.4,
			want: "🔥 Juda issiq! Yengil kiyimlar kiying va ko‘p suv iching.\n" +
				"🌧️ Yomg‘ir yog‘adi. Soyabon oling va suv o‘tkazmaydigan kiyim kiying.\n" +
				"💨 Shamol kuchli. Shamolga qarshi ehtiyot bo‘ling va ochiq joylardan uzoq turing.\n" +
				"☔ Yog‘ingarchilik kutilmoqda. Soyabon yoki yomg‘ir kiyimi oling.",
		},
		{
			name:  "cool fog",
			tempC: 8, desc: "fog",
			want: "🧥 Sovuq. Issiq kiyining va sharf oling.\n" +
				"🌫️ Tumanli. Yo‘l ko‘rinishi yomon bo‘lishi mumkin, ehtiyot bo‘ling.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advice(tt.tempC, tt.desc, tt.windMS, tt.precipMM))
		})
	}
}
