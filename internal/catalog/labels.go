// Package catalog holds the bot's immutable label and translation tables and
// the pure menu builders. Everything here is configuration data: no I/O, no
// process state.
package catalog

import (
	"strings"
	"unicode"
)

// Reserved menu labels shared across flows.
const (
	BackLabel     = "⬅️ Orqaga"
	LocationLabel = "📍 Joylashuvni yuborish"

	MainWeatherLabel  = "⛅ Ob-havo"
	MainPrayerLabel   = "🕌 Namoz vaqtlari"
	MainCurrencyLabel = "💱 Valyuta kursi"
	MainRandomLabel   = "🎲 Tasodifiy son"
	MainWikiLabel     = "📚 Vikipediya"
	MainFeedbackLabel = "📝 Shikoyat va Takliflar"
	MainAdminLabel    = "👨‍💼 Admin paneli"

	CurrencyAllLabel       = "📜 Barcha valyutalar"
	CurrencyConverterLabel = "💱 Valyuta konvertori"

	AdminBroadcastLabel = "📢 Barchaga xabar yuborish"
	AdminBanLabel       = "🚫 Foydalanuvchini bloklash"
	AdminUnbanLabel     = "✅ Blokdan chiqarish"
	AdminListLabel      = "👥 Foydalanuvchilar ro‘yxati"
)

// Currency pairs a currency code with its flag-decorated menu label.
type Currency struct {
	Code  string
	Label string
}

// Catalog aggregates the static tables injected at startup.
type Catalog struct {
	// WeatherLabels maps upstream condition descriptions to Uzbek labels.
	WeatherLabels map[string]string
	// PrayerLabels maps upstream timing keys to Uzbek labels.
	PrayerLabels map[string]string
	// Currencies is the ordered currency list shown in menus. UZS is the base.
	Currencies []Currency
	// CityTranslations maps local Latin city spellings to the ASCII names the
	// upstream APIs expect.
	CityTranslations map[string]string
}

// BaseCurrency is the currency all fetched rates are expressed against.
const BaseCurrency = "UZS"

// Default returns the catalog used by the production bot.
func Default() *Catalog {
	return &Catalog{
		WeatherLabels: map[string]string{
			"clear sky":            "☀️ Quyoshli",
			"few clouds":           "⛅ Qisman bulutli",
			"scattered clouds":     "☁️ Bulutli",
			"broken clouds":        "☁️ Qisman bulutli",
			"overcast clouds":      "☁️ To‘liq bulutli",
			"shower rain":          "🌧️ Yengil yomg‘ir",
			"rain":                 "🌧️ Yomg‘ir",
			"light rain":           "🌧️ Yengil yomg‘ir",
			"moderate rain":        "🌧️ O‘rtacha yomg‘ir",
			"heavy intensity rain": "🌧️ Kuchli yomg‘ir",
			"thunderstorm":         "⛈️ Momaqaldiroq",
			"snow":                 "❄️ Qor",
			"light snow":           "❄️ Yengil qor",
			"heavy snow":           "❄️ Kuchli qor",
			"mist":                 "🌫️ Tuman",
			"fog":                  "🌫️ Tuman",
			"haze":                 "🌫️ Yengil tuman",
		},
		PrayerLabels: map[string]string{
			"Fajr":    "🌅 Bomdod",
			"Sunrise": "🌞 Quyosh chiqishi",
			"Dhuhr":   "🕛 Peshin",
			"Asr":     "🌤️ Asr",
			"Maghrib": "🌇 Shom",
			"Isha":    "🌙 Xufton",
		},
		Currencies: []Currency{
			{Code: "USD", Label: "🇺🇸 USD"},
			{Code: "EUR", Label: "🇪🇺 EUR"},
			{Code: "RUB", Label: "🇷🇺 RUB"},
			{Code: "GBP", Label: "🇬🇧 GBP"},
			{Code: "JPY", Label: "🇯🇵 JPY"},
			{Code: "KZT", Label: "🇰🇿 KZT"},
			{Code: "CNY", Label: "🇨🇳 CNY"},
			{Code: "UZS", Label: "🇺🇿 UZS"},
		},
		CityTranslations: map[string]string{
			"toshkent":  "Tashkent",
			"samarqand": "Samarkand",
			"buxoro":    "Bukhara",
			"andijon":   "Andijan",
			"farg‘ona":  "Fergana",
			"namangan":  "Namangan",
			"qarshi":    "Karshi",
			"nukus":     "Nukus",
			"urgench":   "Urgench",
			"jizzax":    "Jizzakh",
			"termiz":    "Termez",
			"navoiy":    "Navoi",
			"guliston":  "Gulistan",
			"xiva":      "Khiva",
		},
	}
}

// WeatherLabel returns the Uzbek label for an upstream condition description,
// or a capitalized fallback marking the missing translation.
func (c *Catalog) WeatherLabel(desc string) string {
	if label, ok := c.WeatherLabels[desc]; ok {
		return label
	}
	return "☁️ " + capitalize(desc) + " (tarjima topilmadi)"
}

// TranslateCity maps a local Latin city spelling to the ASCII name expected by
// the upstream APIs. Unknown names pass through capitalized as-is.
func (c *Catalog) TranslateCity(city string) string {
	key := strings.ToLower(strings.TrimSpace(city))
	key = strings.ReplaceAll(key, "'", "‘")
	if translated, ok := c.CityTranslations[key]; ok {
		return translated
	}
	return capitalize(key)
}

// KnownCurrency reports whether the code is part of the configured set.
func (c *Catalog) KnownCurrency(code string) bool {
	for _, cur := range c.Currencies {
		if cur.Code == code {
			return true
		}
	}
	return false
}

// CurrencyCode extracts the currency code from a menu label such as "🇺🇸 USD".
// Bare codes pass through unchanged.
func CurrencyCode(label string) string {
	parts := strings.Fields(label)
	if len(parts) > 1 {
		return parts[1]
	}
	return strings.TrimSpace(label)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
