package catalog

import "strings"

// Advice derives the advisory block from a weather reading. Each rule
// contributes one line; the lines are concatenated in a fixed order. When no
// rule fires, a single fallback line is returned.
func Advice(tempC float64, desc string, windMS, precipMM float64) string {
	var advice []string

	switch {
	case tempC < 0:
		advice = append(advice, "❄️ Juda sovuq! Issiq kiyimlar kiying va ehtiyot bo‘ling.")
	case tempC <= 10:
		advice = append(advice, "🧥 Sovuq. Issiq kiyining va sharf oling.")
	case tempC <= 20:
		advice = append(advice, "🧥 Salqin. Yengil kurtka kiyishni tavsiya qilamiz.")
	case tempC <= 30:
		advice = append(advice, "👕 Qulay harorat. Yengil kiyimlar kiying.")
	default:
		advice = append(advice, "🔥 Juda issiq! Yengil kiyimlar kiying va ko‘p suv iching.")
	}

	lower := strings.ToLower(desc)
	switch {
	case strings.Contains(lower, "rain") || strings.Contains(lower, "shower"):
		advice = append(advice, "🌧️ Yomg‘ir yog‘adi. Soyabon oling va suv o‘tkazmaydigan kiyim kiying.")
	case strings.Contains(lower, "thunderstorm"):
		advice = append(advice, "⛈️ Momaqaldiroq bo‘ladi. Ochiq joylardan uzoq turing va ehtiyot bo‘ling.")
	case strings.Contains(lower, "snow"):
		advice = append(advice, "❄️ Qor yog‘adi. Issiq kiyimlar va sirpanmaydigan poyabzal kiying.")
	case strings.Contains(lower, "mist"), strings.Contains(lower, "fog"), strings.Contains(lower, "haze"):
		advice = append(advice, "🌫️ Tumanli. Yo‘l ko‘rinishi yomon bo‘lishi mumkin, ehtiyot bo‘ling.")
	}

	if windMS > 10 {
		advice = append(advice, "💨 Shamol kuchli. Shamolga qarshi ehtiyot bo‘ling va ochiq joylardan uzoq turing.")
	}
	if precipMM > 0 {
		advice = append(advice, "☔ Yog‘ingarchilik kutilmoqda. Soyabon yoki yomg‘ir kiyimi oling.")
	}

	if len(advice) == 0 {
		return "🌟 Maxsus maslahat yo‘q. Ob-havoga qarab ehtiyot bo‘ling!"
	}
	return strings.Join(advice, "\n")
}
