package catalog

import "time"

// Keyboard describes a reply keyboard as flat label rows. When RequestLocation
// is set, the first label of the first row is rendered as a share-location
// button by the transport layer.
type Keyboard struct {
	Rows            [][]string
	RequestLocation bool
}

// MainMenu returns the root menu. The admin row is present only for
// allow-listed senders.
func (c *Catalog) MainMenu(isAdmin bool) Keyboard {
	rows := [][]string{
		{MainWeatherLabel, MainPrayerLabel},
		{MainCurrencyLabel, MainRandomLabel},
		{MainWikiLabel, MainFeedbackLabel},
	}
	if isAdmin {
		rows = append(rows, []string{MainAdminLabel})
	}
	return Keyboard{Rows: rows}
}

// AdminMenu returns the administrator panel keyboard.
func (c *Catalog) AdminMenu() Keyboard {
	return Keyboard{Rows: [][]string{
		{AdminBroadcastLabel, AdminBanLabel},
		{AdminUnbanLabel, AdminListLabel},
		{BackLabel},
	}}
}

// LocationMenu returns the city-or-location prompt keyboard used by the
// weather and prayer flows.
func (c *Catalog) LocationMenu() Keyboard {
	return Keyboard{
		Rows:            [][]string{{LocationLabel, BackLabel}},
		RequestLocation: true,
	}
}

// BackMenu returns a keyboard with only the back button.
func (c *Catalog) BackMenu() Keyboard {
	return Keyboard{Rows: [][]string{{BackLabel}}}
}

// CurrencyMenu returns the currency flow root keyboard: one quick-lookup
// button per non-base currency, the listing and converter entries, and back.
func (c *Catalog) CurrencyMenu() Keyboard {
	var rows [][]string
	for _, cur := range c.Currencies {
		if cur.Code == BaseCurrency {
			continue
		}
		rows = append(rows, []string{cur.Label})
	}
	rows = append(rows,
		[]string{CurrencyAllLabel, CurrencyConverterLabel},
		[]string{BackLabel},
	)
	return Keyboard{Rows: rows}
}

// CurrencySelectionMenu returns the converter currency picker, excluding the
// given code (empty string excludes nothing).
func (c *Catalog) CurrencySelectionMenu(exclude string) Keyboard {
	var rows [][]string
	for _, cur := range c.Currencies {
		if cur.Code == exclude {
			continue
		}
		rows = append(rows, []string{cur.Label})
	}
	rows = append(rows, []string{BackLabel})
	return Keyboard{Rows: rows}
}

// ForecastMenu returns the five-day forecast date keyboard starting at today.
func (c *Catalog) ForecastMenu(now time.Time) Keyboard {
	var rows [][]string
	for i := 0; i < 5; i++ {
		day := now.AddDate(0, 0, i).Format("2006-01-02")
		rows = append(rows, []string{"📅 " + day})
	}
	rows = append(rows, []string{BackLabel})
	return Keyboard{Rows: rows}
}
