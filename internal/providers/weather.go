package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ulugdev/yordamchi/internal/logger"
)

const defaultWeatherBaseURL = "http://api.openweathermap.org/data/2.5"

// WeatherReading is one resolved current-weather observation.
type WeatherReading struct {
	City     string
	Lat      float64
	Lon      float64
	TempC    float64
	Desc     string
	Humidity int
	WindMS   float64
	// PrecipMM is rain or snow volume over the last hour.
	PrecipMM float64
	Sunrise  time.Time
	Sunset   time.Time
}

// DayForecast is one forecast-table entry: the first upstream 3-hour slot of a
// calendar day.
type DayForecast struct {
	TempC    float64
	Desc     string
	Humidity int
	WindMS   float64
	// PrecipMM is rain or snow volume over the 3-hour slot.
	PrecipMM float64
}

// ForecastTable maps ISO dates (YYYY-MM-DD) to that day's forecast entry.
type ForecastTable map[string]DayForecast

// WeatherClient resolves current weather and five-day forecasts.
type WeatherClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewWeatherClient builds a weather client; baseURL may be empty to use the
// public endpoint.
func NewWeatherClient(apiKey, baseURL string) *WeatherClient {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &WeatherClient{
		http:    newHTTPClient(),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type weatherResponse struct {
	Cod  json.RawMessage `json:"cod"`
	Name string          `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneHour float64 `json:"1h"`
	} `json:"snow"`
}

// CurrentByCity resolves the current weather for a city name.
func (c *WeatherClient) CurrentByCity(ctx context.Context, city string) (WeatherReading, error) {
	q := url.Values{}
	q.Set("q", city)
	return c.current(ctx, q, "❌ Shahar topilmadi! Iltimos, to‘g‘ri nom kiriting.")
}

// CurrentByCoords resolves the current weather for a coordinate pair.
func (c *WeatherClient) CurrentByCoords(ctx context.Context, lat, lon float64) (WeatherReading, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	return c.current(ctx, q, "❌ Joylashuv bo‘yicha ma’lumot topilmadi.")
}

func (c *WeatherClient) current(ctx context.Context, q url.Values, notFound string) (WeatherReading, error) {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "uz")

	var resp weatherResponse
	start := time.Now()
	err := getJSON(ctx, c.http, c.baseURL+"/weather?"+q.Encode(), &resp)
	logger.PROV.Debug("weather lookup",
		slog.String("event", "weather.current"),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
		logger.RID(ctx),
	)
	if err != nil {
		return WeatherReading{}, fail("⚠️ Ob-havo ma’lumotlarini olishda xatolik yuz berdi.", err)
	}
	if intCode(resp.Cod) != 200 {
		return WeatherReading{}, fail(notFound, fmt.Errorf("weather cod %s", resp.Cod))
	}

	reading := WeatherReading{
		City:     resp.Name,
		Lat:      resp.Coord.Lat,
		Lon:      resp.Coord.Lon,
		TempC:    resp.Main.Temp,
		Humidity: resp.Main.Humidity,
		WindMS:   resp.Wind.Speed,
		Sunrise:  time.Unix(resp.Sys.Sunrise, 0),
		Sunset:   time.Unix(resp.Sys.Sunset, 0),
	}
	if len(resp.Weather) > 0 {
		reading.Desc = resp.Weather[0].Description
	}
	reading.PrecipMM = resp.Rain.OneHour
	if reading.PrecipMM == 0 {
		reading.PrecipMM = resp.Snow.OneHour
	}
	return reading, nil
}

type forecastResponse struct {
	Cod  json.RawMessage `json:"cod"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			ThreeHours float64 `json:"3h"`
		} `json:"rain"`
		Snow struct {
			ThreeHours float64 `json:"3h"`
		} `json:"snow"`
	} `json:"list"`
}

// Forecast fetches the 5-day/3-hour feed and buckets it into one entry per
// calendar day; the first chronological entry of a day wins.
func (c *WeatherClient) Forecast(ctx context.Context, lat, lon float64) (ForecastTable, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "uz")

	var resp forecastResponse
	start := time.Now()
	err := getJSON(ctx, c.http, c.baseURL+"/forecast?"+q.Encode(), &resp)
	logger.PROV.Debug("forecast lookup",
		slog.String("event", "weather.forecast"),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
		logger.RID(ctx),
	)
	if err != nil {
		return nil, fail("⚠️ Ob-havo prognozini olishda xatolik yuz berdi.", err)
	}
	if intCode(resp.Cod) != 200 {
		return nil, fail("⚠️ Ob-havo prognozini olishda xatolik yuz berdi.", fmt.Errorf("forecast cod %s", resp.Cod))
	}

	table := make(ForecastTable)
	for _, entry := range resp.List {
		date := time.Unix(entry.Dt, 0).Format("2006-01-02")
		if _, seen := table[date]; seen {
			continue
		}
		day := DayForecast{
			TempC:    entry.Main.Temp,
			Humidity: entry.Main.Humidity,
			WindMS:   entry.Wind.Speed,
		}
		if len(entry.Weather) > 0 {
			day.Desc = entry.Weather[0].Description
		}
		day.PrecipMM = entry.Rain.ThreeHours
		if day.PrecipMM == 0 {
			day.PrecipMM = entry.Snow.ThreeHours
		}
		table[date] = day
	}
	return table, nil
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%g", v)
}
