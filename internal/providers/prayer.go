package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/logger"
)

const defaultPrayerBaseURL = "http://api.aladhan.com/v1"

// PrayerTimings holds the six daily timings as local time-of-day strings.
type PrayerTimings struct {
	Fajr    string
	Sunrise string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

// PrayerClient fetches prayer timings for Uzbekistan.
type PrayerClient struct {
	http    *http.Client
	baseURL string
	catalog *catalog.Catalog
}

// NewPrayerClient builds a prayer timings client; baseURL may be empty to use
// the public endpoint.
func NewPrayerClient(cat *catalog.Catalog, baseURL string) *PrayerClient {
	if baseURL == "" {
		baseURL = defaultPrayerBaseURL
	}
	return &PrayerClient{
		http:    newHTTPClient(),
		baseURL: baseURL,
		catalog: cat,
	}
}

type prayerResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings struct {
			Fajr    string `json:"Fajr"`
			Sunrise string `json:"Sunrise"`
			Dhuhr   string `json:"Dhuhr"`
			Asr     string `json:"Asr"`
			Maghrib string `json:"Maghrib"`
			Isha    string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}

// ByCity resolves today's timings for a city name. The local spelling is
// passed through the transliteration table first; the translated name is
// returned for display.
func (c *PrayerClient) ByCity(ctx context.Context, city string) (PrayerTimings, string, error) {
	translated := c.catalog.TranslateCity(city)
	q := url.Values{}
	q.Set("city", translated)
	q.Set("country", "Uzbekistan")
	q.Set("method", "2")

	timings, err := c.fetch(ctx, c.baseURL+"/timingsByCity?"+q.Encode(),
		"❌ Shahar topilmadi! Iltimos, to‘g‘ri nom kiriting yoki joylashuvingizni yuboring.")
	return timings, translated, err
}

// ByCoords resolves today's timings for a coordinate pair.
func (c *PrayerClient) ByCoords(ctx context.Context, lat, lon float64) (PrayerTimings, error) {
	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lon))
	q.Set("method", "2")

	return c.fetch(ctx, c.baseURL+"/timings?"+q.Encode(),
		"❌ Joylashuv bo‘yicha ma’lumot topilmadi.")
}

func (c *PrayerClient) fetch(ctx context.Context, url, notFound string) (PrayerTimings, error) {
	var resp prayerResponse
	start := time.Now()
	err := getJSON(ctx, c.http, url, &resp)
	logger.PROV.Debug("prayer lookup",
		slog.String("event", "prayer.timings"),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
		logger.RID(ctx),
	)
	if err != nil {
		return PrayerTimings{}, fail("⚠️ Namoz vaqtlarini olishda xatolik yuz berdi.", err)
	}
	if resp.Code != 200 {
		return PrayerTimings{}, fail(notFound, fmt.Errorf("prayer code %d", resp.Code))
	}

	t := resp.Data.Timings
	return PrayerTimings{
		Fajr:    t.Fajr,
		Sunrise: t.Sunrise,
		Dhuhr:   t.Dhuhr,
		Asr:     t.Asr,
		Maghrib: t.Maghrib,
		Isha:    t.Isha,
	}, nil
}
