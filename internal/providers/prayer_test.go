package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulugdev/yordamchi/internal/catalog"
)

const prayerBody = `{
	"code": 200,
	"data": {"timings": {
		"Fajr": "05:12", "Sunrise": "06:40", "Dhuhr": "12:30",
		"Asr": "15:45", "Maghrib": "18:20", "Isha": "19:40"
	}}
}`

func TestPrayerByCityTranslatesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/timingsByCity", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Tashkent", q.Get("city"))
		assert.Equal(t, "Uzbekistan", q.Get("country"))
		assert.Equal(t, "2", q.Get("method"))
		fmt.Fprint(w, prayerBody)
	}))
	defer srv.Close()

	client := NewPrayerClient(catalog.Default(), srv.URL)
	timings, city, err := client.ByCity(context.Background(), "Toshkent")
	require.NoError(t, err)

	assert.Equal(t, "Tashkent", city)
	assert.Equal(t, "05:12", timings.Fajr)
	assert.Equal(t, "19:40", timings.Isha)
}

func TestPrayerByCoords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/timings", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "41.31", q.Get("latitude"))
		assert.Equal(t, "69.24", q.Get("longitude"))
		fmt.Fprint(w, prayerBody)
	}))
	defer srv.Close()

	client := NewPrayerClient(catalog.Default(), srv.URL)
	timings, err := client.ByCoords(context.Background(), 41.31, 69.24)
	require.NoError(t, err)
	assert.Equal(t, "12:30", timings.Dhuhr)
}

func TestPrayerByCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"code": 404, "data": {}}`)
	}))
	defer srv.Close()

	client := NewPrayerClient(catalog.Default(), srv.URL)
	_, _, err := client.ByCity(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Equal(t, "❌ Shahar topilmadi! Iltimos, to‘g‘ri nom kiriting yoki joylashuvingizni yuboring.", UserText(err))
}
