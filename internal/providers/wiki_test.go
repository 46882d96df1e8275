package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTruncatesToThreeSentences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/rest_v1/page/summary/O'zbekiston", r.URL.Path)
		fmt.Fprint(w, `{"type": "standard", "title": "O'zbekiston", "extract": "Birinchi gap. Ikkinchi gap. Uchinchi gap. To'rtinchi gap. Beshinchi gap."}`)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL)
	got, err := client.Summary(context.Background(), "O'zbekiston")
	require.NoError(t, err)
	assert.Equal(t, "Birinchi gap. Ikkinchi gap. Uchinchi gap.", got)
}

func TestSummaryReplacesSpacesWithUnderscores(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"type": "standard", "extract": "Gap."}`)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL)
	_, err := client.Summary(context.Background(), "Amir Temur")
	require.NoError(t, err)
	assert.Equal(t, "/api/rest_v1/page/summary/Amir_Temur", gotPath)
}

func TestSummaryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL)
	got, err := client.Summary(context.Background(), "yo'q mavzu")
	require.NoError(t, err)
	assert.Equal(t, "Bu mavzu bo‘yicha ma’lumot topilmadi", got)
}

func TestSummaryDisambiguationListsCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w/api.php":
			assert.Equal(t, "opensearch", r.URL.Query().Get("action"))
			fmt.Fprint(w, `["Chust", ["Chust shahri", "Chust tumani"], [], []]`)
		default:
			fmt.Fprint(w, `{"type": "disambiguation", "extract": ""}`)
		}
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL)
	got, err := client.Summary(context.Background(), "Chust")
	require.NoError(t, err)
	assert.Equal(t, "Bu so‘z bir nechta ma’noga ega bo‘lishi mumkin: Chust shahri, Chust tumani", got)
}

func TestSummaryEmptyExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"type": "standard", "extract": "   "}`)
	}))
	defer srv.Close()

	client := NewWikiClient(srv.URL)
	got, err := client.Summary(context.Background(), "bo'sh")
	require.NoError(t, err)
	assert.Equal(t, "Bu mavzu bo‘yicha ma’lumot topilmadi", got)
}

func TestTruncateSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{name: "fewer than limit", text: "Bitta gap.", n: 3, want: "Bitta gap."},
		{name: "exact cut", text: "Bir. Ikki. Uch. To'rt.", n: 2, want: "Bir. Ikki."},
		{name: "question and exclamation", text: "Nima? Ha! Yana gap. Ortiqcha.", n: 3, want: "Nima? Ha! Yana gap."},
		{name: "decimal point not a boundary", text: "Narx 3.5 ming. Ikkinchi gap. Uchinchi.", n: 2, want: "Narx 3.5 ming. Ikkinchi gap."},
		{name: "zero limit", text: "Gap.", n: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateSentences(tt.text, tt.n))
		})
	}
}
