package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ulugdev/yordamchi/internal/logger"
)

const defaultWikiBaseURL = "https://uz.wikipedia.org"

const wikiNotFoundMsg = "Bu mavzu bo‘yicha ma’lumot topilmadi"

// WikiClient looks up three-sentence encyclopedia summaries in the Uzbek
// locale.
type WikiClient struct {
	http    *http.Client
	baseURL string
}

// NewWikiClient builds an encyclopedia client; baseURL may be empty to use
// the public endpoint.
func NewWikiClient(baseURL string) *WikiClient {
	if baseURL == "" {
		baseURL = defaultWikiBaseURL
	}
	return &WikiClient{http: newHTTPClient(), baseURL: baseURL}
}

type wikiSummaryResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary resolves a query to a reply: a 3-sentence summary, a candidate list
// for ambiguous queries, or a not-found message. Only transport faults are
// returned as errors.
func (c *WikiClient) Summary(ctx context.Context, query string) (string, error) {
	start := time.Now()
	reply, err := c.summary(ctx, query)
	logger.PROV.Debug("wiki lookup",
		slog.String("event", "wiki.summary"),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
		logger.RID(ctx),
	)
	return reply, err
}

func (c *WikiClient) summary(ctx context.Context, query string) (string, error) {
	title := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(query), " ", "_"))
	endpoint := c.baseURL + "/api/rest_v1/page/summary/" + title

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fail("⚠️ Xatolik yuz berdi.", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fail("⚠️ Xatolik yuz berdi.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return wikiNotFoundMsg, nil
	}
	var page wikiSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return "", fail("⚠️ Xatolik yuz berdi.", err)
	}

	if page.Type == "disambiguation" {
		options, err := c.search(ctx, query)
		if err != nil || len(options) == 0 {
			// Fall back to a bare ambiguity notice when candidates are unavailable.
			return "Bu so‘z bir nechta ma’noga ega bo‘lishi mumkin.", nil
		}
		return "Bu so‘z bir nechta ma’noga ega bo‘lishi mumkin: " + strings.Join(options, ", "), nil
	}
	if strings.TrimSpace(page.Extract) == "" {
		return wikiNotFoundMsg, nil
	}
	return truncateSentences(page.Extract, 3), nil
}

// search lists candidate article titles for an ambiguous query.
func (c *WikiClient) search(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("action", "opensearch")
	q.Set("search", query)
	q.Set("limit", "10")
	q.Set("format", "json")

	var raw []json.RawMessage
	if err := getJSON(ctx, c.http, c.baseURL+"/w/api.php?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, nil
	}
	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// truncateSentences keeps at most n sentences, detecting boundaries at
// terminal punctuation followed by whitespace.
func truncateSentences(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(strings.TrimSpace(text))
	count := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' {
				count++
				if count == n {
					return string(runes[:i+1])
				}
			}
		}
	}
	return string(runes)
}
