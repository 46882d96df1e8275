// Package providers implements the stateless clients for the upstream data
// sources: weather/forecast, prayer timings, exchange rates, and encyclopedia
// lookup. Transport-level faults never cross this boundary raw; every failure
// is wrapped with a user-facing message.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// requestTimeout bounds every upstream call.
const requestTimeout = 10 * time.Second

// UserError pairs a user-facing Uzbek message with the underlying cause.
type UserError struct {
	Msg string
	Err error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UserError) Unwrap() error { return e.Err }

// fail wraps err (possibly nil) with a user-facing message.
func fail(msg string, err error) error {
	return &UserError{Msg: msg, Err: err}
}

// UserText extracts the user-facing message from a provider error. Unknown
// errors map to a generic warning so raw transport details never reach chat.
func UserText(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Msg
	}
	return "⚠️ Xatolik yuz berdi."
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// getJSON issues a GET request and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("upstream status %s", resp.Status)
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// intCode normalizes a JSON status discriminant that upstreams emit either as
// a number or as a quoted string.
func intCode(raw json.RawMessage) int {
	s := string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	if s == "" {
		return 0
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return code
}
