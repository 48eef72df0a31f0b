package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/miditok/midi"
	"github.com/jsphweid/miditok/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, method, target string, body []byte) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func TestHealth(t *testing.T) {
	resp := do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var h model.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "ok", h.Status)
}

func TestHandleDecode(t *testing.T) {
	resp := do(t, http.MethodPost, "/decode", []byte("TEMPO 120\nTIMEBASE 480\nTIME_SHIFT 10\nNOTE_ON C4 VELOCITY 100\nTIME_SHIFT 5\nNOTE_OFF C4"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	s, err := midi.ReadMidi(resp.Body)
	require.NoError(t, err)
	notes := midi.TrackNotes(s)
	require.Len(t, notes[0], 1)
	assert.Equal(t, uint8(60), notes[0][0].Pitch)
}

func TestHandleDecodeBadInput(t *testing.T) {
	for _, body := range []string{"", "NOTE_ON Z4 VELOCITY 1", "TIME_SHIFT soon", "TEMPO 0"} {
		resp := do(t, http.MethodPost, "/decode", []byte(body))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

		var e model.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
		assert.NotEmpty(t, e.Error)
	}
}

func TestHandleEncode(t *testing.T) {
	s, err := midi.Build(model.Header{BPM: 90, Timebase: 480}, []model.OutNote{{Pitch: 69, StartTick: 480, DurationTicks: 480, Velocity: 1}})
	require.NoError(t, err)
	data, err := midi.Bytes(s)
	require.NoError(t, err)

	resp := do(t, http.MethodPost, "/encode?timebase=96", data)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(string(body), "\n")
	assert.Equal(t, []string{"TEMPO 90", "TIMEBASE 96", "TIME_SHIFT 96", "NOTE_ON A4 VELOCITY 127"}, lines[:4])
}

func TestHandleEncodeBadRequests(t *testing.T) {
	resp := do(t, http.MethodPost, "/encode?timebase=abc", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, "/encode?timebase=40000", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, "/encode", []byte("not midi"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWrongMethod(t *testing.T) {
	resp := do(t, http.MethodGet, "/decode", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
