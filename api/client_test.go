package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/spool/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"filament":{"id":3,"name":"Galaxy Black","material":"PLA","density":1.27,"color_hex":"111111"},"remaining_weight":640.5,"location":"AMS A"}`))
	})
	mux.HandleFunc("/api/v1/spool/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/v1/spool", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filament.name"); got != "" && got != "Black" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[
			{"id":1,"filament":{"name":"Black","density":1.24},"archived":true},
			{"id":2,"filament":{"name":"Black","density":1.25}}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFindSpoolsById(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL + "/")

	s, err := c.FindSpoolsById(7)
	require.NoError(t, err)
	require.Equal(t, 7, s.Id)
	require.Equal(t, "Galaxy Black", s.Filament.Name)
	require.Equal(t, 1.27, s.Density())

	_, err = c.FindSpoolsById(8)
	require.True(t, errors.Is(err, ErrSpoolNotFound))

	_, err = c.FindSpoolsById(500)
	require.ErrorContains(t, err, "status 500: boom")
}

func TestFindSpoolsByName(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	all, err := c.FindSpoolsByName("Black", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	active, err := c.FindSpoolsByName("Black", NotArchived)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, 2, active[0].Id)

	none, err := c.FindSpoolsByName("Silk Gold", nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestBadBaseURL(t *testing.T) {
	c := NewClient("://nope")
	_, err := c.FindSpoolsById(1)
	require.Error(t, err)
}
