package iofetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgarchive/vgdb/internal/iofetch"
	"github.com/vgarchive/vgdb/pkg/config"
	"github.com/vgarchive/vgdb/pkg/errcode"
)

func TestGet(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			switch r.URL.Path {
			case "/wiki/Ico":
				_, _ = w.Write([]byte("<html>Ico</html>"))
			default:
				http.NotFound(w, r)
			}
		}))
	defer srv.Close()

	cfg := config.New().Import
	cfg.UserAgent = "vgdb-test/1.0"
	f := iofetch.New(cfg)

	body, err := f.Get(context.Background(), srv.URL+"/wiki/Ico")
	require.NoError(t, err)
	assert.Equal(t, "<html>Ico</html>", string(body))
	assert.Equal(t, "vgdb-test/1.0", agent)

	_, err = f.Get(context.Background(), srv.URL+"/wiki/Missing")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.FetchStatusError, gnErr.Code)

	var he *iofetch.HTTPError
	require.True(t, errors.As(gnErr.Err, &he))
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
	defer srv.Close()

	f := iofetch.NewWithClient(&http.Client{Timeout: 50 * time.Millisecond}, "t")
	_, err := f.Get(context.Background(), srv.URL)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.FetchError, gnErr.Code)
}

func TestGet_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := iofetch.NewWithClient(http.DefaultClient, "t")
	_, err := f.Get(ctx, "http://127.0.0.1:1/")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, context.Canceled)
}
