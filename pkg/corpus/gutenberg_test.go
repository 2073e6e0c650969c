package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDownloaderDefaults(t *testing.T) {
	d := NewDownloader(nil, 0)
	assert.Equal(t, DefaultURLFormats, d.urlFormats)
	assert.Equal(t, DefaultDownloadTimeout, d.client.Timeout)
}

func TestDownloadFallsBackToSecondFormat(t *testing.T) {
	srv, hits := bookServer(t, "11")
	d := testDownloader(srv)

	text, source, err := d.Download(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, sampleBook, text)
	assert.Equal(t, srv.URL+"/files/11/11.txt", source)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDownloadAllFormatsFail(t *testing.T) {
	srv, _ := bookServer(t, "11")
	d := testDownloader(srv)

	_, _, err := d.Download(context.Background(), 84)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download book 84")
	assert.Contains(t, err.Error(), "404")
}

func TestDownloadCancelled(t *testing.T) {
	srv, hits := bookServer(t, "11")
	d := testDownloader(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.Download(ctx, 11)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), hits.Load())
}
