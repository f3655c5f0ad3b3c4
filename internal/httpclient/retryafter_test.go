package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"empty", "", retryAfterFallback},
		{"seconds", "7", 7 * time.Second},
		{"negative", "-3", 0},
		{"capped", "3600", retryAfterCap},
		{"garbage", "soon", retryAfterFallback},
		{"past date", "Mon, 02 Jan 2006 15:04:05 GMT", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRetryAfter(tt.header))
		})
	}
}

func TestParseRetryAfter_FutureDate(t *testing.T) {
	header := time.Now().Add(10 * time.Minute).UTC().Format(http.TimeFormat)
	assert.Equal(t, retryAfterCap, parseRetryAfter(header))
}

func TestValidateProxy(t *testing.T) {
	assert.NoError(t, validateProxy("socks5://127.0.0.1:1080"))
	assert.NoError(t, validateProxy("http://proxy:3128"))
	assert.Error(t, validateProxy("ftp://proxy:21"))
	assert.Error(t, validateProxy("http://"))
}

func TestResolveUserAgent(t *testing.T) {
	assert.Equal(t, DefaultUserAgent, ResolveUserAgent(""))
	assert.Equal(t, "probe/2", ResolveUserAgent("probe/2"))
}
