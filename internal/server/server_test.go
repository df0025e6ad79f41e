package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"5000":           ":5000",
		":8080":          ":8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeAddr(in), "input %q", in)
	}
}

func TestNew_DefaultsZeroTimeouts(t *testing.T) {
	s := New(Timeouts{Write: 5 * time.Second})

	assert.Equal(t, readHeaderTimeout, s.timeouts.ReadHeader)
	assert.Equal(t, 5*time.Second, s.timeouts.Write)
	assert.Equal(t, idleTimeout, s.timeouts.Idle)

	hs := newHTTPServer(":0", http.NotFoundHandler(), s.timeouts)
	assert.Equal(t, 5*time.Second, hs.WriteTimeout)
	assert.Equal(t, maxHeaderBytes, hs.MaxHeaderBytes)
}

func TestShutdown_BeforeRun(t *testing.T) {
	assert.NoError(t, New(Timeouts{}).Shutdown(context.Background()))
}
