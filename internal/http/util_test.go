package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{" 10.0.0.0/8 ", "", "192.168.1.7", "::ffff:172.16.0.1"})
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
		netip.MustParsePrefix("172.16.0.1/32"),
	}, got)

	_, err = ParseTrustedProxies([]string{"lb.internal"})
	require.Error(t, err)
	_, err = ParseTrustedProxies([]string{"10.0.0.0/40"})
	require.Error(t, err)
}

func TestClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		remote  string
		xff     string
		realIP  string
		trusted []netip.Prefix
		want    string
	}{
		{name: "no proxies ignores forwarding headers", remote: "203.0.113.5:4000", xff: "1.2.3.4", realIP: "5.6.7.8", want: "203.0.113.5"},
		{name: "untrusted peer ignores forwarding headers", remote: "203.0.113.5:4000", xff: "1.2.3.4", trusted: proxies, want: "203.0.113.5"},
		{name: "trusted peer uses forwarded client", remote: "10.0.0.2:4000", xff: "198.51.100.9", trusted: proxies, want: "198.51.100.9"},
		{name: "spoofed leading hop is skipped", remote: "10.0.0.2:4000", xff: "1.1.1.1, 198.51.100.9, 10.0.0.3", trusted: proxies, want: "198.51.100.9"},
		{name: "all hops trusted", remote: "10.0.0.2:4000", xff: "10.0.0.9, 10.0.0.3", trusted: proxies, want: "10.0.0.9"},
		{name: "real ip from trusted peer", remote: "10.0.0.2:4000", realIP: "198.51.100.9", trusted: proxies, want: "198.51.100.9"},
		{name: "remote without port", remote: "203.0.113.5", want: "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-Ip", tt.realIP)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trusted))
		})
	}
}
