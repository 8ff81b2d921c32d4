package client

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewCustomTransport creates a transport with browser-like TLS settings.
// Certificate verification is skipped when verifyTLS is false.
func NewCustomTransport(verifyTLS bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !verifyTLS,
			MinVersion:         tls.VersionTLS12,
		},
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}
