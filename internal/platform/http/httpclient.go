package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient builds the client used for outbound calls (Open-Meteo, RAG, quotation page).
// http.DefaultClient has no timeout, so every caller goes through here.
//
//   - Proxy honors HTTP_PROXY and friends
//   - dial and TLS handshake are capped at 5s
//   - up to 100 idle connections are kept for 90s
//   - timeout bounds the whole request
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
