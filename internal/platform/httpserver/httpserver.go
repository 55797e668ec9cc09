package httpserver

import (
	"net/http"
	"time"
)

// New builds the service's HTTP server. readHeaderTimeout bounds how long a
// client may dribble request headers; it must stay short because every live
// report connection also starts life as a plain HTTP request here.
func New(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
