package torznab

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/f2prateek/train"
	trainlog "github.com/f2prateek/train/log"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

// newTransport builds the round tripper used to talk to indexers.
// SOCKS_PROXY routes traffic through a socks5 proxy, TLS_INSECURE skips certificate checks
// and DEBUG_HTTP (basic|body) dumps every exchange to stderr.
func newTransport(logger *log.Entry) (http.RoundTripper, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	if proxyAddr, isset := os.LookupEnv("SOCKS_PROXY"); isset {
		logger.
			WithFields(log.Fields{"addr": proxyAddr}).
			Debugf("Using SOCKS5 proxy")

		dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("can't connect to the proxy %s: %w", proxyAddr, err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("proxy %s doesn't support dialing with a context", proxyAddr)
		}
		t.Proxy = nil
		t.DialContext = dc.DialContext
	}

	if _, isset := os.LookupEnv("TLS_INSECURE"); isset {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return withDebug(t, os.Getenv("DEBUG_HTTP"))
}

func withDebug(transport http.RoundTripper, mode string) (http.RoundTripper, error) {
	switch mode {
	case "1", "true", "basic":
		return train.TransportWith(transport, trainlog.New(os.Stderr, trainlog.Basic)), nil
	case "body":
		return train.TransportWith(transport, trainlog.New(os.Stderr, trainlog.Body)), nil
	case "":
		return transport, nil
	}
	return nil, fmt.Errorf("unknown value for DEBUG_HTTP: %q", mode)
}
