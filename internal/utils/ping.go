package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// PingService reports whether anything is listening at the given URL. Only a
// TCP connect, no request is sent.
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Scheme default when the URL names no port
	if port == "" {
		switch parsedURL.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingRemoteStore checks if the remote document store is reachable
func PingRemoteStore(remoteURL string) error {
	return PingService(remoteURL, 1500*time.Millisecond)
}
