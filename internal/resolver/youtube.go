package resolver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	// Registers the socks4 scheme with golang.org/x/net/proxy.
	_ "github.com/bdandy/go-socks4"
	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/proxy"
)

// newYouTubeClient builds a youtube client, optionally routed through an
// http, https, socks5 or socks4 proxy. A bad proxy falls back to a direct
// client rather than failing startup.
func newYouTubeClient(proxyStr string) *youtube.Client {
	transport := proxyTransport(proxyStr)
	if transport == nil {
		return &youtube.Client{
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
		}
	}
	return &youtube.Client{
		HTTPClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

func proxyTransport(proxyStr string) *http.Transport {
	if proxyStr == "" {
		return nil
	}

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		log.Warn().Str("module", "resolver").Err(err).Msg("invalid proxy URL, going direct")
		return nil
	}

	switch proxyURL.Scheme {
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(proxyURL)}

	case "socks5":
		auth := &proxy.Auth{}
		if proxyURL.User != nil {
			auth.User = proxyURL.User.Username()
			if pass, ok := proxyURL.User.Password(); ok {
				auth.Password = pass
			}
		}
		dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 10 * time.Second,
		})
		if err != nil {
			log.Warn().Str("module", "resolver").Err(err).Msg("socks5 dialer error, going direct")
			return nil
		}
		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}

	case "socks4":
		dialer, err := proxy.FromURL(proxyURL, &net.Dialer{Timeout: 10 * time.Second})
		if err != nil {
			log.Warn().Str("module", "resolver").Err(err).Msg("socks4 dialer error, going direct")
			return nil
		}
		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}

	default:
		log.Warn().Str("module", "resolver").Str("scheme", proxyURL.Scheme).
			Msg("unsupported proxy scheme, going direct")
		return nil
	}
}

// extractYouTubeID pulls the video ID out of the common URL shapes.
func extractYouTubeID(rawURL string) (string, error) {
	switch {
	case strings.Contains(rawURL, "youtu.be/"):
		parts := strings.Split(rawURL, "youtu.be/")
		if len(parts) != 2 {
			return "", errors.New("invalid YouTube URL format")
		}
		return strings.Split(parts[1], "?")[0], nil

	case strings.Contains(rawURL, "youtube.com/watch?v="):
		parts := strings.Split(rawURL, "v=")
		if len(parts) != 2 {
			return "", errors.New("invalid YouTube URL format")
		}
		return strings.Split(parts[1], "&")[0], nil

	default:
		return "", errors.New("unsupported URL format")
	}
}
