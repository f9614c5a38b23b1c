// Package network wraps the TLS-fingerprinting HTTP client shared by the
// source adapters, with user-agent rotation, optional proxy rotation, and
// the throttle/retry helpers that keep the pipeline polite to rate-limited
// sources.
package network

import (
	"context"
	"errors"
	"math/rand"
	"net/url"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrNoProxies = errors.New("no proxies available")

// Browser-like user agents; one is picked per request without an explicit
// User-Agent header.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

const proxyBanDuration = 10 * time.Minute

type Client struct {
	http    tls_client.HttpClient
	proxies *proxyRing
	rand    *rand.Rand
	randMu  sync.Mutex
}

// NewClient builds a client with a Chrome TLS profile and cookie jar.
// Proxy URLs are optional; with none, requests go direct.
func NewClient(proxies []string) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(30),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	ring, err := newProxyRing(proxies)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    client,
		proxies: ring,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy := c.nextProxy()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.proxies.report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) nextProxy() *url.URL {
	if c.proxies == nil {
		return nil
	}
	proxy, err := c.proxies.next()
	if err != nil || proxy == nil {
		return nil
	}
	_ = c.http.SetProxy(proxy.String())
	return proxy
}

func (c *Client) randomUA() string {
	c.randMu.Lock()
	defer c.randMu.Unlock()
	return userAgents[c.rand.Intn(len(userAgents))]
}

// Throttle sleeps for base plus a random jitter, or until the context is
// done. This is the rate-limit sleep between calls to an external source.
func (c *Client) Throttle(ctx context.Context, base, jitter time.Duration) {
	d := base
	if jitter > 0 {
		c.randMu.Lock()
		d += time.Duration(c.rand.Int63n(int64(jitter)))
		c.randMu.Unlock()
	}
	Sleep(ctx, d)
}

// Sleep waits for d or until the context is cancelled.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Retry runs fn and, on failure, retries exactly once after the backoff.
// Transient failures beyond the one retry surface to the caller, which is
// expected to skip the item and continue.
func Retry(ctx context.Context, backoff time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		Sleep(ctx, backoff)
		if ctx.Err() != nil {
			return err
		}
		return fn()
	}
	return nil
}

// proxyRing hands out proxies round-robin, skipping any that were recently
// rejected with 403/429.
type proxyRing struct {
	proxies     []*url.URL
	bannedUntil map[string]time.Time
	index       int
	mu          sync.Mutex
}

func newProxyRing(raw []string) (*proxyRing, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ring := &proxyRing{bannedUntil: map[string]time.Time{}}
	for _, proxy := range raw {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, err
		}
		ring.proxies = append(ring.proxies, u)
	}
	return ring, nil
}

func (r *proxyRing) next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.proxies) == 0 {
		return nil, ErrNoProxies
	}

	start := r.index
	for {
		proxy := r.proxies[r.index]
		r.index = (r.index + 1) % len(r.proxies)

		if !r.isBanned(proxy) {
			return proxy, nil
		}
		if r.index == start {
			return nil, ErrNoProxies
		}
	}
}

func (r *proxyRing) report(proxy *url.URL, status int) {
	if r == nil || proxy == nil {
		return
	}
	if status != 403 && status != 429 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bannedUntil[proxy.String()] = time.Now().Add(proxyBanDuration)
}

func (r *proxyRing) isBanned(proxy *url.URL) bool {
	until, ok := r.bannedUntil[proxy.String()]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(r.bannedUntil, proxy.String())
		return false
	}
	return true
}
