package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"github.com/sadopc/kapi/internal/protocol"
)

// DefaultTimeout bounds every request unless SetTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

const maxRedirects = 10

// ProxyConfig holds proxy settings.
type ProxyConfig struct {
	URL     string // http://, https://, or socks5:// proxy URL
	NoProxy string // comma-separated list of hosts to bypass proxy
}

// Client implements protocol.Executor on top of resty.
type Client struct {
	rc        *resty.Client
	proxyConf *ProxyConfig
	tlsConf   *tls.Config
	log       *zap.Logger
}

// New creates a new HTTP client with the default timeout.
func New(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New()
	rc.SetTimeout(DefaultTimeout)
	rc.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	rc.SetAllowGetMethodPayload(true)
	rc.SetLogger(log.Sugar())
	rc.SetTransport(newTransport())
	return &Client{rc: rc, log: log}
}

// SetTimeout sets the client timeout. Non-positive values restore the default.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	c.rc.SetTimeout(d)
}

// Timeout returns the effective client timeout.
func (c *Client) Timeout() time.Duration {
	return c.rc.GetClient().Timeout
}

// SetProxy configures proxy settings for the client. An empty URL disables
// the proxy.
func (c *Client) SetProxy(proxyURL, noProxy string) error {
	var conf *ProxyConfig
	if proxyURL != "" {
		conf = &ProxyConfig{URL: proxyURL, NoProxy: noProxy}
	}
	if err := c.applyTransport(conf, c.tlsConf); err != nil {
		return err
	}
	c.proxyConf = conf
	return nil
}

// SetTLS applies client certificate, CA and verification settings. A zero
// TLSOptions restores the system defaults.
func (c *Client) SetTLS(opts TLSOptions) error {
	tlsConf, err := opts.Build()
	if err != nil {
		return err
	}
	if err := c.applyTransport(c.proxyConf, tlsConf); err != nil {
		return err
	}
	c.tlsConf = tlsConf
	return nil
}

// applyTransport swaps in a transport built from both proxy and TLS
// settings so that setting one never drops the other.
func (c *Client) applyTransport(proxyConf *ProxyConfig, tlsConf *tls.Config) error {
	transport, err := buildTransport(proxyConf)
	if err != nil {
		return err
	}
	transport.TLSClientConfig = tlsConf
	c.rc.SetTransport(transport)
	return nil
}

// Execute sends req and classifies the outcome. It never returns nil.
func (c *Client) Execute(ctx context.Context, req *protocol.Request) *protocol.Result {
	if req == nil {
		return protocol.Failed(protocol.Unexpected, errors.New("nil request"))
	}
	if _, err := url.Parse(req.URL); err != nil {
		return protocol.Failed(protocol.RequestFailure, fmt.Errorf("invalid URL: %w", err))
	}

	r := c.rc.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if req.HasBody() {
		if !hasHeader(req.Headers, "Content-Type") {
			r.SetHeader("Content-Type", "application/json")
		}
		r.SetBody([]byte(req.Body))
	}

	c.log.Debug("sending request",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("headers", len(req.Headers)),
		zap.Bool("body", req.HasBody()),
	)

	start := time.Now()
	resp, err := r.Execute(req.Method, req.URL)
	duration := time.Since(start)
	if err != nil {
		kind := Classify(err)
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
		return protocol.Failed(kind, err)
	}

	result := &protocol.Result{
		Kind:        protocol.OK,
		StatusCode:  resp.StatusCode(),
		Headers:     flattenHeaders(resp.Header()),
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
		Duration:    duration,
	}
	c.log.Info("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status", result.StatusCode),
		zap.Duration("duration", duration),
		zap.Int("size", len(result.Body)),
	)
	return result
}

// Classify maps a transport error onto a failure kind. Timeouts win over
// connection failures so a dial that hits the deadline reads as a timeout.
func Classify(err error) protocol.FailureKind {
	if err == nil {
		return protocol.OK
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return protocol.Timeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return protocol.Timeout
	}

	if isTLSFailure(err) {
		return protocol.ConnectionFailure
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return protocol.ConnectionFailure
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return protocol.ConnectionFailure
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return protocol.ConnectionFailure
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return protocol.ConnectionFailure
	}
	return protocol.RequestFailure
}

// isTLSFailure reports handshake and certificate errors. They count as
// connection failures because no HTTP exchange took place.
func isTLSFailure(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	var authorityErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	var recordErr tls.RecordHeaderError
	var alertErr tls.AlertError
	return errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &alertErr)
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// flattenHeaders joins repeated header values with ", ".
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}

// buildTransport creates an http.Transport configured with proxy settings.
func buildTransport(conf *ProxyConfig) (*http.Transport, error) {
	transport := newTransport()
	if conf == nil || conf.URL == "" {
		return transport, nil
	}

	parsed, err := url.Parse(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy URL: %w", err)
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsed.User != nil {
			password, _ := parsed.User.Password()
			auth = &proxy.Auth{
				User:     parsed.User.Username(),
				Password: password,
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("creating SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		noProxyHosts := parseNoProxy(conf.NoProxy)
		direct := &net.Dialer{Timeout: 30 * time.Second}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, _ := net.SplitHostPort(addr)
			if shouldBypassProxy(host, noProxyHosts) {
				return direct.DialContext(ctx, network, addr)
			}
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	case "http", "https":
		noProxyHosts := parseNoProxy(conf.NoProxy)
		transport.Proxy = func(r *http.Request) (*url.URL, error) {
			if shouldBypassProxy(r.URL.Hostname(), noProxyHosts) {
				return nil, nil
			}
			return parsed, nil
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s", parsed.Scheme)
	}

	return transport, nil
}

// parseNoProxy splits a comma-separated no-proxy string into trimmed host entries.
func parseNoProxy(noProxy string) []string {
	parts := strings.Split(noProxy, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			hosts = append(hosts, strings.ToLower(p))
		}
	}
	return hosts
}

// shouldBypassProxy checks whether a host should bypass the proxy.
func shouldBypassProxy(host string, noProxyHosts []string) bool {
	host = strings.ToLower(host)
	for _, h := range noProxyHosts {
		if h == host {
			return true
		}
		// Support wildcard suffix matching (e.g., .example.com)
		if strings.HasPrefix(h, ".") && strings.HasSuffix(host, h) {
			return true
		}
	}
	return false
}
