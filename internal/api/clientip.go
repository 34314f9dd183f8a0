package api

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientResolver derives the rate limit key of a request.
// X-Forwarded-For is only read when the direct peer is a trusted proxy.
type ClientResolver struct {
	trusted []netip.Prefix
}

// NewClientResolver parses trusted proxies given as IPs or CIDRs
func NewClientResolver(proxies []string) (*ClientResolver, error) {
	r := &ClientResolver{}

	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.Contains(p, "/") {
			prefix, err := netip.ParsePrefix(p)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
			}
			r.trusted = append(r.trusted, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		addr = addr.Unmap()
		r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return r, nil
}

// ClientIP returns the peer address, or for a trusted peer the nearest
// X-Forwarded-For hop that is not itself a trusted proxy.
func (r *ClientResolver) ClientIP(req *http.Request) string {
	peer := remoteHost(req.RemoteAddr)
	if r == nil || !r.isTrusted(peer) {
		return peer
	}

	// proxies append, so the rightmost untrusted hop is the one they saw
	hops := strings.Split(req.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !r.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (r *ClientResolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, p := range r.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
