// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/tomtom215/footfall/internal/models"
)

// ClientIPResolver determines the address a visit is recorded under.
//
// Order: first X-Forwarded-For entry, then X-Real-IP, then the socket peer.
// Forwarded headers are only believed when trustAll is set or the peer is
// inside one of the trusted prefixes. An address that cannot be determined
// resolves to models.LoopbackIP.
type ClientIPResolver struct {
	trustAll bool
	trusted  []netip.Prefix
}

// NewClientIPResolver parses trustedProxies, each a bare IP or a CIDR.
func NewClientIPResolver(trustAll bool, trustedProxies []string) (*ClientIPResolver, error) {
	res := &ClientIPResolver{trustAll: trustAll}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		prefix, err := parsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		res.trusted = append(res.trusted, prefix)
	}
	return res, nil
}

func parsePrefix(raw string) (netip.Prefix, error) {
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// Resolve returns the client IP for r.
func (c *ClientIPResolver) Resolve(r *http.Request) string {
	peer, peerOK := peerAddr(r.RemoteAddr)

	if c.trustsPeer(peer, peerOK) {
		if ip, ok := firstForwarded(r.Header.Get("X-Forwarded-For")); ok {
			return ip
		}
		if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
			return ip
		}
	}

	if peerOK {
		return peer.String()
	}
	return models.LoopbackIP
}

func (c *ClientIPResolver) trustsPeer(peer netip.Addr, ok bool) bool {
	if c.trustAll {
		return true
	}
	if !ok {
		return false
	}
	for _, prefix := range c.trusted {
		if prefix.Contains(peer) {
			return true
		}
	}
	return false
}

func peerAddr(remoteAddr string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func firstForwarded(header string) (string, bool) {
	first, _, _ := strings.Cut(header, ",")
	return parseIP(first)
}

func parseIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
