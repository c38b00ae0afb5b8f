// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
)

const CheckPrivateProxy = "PRIVATE"

// HeaderRaw returns the value of the named header.
func HeaderRaw(r *http.Request, name string) string {
	return r.Header.Get(name)
}

// ClientIp returns the client IP address.
//
// As the request may come from a proxy, the function checks the
// X-Real-Ip and X-Forwarded-For headers to get the real client IP
// if the request IP matches one of the allowed proxy IPs.
// If the special proxy value CheckPrivateProxy ("PRIVATE") is passed, the function will
// also check the header if the request IP is a private IP address.
func ClientIp(r *http.Request, allowedProxyIp ...string) string {
	IP := parseIp(r.RemoteAddr)
	if IP == nil {
		return ""
	}

	isProxiedRequest := slices.Contains(allowedProxyIp, IP.String()) ||
		(IP.IsPrivate() || IP.IsLoopback()) && slices.Contains(allowedProxyIp, CheckPrivateProxy)
	if !isProxiedRequest {
		return IP.String()
	}

	realClientIP := r.Header.Get("X-Real-Ip")
	if realClientIP == "" {
		// the first entry is the original client
		realClientIP, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}
	if realIP := parseIp(realClientIP); realIP != nil {
		return realIP.String()
	}

	return IP.String()
}

func parseIp(addr string) net.IP {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return net.ParseIP(addr)
}

// ErrTrailingData is returned by BodyJson if the body contains more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// BodyJson decodes the JSON value from the request body into the target.
// The function returns an error if the JSON value could not be decoded or if anything
// but whitespace follows it. The body reader is closed after reading.
func BodyJson(r *http.Request, target any) error {
	defer func() {
		_ = r.Body.Close()
	}()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(target); err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return ErrTrailingData
	}

	return nil
}
