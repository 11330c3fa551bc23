package enrichment

import (
	"net"
)

const (
	OriginLocal   = "local"
	OriginPublic  = "public"
	OriginUnknown = "unknown"
)

// ClassifyIP buckets a viewer address without any external geo database.
func ClassifyIP(ipAddress string) string {
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return OriginUnknown
	}

	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
		return OriginLocal
	}

	return OriginPublic
}
