package handler

import (
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
)

// DetectCapabilities derives the device capability set from the request so
// the core never inspects a user agent itself. Client hints win over UA
// sniffing when present.
func DetectCapabilities(r *http.Request) domain.Capabilities {
	ua := strings.ToLower(r.UserAgent())

	isAndroid := strings.Contains(ua, "android")
	isMobile := isAndroid ||
		strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "ipad") ||
		strings.Contains(ua, "mobile")

	switch r.Header.Get("Sec-CH-UA-Mobile") {
	case "?1":
		isMobile = true
	case "?0":
		isMobile = false
	}

	return domain.Capabilities{
		IsMobile:  isMobile,
		IsAndroid: isAndroid,
		// Web Share API is effectively a mobile-browser feature; clipboard
		// write is available everywhere we serve HTML.
		CanShare:          isMobile,
		CanWriteClipboard: true,
	}
}
