package enrichment

import (
	"github.com/mssola/user_agent"
)

const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

type UAInfo struct {
	Browser        string
	BrowserVersion string
	OS             string
	DeviceType     string
}

func ParseUserAgent(uaString string) *UAInfo {
	if uaString == "" {
		return &UAInfo{DeviceType: DeviceUnknown}
	}

	ua := user_agent.New(uaString)

	browser, version := ua.Browser()
	deviceType := DeviceDesktop

	if ua.Bot() {
		deviceType = DeviceBot
	} else if ua.Mobile() {
		deviceType = DeviceMobile
	}

	return &UAInfo{
		Browser:        browser,
		BrowserVersion: version,
		OS:             ua.OS(),
		DeviceType:     deviceType,
	}
}
