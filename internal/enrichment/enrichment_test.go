package enrichment

import "testing"

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		device  string
		browser string
	}{
		{
			name:    "desktop chrome",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			device:  DeviceDesktop,
			browser: "Chrome",
		},
		{
			name:   "iphone safari",
			ua:     "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			device: DeviceMobile,
		},
		{
			name:   "googlebot",
			ua:     "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			device: DeviceBot,
		},
		{
			name:   "empty",
			ua:     "",
			device: DeviceUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseUserAgent(tt.ua)
			if info.DeviceType != tt.device {
				t.Errorf("DeviceType = %q, want %q", info.DeviceType, tt.device)
			}
			if tt.browser != "" && info.Browser != tt.browser {
				t.Errorf("Browser = %q, want %q", info.Browser, tt.browser)
			}
		})
	}
}

func TestClassifyIP(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1":   OriginLocal,
		"10.1.2.3":    OriginLocal,
		"192.168.0.4": OriginLocal,
		"::1":         OriginLocal,
		"8.8.8.8":     OriginPublic,
		"":            OriginUnknown,
		"not-an-ip":   OriginUnknown,
	}

	for ip, want := range cases {
		if got := ClassifyIP(ip); got != want {
			t.Errorf("ClassifyIP(%q) = %q, want %q", ip, got, want)
		}
	}
}
