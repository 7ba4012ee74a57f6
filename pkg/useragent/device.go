package useragent

import "strings"

type marker struct {
	token string
	name  string
}

// order matters: Edge and Chrome both carry "Chrome/", Chrome also "Safari/"
var browsers = []marker{
	{"Edg/", "Edge"},
	{"Firefox/", "Firefox"},
	{"Chrome/", "Chrome"},
	{"Safari/", "Safari"},
}

var systems = []marker{
	{"Windows NT 10.0", "Windows 10/11"},
	{"Windows", "Windows"},
	{"Android", "Android"},
	{"iPhone", "iOS"},
	{"iPad", "iOS"},
	{"Mac OS X", "macOS"},
	{"Linux", "Linux"},
}

// Describe turns a User-Agent header into a short label such as
// "Firefox 126 on Linux", used when logging connections.
func Describe(ua string) string {
	if ua == "" {
		return "Unknown Device"
	}

	browser, version := "Unknown Browser", ""
	for _, m := range browsers {
		if idx := strings.Index(ua, m.token); idx != -1 {
			browser = m.name
			version = majorVersion(ua[idx+len(m.token):])
			break
		}
	}

	os := "Unknown OS"
	for _, m := range systems {
		if strings.Contains(ua, m.token) {
			os = m.name
			break
		}
	}

	if version != "" {
		return browser + " " + version + " on " + os
	}
	return browser + " on " + os
}

func majorVersion(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
