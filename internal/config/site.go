package config

import (
	"net/url"
	"strings"
)

// SiteConfig holds the settings for one website.
type SiteConfig struct {
	// References are the correct phone numbers of the site, in priority
	// order. They are normalized like interactive input.
	References []string `yaml:"references,omitempty"`

	// Cookie is an HTTP cookie to send.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File is the structure of the .telscan configuration file.
type File struct {
	// Sites maps host names (e.g. "www.example.co.jp") to their settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every site.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the merged settings for host. Site references are
// appended after the default references; a site cookie replaces the
// default one and site headers override default headers key by key.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	if cf == nil {
		return SiteConfig{}
	}

	result := SiteConfig{
		References: append([]string(nil), cf.Defaults.References...),
		Cookie:     cf.Defaults.Cookie,
	}
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	site, ok := cf.Sites[strings.ToLower(host)]
	if !ok {
		return result
	}

	result.References = append(result.References, site.References...)
	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(site.Headers))
		}
		for k, v := range site.Headers {
			result.Headers[k] = v
		}
	}

	return result
}

// SiteConfigForURL returns the merged settings for the host of rawURL.
// A URL without a scheme is treated as https.
func (cf *File) SiteConfigForURL(rawURL string) SiteConfig {
	return cf.GetSiteConfig(HostOf(rawURL))
}

// HostOf returns the lower-cased host name of rawURL without its port,
// or an empty string when it cannot be parsed.
func HostOf(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
