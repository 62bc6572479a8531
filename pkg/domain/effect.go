package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// EffectKind enumerates the side effects an option can request.
type EffectKind string

const (
	// EffectOpenURL opens an external URL (optionally in a new tab).
	EffectOpenURL EffectKind = "open_url"
	// EffectOpenMail opens a mail composer with a prefilled subject and body.
	EffectOpenMail EffectKind = "open_mail"
	// EffectOpenSMS opens the SMS composer with a prefilled body.
	EffectOpenSMS EffectKind = "open_sms"
	// EffectOpenChat opens a messaging deep link with prefilled text.
	EffectOpenChat EffectKind = "open_chat"
	// EffectDial starts a phone call.
	EffectDial EffectKind = "dial"
	// EffectNavigate moves to an internal route with query parameters.
	EffectNavigate EffectKind = "navigate"
)

// Effect is a plain data description of a terminal side effect.
// The host interprets it through a ports.EffectHandler.
type Effect struct {
	Kind    EffectKind        `json:"kind" mapstructure:"kind"`
	URL     string            `json:"url,omitempty" mapstructure:"url"`
	NewTab  bool              `json:"new_tab,omitempty" mapstructure:"new_tab"`
	To      string            `json:"to,omitempty" mapstructure:"to"`
	Phone   string            `json:"phone,omitempty" mapstructure:"phone"`
	Subject string            `json:"subject,omitempty" mapstructure:"subject"`
	Body    string            `json:"body,omitempty" mapstructure:"body"`
	Path    string            `json:"path,omitempty" mapstructure:"path"`
	Query   map[string]string `json:"query,omitempty" mapstructure:"query"`
}

// Validate checks the fields required by the effect kind.
func (e Effect) Validate() error {
	switch e.Kind {
	case EffectOpenURL:
		if e.URL == "" {
			return fmt.Errorf("%s effect missing url", e.Kind)
		}
	case EffectOpenMail:
		if e.To == "" {
			return fmt.Errorf("%s effect missing to", e.Kind)
		}
	case EffectOpenSMS, EffectOpenChat, EffectDial:
		if e.Phone == "" {
			return fmt.Errorf("%s effect missing phone", e.Kind)
		}
	case EffectNavigate:
		if !strings.HasPrefix(e.Path, "/") {
			return fmt.Errorf("%s effect path must be absolute, got %q", e.Kind, e.Path)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

// Href renders the effect as the URI a browser would open.
func (e Effect) Href() string {
	switch e.Kind {
	case EffectOpenURL:
		return e.URL
	case EffectOpenMail:
		return "mailto:" + e.To + joinParams("subject", e.Subject, "body", e.Body)
	case EffectOpenSMS:
		return "sms:" + e.Phone + joinParams("body", e.Body)
	case EffectOpenChat:
		return "https://wa.me/" + strings.TrimPrefix(e.Phone, "+") + joinParams("text", e.Body)
	case EffectDial:
		return "tel:" + e.Phone
	case EffectNavigate:
		if len(e.Query) == 0 {
			return e.Path
		}
		q := url.Values{}
		for k, v := range e.Query {
			q.Set(k, v)
		}
		return e.Path + "?" + q.Encode()
	}
	return ""
}

// External reports whether the effect leaves the site.
func (e Effect) External() bool {
	return e.Kind != EffectNavigate
}

// joinParams builds "?k1=v1&k2=v2" skipping empty values, percent-encoding spaces as %20.
func joinParams(kv ...string) string {
	var parts []string
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		parts = append(parts, kv[i]+"="+EncodeComponent(kv[i+1]))
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// componentUnescaper restores the marks url.QueryEscape encodes but a URI
// component leaves alone, and spells spaces as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way JavaScript's encodeURIComponent does:
// letters, digits and -_.!~*'() are kept, everything else is escaped as UTF-8.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
