package domain_test

import (
	"testing"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestEffect_Href(t *testing.T) {
	tests := []struct {
		name   string
		effect domain.Effect
		want   string
	}{
		{
			name:   "external url",
			effect: domain.Effect{Kind: domain.EffectOpenURL, URL: "https://forms.gle/abc"},
			want:   "https://forms.gle/abc",
		},
		{
			name: "mail with subject and body",
			effect: domain.Effect{
				Kind:    domain.EffectOpenMail,
				To:      "sales@example.com",
				Subject: "Conveyor Parts Inquiry",
				Body:    "Hello,\n\nI need help.",
			},
			want: "mailto:sales@example.com?subject=Conveyor%20Parts%20Inquiry&body=Hello%2C%0A%0AI%20need%20help.",
		},
		{
			name:   "sms",
			effect: domain.Effect{Kind: domain.EffectOpenSMS, Phone: "+919756300040", Body: "mold parts"},
			want:   "sms:+919756300040?body=mold%20parts",
		},
		{
			name:   "messaging deep link strips plus",
			effect: domain.Effect{Kind: domain.EffectOpenChat, Phone: "+919756300040", Body: "Hello"},
			want:   "https://wa.me/919756300040?text=Hello",
		},
		{
			name:   "dial",
			effect: domain.Effect{Kind: domain.EffectDial, Phone: "+919756300040"},
			want:   "tel:+919756300040",
		},
		{
			name:   "internal route with query",
			effect: domain.Effect{Kind: domain.EffectNavigate, Path: "/products", Query: map[string]string{"model": "2"}},
			want:   "/products?model=2",
		},
		{
			name:   "internal route without query",
			effect: domain.Effect{Kind: domain.EffectNavigate, Path: "/"},
			want:   "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.effect.Validate())
			assert.Equal(t, tt.want, tt.effect.Href())
		})
	}
}

func TestEncodeComponent(t *testing.T) {
	tests := map[string]string{
		"it's (ok)!*":          "it's%20(ok)!*",
		"a-b_c.d~e":            "a-b_c.d~e",
		"1+1=2 & more":         "1%2B1%3D2%20%26%20more",
		"Hi,\nI need parts":    "Hi%2C%0AI%20need%20parts",
		"100% sure":            "100%25%20sure",
		"naïve":                "na%C3%AFve",
		"path/with?query#frag": "path%2Fwith%3Fquery%23frag",
	}
	for in, want := range tests {
		assert.Equal(t, want, domain.EncodeComponent(in), in)
	}
}

func TestEffect_Validate(t *testing.T) {
	assert.Error(t, domain.Effect{Kind: domain.EffectOpenURL}.Validate())
	assert.Error(t, domain.Effect{Kind: domain.EffectNavigate, Path: "products"}.Validate())
	assert.Error(t, domain.Effect{Kind: "teleport"}.Validate())
	assert.False(t, domain.Effect{Kind: domain.EffectNavigate, Path: "/"}.External())
}

func TestSlide_EmbedURL(t *testing.T) {
	s := domain.Slide{Kind: domain.SlideVideo, MediaID: "1061541347", Hash: "0cc9da38b8"}
	assert.Equal(t, "https://player.vimeo.com/video/1061541347?h=0cc9da38b8&loop=1&muted=1", s.EmbedURL())

	s.Hash = ""
	assert.Equal(t, "https://player.vimeo.com/video/1061541347?loop=1&muted=1", s.EmbedURL())

	assert.Empty(t, domain.Slide{Kind: domain.SlideImage, Src: "/a.png"}.EmbedURL())
}
