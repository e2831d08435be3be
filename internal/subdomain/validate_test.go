package subdomain_test

import (
	"strings"
	"testing"

	"github.com/gastrohub-dev/gastrohub/backend/internal/subdomain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		candidate  string
		want       string
		wantReason string
	}{
		{name: "plain", candidate: "cafe-berlin", want: "cafe-berlin"},
		{name: "uppercase normalized", candidate: "  Cafe-Berlin  ", want: "cafe-berlin"},
		{name: "digits allowed", candidate: "pizza24", want: "pizza24"},
		{name: "empty", candidate: "", wantReason: "required"},
		{name: "whitespace only", candidate: "   ", wantReason: "required"},
		{name: "too short", candidate: "ab", wantReason: "length"},
		{name: "too long", candidate: strings.Repeat("a", 64), wantReason: "length"},
		{name: "63 chars ok", candidate: strings.Repeat("a", 63), want: strings.Repeat("a", 63)},
		{name: "leading hyphen", candidate: "-ab", wantReason: "format"},
		{name: "trailing hyphen", candidate: "ab-", wantReason: "format"},
		{name: "underscore", candidate: "my_cafe", wantReason: "format"},
		{name: "umlaut", candidate: "café", wantReason: "format"},
		{name: "double hyphen", candidate: "a--b", wantReason: "double-hyphen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := subdomain.Validate(tt.candidate)
			if tt.wantReason != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantReason, err.Reason)
				assert.Empty(t, got)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_Idempotent(t *testing.T) {
	inputs := []string{"Cafe-Berlin", "  PIZZA24 ", "trattoria-roma", "a--b", "-ab", ""}

	for _, input := range inputs {
		first, firstErr := subdomain.Validate(input)
		if firstErr != nil {
			continue
		}
		second, secondErr := subdomain.Validate(first)
		require.Nil(t, secondErr, "normalized %q must re-validate", first)
		assert.Equal(t, first, second)
	}
}

func TestSuggestions_AllValid(t *testing.T) {
	candidates := []string{"admin", "cafe-berlin", "www", "pizza", "x"}

	for _, candidate := range candidates {
		suggestions := subdomain.Suggestions(candidate)
		assert.LessOrEqual(t, len(suggestions), 3)
		for _, s := range suggestions {
			normalized, err := subdomain.Validate(s)
			require.Nil(t, err, "suggestion %q must be valid", s)
			assert.Equal(t, s, normalized)
		}
	}
}

func TestSuggestions_TemplateOrder(t *testing.T) {
	suggestions := subdomain.Suggestions("admin")
	require.Len(t, suggestions, 3)
	// first template is {candidate}-{year}, second mein-{candidate},
	// third {candidate}-gastro
	assert.Regexp(t, `^admin-\d{4}$`, suggestions[0])
	assert.Equal(t, "mein-admin", suggestions[1])
	assert.Equal(t, "admin-gastro", suggestions[2])
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"www", "admin", "api", "dashboard"} {
		assert.True(t, subdomain.IsReserved(name), name)
	}
	assert.False(t, subdomain.IsReserved("cafe-berlin"))
}

func TestSlugFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaces", in: "Cafe Berlin", want: "cafe-berlin"},
		{name: "umlauts", in: "Gasthaus Müller", want: "gasthaus-mueller"},
		{name: "eszett", in: "Weißes Rössl", want: "weisses-roessl"},
		{name: "punctuation collapses", in: "Luigi's  Pizza!", want: "luigi-s-pizza"},
		{name: "han transliterated", in: "北京楼", want: "beijinglou"},
		{name: "mixed", in: "Restaurant 香港 City", want: "restaurant-xianggang-city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subdomain.SlugFromName(tt.in))
		})
	}
}
