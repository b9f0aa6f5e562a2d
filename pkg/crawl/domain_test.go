package crawl

import "testing"

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/", "example.com"},
		{"https://www.example.com/about", "example.com"},
		{"https://blog.example.co.uk/post/1", "example.co.uk"},
		{"http://EXAMPLE.org:8080/x", "example.org"},
		{"http://127.0.0.1:8080/", "127.0.0.1"},
		{"http://localhost/", "localhost"},
		{"", ""},
		{"not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := RegistrableDomain(tt.url); got != tt.want {
				t.Errorf("RegistrableDomain(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFillDomainsKeepsExisting(t *testing.T) {
	nodes := []Node{
		{ID: "a", URL: "https://docs.example.com/", Domain: "custom"},
		{ID: "b", URL: "https://docs.example.com/"},
	}
	FillDomains(nodes)
	if nodes[0].Domain != "custom" {
		t.Errorf("existing domain overwritten: %q", nodes[0].Domain)
	}
	if nodes[1].Domain != "example.com" {
		t.Errorf("derived domain = %q, want example.com", nodes[1].Domain)
	}
}
