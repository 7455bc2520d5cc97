package auth

import "testing"

func TestResolveOrigin(t *testing.T) {
	tests := []struct {
		name         string
		allowed      string
		origin       string
		wantValue    string
		wantRejected bool
	}{
		{"wildcard", "*", "https://a.com", "*", false},
		{"empty allow-list acts as wildcard", "", "https://a.com", "*", false},
		{"exact match", "https://a.com", "https://a.com", "https://a.com", false},
		{"list match", "https://a.com,https://b.com", "https://b.com", "https://b.com", false},
		{"list with spaces", "https://a.com, https://b.com", "https://b.com", "https://b.com", false},
		{"no match", "https://a.com,https://b.com", "https://c.com", "", true},
		{"subdomain is not a match", "https://a.com", "https://evil.a.com", "", true},
		{"no origin header", "https://a.com", "", "", false},
		{"no origin header with wildcard", "*", "", "*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, rejected := ResolveOrigin(tt.allowed, tt.origin)
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
			if rejected != tt.wantRejected {
				t.Errorf("rejected = %v, want %v", rejected, tt.wantRejected)
			}
		})
	}
}
