package conversation

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"trims whitespace", "  hi  ", "hi"},
		{"script block", "a<script>alert(1)</script>b", "ab"},
		{"script with attributes", `a<script src="x.js">nested</script>b`, "ab"},
		{"script across lines", "a<script>\nalert(1)\n</script>b", "ab"},
		{"iframe block", `a<iframe src="evil"></iframe>b`, "ab"},
		{"javascript protocol", `<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
		{"event handler", `<img onerror=alert(1) src=x>`, `<img alert(1) src=x>`},
		{"event handler with space", `<img onerror = alert(1)>`, `<img  alert(1)>`},
		{"case insensitive", "a<SCRIPT>x</SCRIPT>b", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
