package security

import "testing"

func TestFieldSanitizer_StripsMarkup(t *testing.T) {
	s := NewFieldSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Launch", "Launch"},
		{"empty", "", ""},
		{"script tag", `<script>alert("x")</script>Launch`, "Launch"},
		{"event handler", `<img src=x onerror=alert(1)>plan`, "plan"},
		{"nested tags", "<b><i>重要</i></b>タスク", "重要タスク"},
		{"anchor", `<a href="https://example.com">link</a>`, "link"},
		{"surrounding whitespace", "  Launch  ", "Launch"},
		{"spanish status text", "En Progreso", "En Progreso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// 同一入力に対して常に同一出力を返すこと（冪等性）
func TestFieldSanitizer_Idempotent(t *testing.T) {
	s := NewFieldSanitizer()

	input := `<script>x</script>リリース準備`
	first := s.Sanitize(input)
	second := s.Sanitize(first)

	if first != second {
		t.Errorf("Sanitize is not idempotent: %q -> %q", first, second)
	}
}
