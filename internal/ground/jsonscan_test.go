package ground

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			raw:   `{"a":1}`,
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "surrounded by prose",
			raw:   "Here is the draft:\n```json\n{\"a\":1}\n```\nHope this helps!",
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "braces inside strings",
			raw:   `{"text":"a {curly} value"}`,
			want:  `{"text":"a {curly} value"}`,
			found: true,
		},
		{
			name:  "escaped quote inside string",
			raw:   `{"text":"she said \"}\" loudly"}`,
			want:  `{"text":"she said \"}\" loudly"}`,
			found: true,
		},
		{
			name:  "nested objects",
			raw:   `noise {"outer":{"inner":[1,2]}} trailing`,
			want:  `{"outer":{"inner":[1,2]}}`,
			found: true,
		},
		{
			name:  "first of two objects",
			raw:   `{"a":1} {"b":2}`,
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "no object",
			raw:   "just some text, no json here",
			found: false,
		},
		{
			name:  "unbalanced",
			raw:   `{"a": 1`,
			found: false,
		},
		{
			name:  "stray closing brace before object",
			raw:   `} {"a":1}`,
			want:  `{"a":1}`,
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractJSONObject(tt.raw)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
