package mentor

import "testing"

func TestParseVar(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{
			name:      "simple pair",
			input:     "name:Taro",
			wantKey:   "name",
			wantValue: "Taro",
		},
		{
			name:      "value with colon",
			input:     "time:10:30",
			wantKey:   "time",
			wantValue: "10:30",
		},
		{
			name:      "with whitespace",
			input:     " topic : career ",
			wantKey:   "topic",
			wantValue: "career",
		},
		{
			name:      "quoted with escapes",
			input:     `"quote:say \"hi\"\: now"`,
			wantKey:   "quote",
			wantValue: `say "hi": now`,
		},
		{
			name:    "missing colon",
			input:   "name-Taro",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   ":Taro",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParseVar(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseVar() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if key != tt.wantKey {
				t.Errorf("ParseVar() key = %v, want %v", key, tt.wantKey)
			}
			if value != tt.wantValue {
				t.Errorf("ParseVar() value = %v, want %v", value, tt.wantValue)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "user", want: RoleUser},
		{input: " Assistant ", want: RoleAssistant},
		{input: "system", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRole() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageLabel(t *testing.T) {
	if got := (Message{Role: RoleUser}).Label(); got != "You" {
		t.Errorf("Label() = %q, want %q", got, "You")
	}
	if got := (Message{Role: RoleAssistant}).Label(); got != "Mentor" {
		t.Errorf("Label() = %q, want %q", got, "Mentor")
	}
}
