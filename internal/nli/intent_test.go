package nli

import "testing"

func TestIntent_Param(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		key    string
		want   string
		wantOK bool
	}{
		{
			name:   "present",
			params: map[string]string{"city": "Taipei"},
			key:    "city",
			want:   "Taipei",
			wantOK: true,
		},
		{
			name:   "absent",
			params: map[string]string{"city": "Taipei"},
			key:    "date",
		},
		{
			name: "nil parameters",
			key:  "city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := Intent{Parameters: tt.params}
			got, ok := i.Param(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Param(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
