package match

import "testing"

func TestNormalizeTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"INotify", "notify"},
		{"Item", "item"},
		{"I", "i"},
		{"NotifyMixin", "notify"},
		{"Mixin", "mixin"},
		{"mixin-composer/examples/notify.INotify", "notify"},
		{"notify.ITargetBase", "targetbase"},
		{"Audit_Log", "auditlog"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTypeName(tt.in); got != tt.want {
			t.Errorf("NormalizeTypeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
