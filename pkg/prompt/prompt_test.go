package prompt

import "testing"

func TestValidators(t *testing.T) {
	if err := Required("  "); err == nil {
		t.Fatalf("blank input should be rejected")
	}
	if err := Required("Alex"); err != nil {
		t.Fatalf("Required: %v", err)
	}

	date := Layout("2006-01-02")
	for _, ok := range []string{"1990-01-01", " 2000-12-31 "} {
		if err := date(ok); err != nil {
			t.Errorf("date(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "1990-13-01", "01/01/1990"} {
		if err := date(bad); err == nil {
			t.Errorf("date(%q) should fail", bad)
		}
	}

	clock := Layout("15:04")
	if err := clock("08:30"); err != nil {
		t.Errorf("clock: %v", err)
	}
	if err := clock("25:00"); err == nil {
		t.Errorf("clock(25:00) should fail")
	}
}
