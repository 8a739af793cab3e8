package spanz

import "testing"

func TestLevelOrdering(t *testing.T) {
	ordered := []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("expected %v < %v", ordered[i-1], ordered[i])
		}
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelTrace: "TRACE",
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(99):  "LEVEL(99)",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"Warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", LevelTrace, true},
		{"", LevelTrace, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.wantErr != (err != nil) {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFieldsClone(t *testing.T) {
	original := Fields{"a": 1, "b": "two"}
	clone := original.Clone()

	clone["a"] = 99
	clone["c"] = true

	if original["a"] != 1 {
		t.Error("clone aliased the original map")
	}
	if _, ok := original["c"]; ok {
		t.Error("clone write leaked into the original")
	}

	if Fields(nil).Clone() != nil {
		t.Error("expected nil clone for nil fields")
	}
}

func TestSpanNoop(t *testing.T) {
	if !(Span{}).Noop() {
		t.Error("zero span should be a noop placeholder")
	}
	if (Span{ID: "abc"}).Noop() {
		t.Error("span with an ID is not a placeholder")
	}
}
