package logzero

import "testing"

func TestLevelOrdering(t *testing.T) {
	levels := []Level{DEBUG, INFO, WARNING, ERROR, CRITICAL}
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Errorf("%v is not below %v", levels[i-1], levels[i])
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARNING, "WARNING"},
		{ERROR, "ERROR"},
		{CRITICAL, "CRITICAL"},
		{Level(99), "LEVEL(99)"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelSyslogMapping(t *testing.T) {
	tests := []struct {
		level    Level
		wantName string
		wantNum  int
	}{
		{DEBUG, "DBG", 7},
		{INFO, "INF", 6},
		{WARNING, "WRN", 4},
		{ERROR, "ERR", 3},
		{CRITICAL, "CRIT", 2},
	}
	for _, tt := range tests {
		if got := tt.level.SyslogName(); got != tt.wantName {
			t.Errorf("%v.SyslogName() = %q, want %q", tt.level, got, tt.wantName)
		}
		if got := tt.level.SyslogNumber(); got != tt.wantNum {
			t.Errorf("%v.SyslogNumber() = %d, want %d", tt.level, got, tt.wantNum)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"DEBUG", DEBUG, false},
		{"info", INFO, false},
		{" Warning ", WARNING, false},
		{"ERROR", ERROR, false},
		{"critical", CRITICAL, false},
		{"TRACE", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
