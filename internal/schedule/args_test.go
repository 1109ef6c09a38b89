package schedule

import "testing"

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "empty",
			args: nil,
			want: Options{Config: Defaults()},
		},
		{
			name: "short flags",
			args: []string{"-i", "30", "-m", "5"},
			want: Options{Config: Config{IntervalMinutes: 30, StartImmediately: true, MaxRuns: 5}},
		},
		{
			name: "long flags",
			args: []string{"--interval", "15", "--max-runs", "3"},
			want: Options{Config: Config{IntervalMinutes: 15, StartImmediately: true, MaxRuns: 3}},
		},
		{
			name: "negative interval discarded",
			args: []string{"-i", "-5"},
			want: Options{Config: Defaults()},
		},
		{
			name: "zero max runs keeps unlimited sentinel",
			args: []string{"-m", "0"},
			want: Options{Config: Defaults()},
		},
		{
			name: "malformed value discarded but consumed",
			args: []string{"-i", "abc", "-m", "5"},
			want: Options{Config: Config{IntervalMinutes: 60, StartImmediately: true, MaxRuns: 5}},
		},
		{
			name: "missing value at end",
			args: []string{"--interval"},
			want: Options{Config: Defaults()},
		},
		{
			name: "no start immediate",
			args: []string{"--no-start-immediate"},
			want: Options{Config: Config{IntervalMinutes: 60, StartImmediately: false, MaxRuns: Unlimited}},
		},
		{
			name: "unrecognized flags ignored",
			args: []string{"--verbose", "-x", "-i", "10"},
			want: Options{Config: Config{IntervalMinutes: 10, StartImmediately: true, MaxRuns: Unlimited}},
		},
		{
			name: "value consumed even when next token looks like a flag",
			args: []string{"-i", "--max-runs", "-m", "4"},
			want: Options{Config: Config{IntervalMinutes: 60, StartImmediately: true, MaxRuns: 4}},
		},
		{
			name: "help short-circuits remaining flags",
			args: []string{"-h", "-i", "30"},
			want: Options{Config: Defaults(), ShowHelp: true},
		},
		{
			name: "config path",
			args: []string{"-c", "/etc/stratrun.yaml"},
			want: Options{Config: Defaults(), ConfigPath: "/etc/stratrun.yaml"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseArgs(tt.args)
			if got.IntervalMinutes != tt.want.IntervalMinutes {
				t.Errorf("interval = %d, want %d", got.IntervalMinutes, tt.want.IntervalMinutes)
			}
			if got.StartImmediately != tt.want.StartImmediately {
				t.Errorf("start immediately = %v, want %v", got.StartImmediately, tt.want.StartImmediately)
			}
			if got.MaxRuns != tt.want.MaxRuns {
				t.Errorf("max runs = %d, want %d", got.MaxRuns, tt.want.MaxRuns)
			}
			if got.ShowHelp != tt.want.ShowHelp {
				t.Errorf("show help = %v, want %v", got.ShowHelp, tt.want.ShowHelp)
			}
			if got.ConfigPath != tt.want.ConfigPath {
				t.Errorf("config path = %q, want %q", got.ConfigPath, tt.want.ConfigPath)
			}
		})
	}
}

func TestParseArgsFrom_BaseOverride(t *testing.T) {
	t.Parallel()

	base := Defaults()
	base.IntervalMinutes = 10
	base.MaxRuns = 7

	// Flags win over the base; untouched fields keep the base value.
	got := ParseArgsFrom(base, []string{"-i", "20"})
	if got.IntervalMinutes != 20 {
		t.Errorf("interval = %d, want 20", got.IntervalMinutes)
	}
	if got.MaxRuns != 7 {
		t.Errorf("max runs = %d, want base value 7", got.MaxRuns)
	}

	// A malformed flag value keeps the base value, not the default.
	got = ParseArgsFrom(base, []string{"-i", "oops"})
	if got.IntervalMinutes != 10 {
		t.Errorf("interval = %d, want base value 10", got.IntervalMinutes)
	}
}
