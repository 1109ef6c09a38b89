package schedule

import "strconv"

// Usage is the help text for the schedule command-line flags.
const Usage = `Usage: stratrun start [options]

Options:
  -i, --interval <minutes>   spacing between runs (default 60)
      --no-start-immediate   do not fire the first run before the first tick
  -m, --max-runs <count>     cap on total runs (default unlimited)
  -c, --config <path>        path to a stratrun.yaml configuration file
  -h, --help                 print this help and exit
`

// Options is the result of parsing the schedule command line: a full Config
// with defaults merged in, plus the flags that belong to the command layer.
type Options struct {
	Config

	// ConfigPath is the value of --config/-c, if given.
	ConfigPath string

	// ShowHelp reports that --help/-h was seen. The parser never terminates
	// the process itself; the command layer prints Usage and exits.
	ShowHelp bool
}

// ParseArgs scans args over the default configuration.
func ParseArgs(args []string) Options {
	return ParseArgsFrom(Defaults(), args)
}

// ParseArgsFrom scans args left to right over base. Value-taking flags always
// consume the following token, even when it does not parse; a missing or
// malformed value silently keeps the base value. Unrecognized tokens are
// ignored. --help short-circuits the remaining scan.
func ParseArgsFrom(base Config, args []string) Options {
	opts := Options{Config: base}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--interval", "-i":
			if v, ok := takePositiveInt(args, &i); ok {
				opts.IntervalMinutes = v
			}
		case "--no-start-immediate":
			opts.StartImmediately = false
		case "--max-runs", "-m":
			if v, ok := takePositiveInt(args, &i); ok {
				opts.MaxRuns = v
			}
		case "--config", "-c":
			if i+1 < len(args) {
				i++
				opts.ConfigPath = args[i]
			}
		case "--help", "-h":
			opts.ShowHelp = true
			return opts
		}
	}
	return opts
}

// takePositiveInt consumes the token after *i and parses it as an integer
// strictly greater than zero. The token is consumed even when parsing fails.
func takePositiveInt(args []string, i *int) (int, bool) {
	if *i+1 >= len(args) {
		return 0, false
	}
	*i++
	v, err := strconv.Atoi(args[*i])
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
