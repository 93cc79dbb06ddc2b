package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultExtensions is used when -e is not given. Order is kept for the report header.
var DefaultExtensions = []string{
	".txt", ".json", ".cs", ".sql", ".config", ".rs",
	".py", ".js", ".ts", ".html", ".css", ".xml",
}

const defaultLogLevel = "error"

// Usage is the help text printed for -h and on argument errors.
const Usage = `kemet - File Content Search Utility

USAGE:
    kemet -s <search_text> [OPTIONS]

OPTIONS:
    -p, --path <PATH>           Directory to search (default: current directory)
    -s, --search <TEXT>         Text to search for (required)
    -e, --extensions <EXT>      Comma-separated file extensions (default: txt,json,cs,sql,config,rs,py,js,ts,html,css,xml)
    -o, --output <FILE>         Output file path (if not provided, results shown on console)
    -c, --case-sensitive        Enable case-sensitive search
    -l, --show-lines            Show matching line content
    -u, --unicode-fold          Use Unicode case folding for case-insensitive search
        --no-color              Disable colored console output
        --log-level <LEVEL>     Diagnostic log level: debug, info, warn, error (default: error)
        --log-file <FILE>       Write diagnostic log into file instead of stderr
    -h, --help                  Show this help message

EXAMPLES:
    kemet -s "function"
    kemet -p /home/user/code -s "TODO" -e "rs,py,js"
    kemet -s "Error" -c -l
    kemet -s "function" -o results.txt`

// ConfigError reports unusable command-line input. The message is meant to be shown as is.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, a ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, a...)}
}

// Config describes one scan. It is built by ParseConfig and not changed afterwards.
type Config struct {
	Root            string
	Needle          string
	Extensions      []string
	CaseSensitive   bool
	ShowLineContent bool
	UnicodeFold     bool
	OutputFile      string // empty means stdout
	NoColor         bool
	LogLevel        string
	LogFile         string

	extMap map[string]struct{}
}

// ParseConfig builds a Config from command-line tokens (program name excluded).
func ParseConfig(args []string) (Config, error) {
	if len(args) < 2 {
		return Config{}, &ConfigError{msg: Usage}
	}

	var (
		cfg        = Config{LogLevel: defaultLogLevel}
		path       string
		search     *string
		extensions []string
	)

	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch tok {
		case "-p", "--path", "-s", "--search", "-e", "--extensions", "-o", "--output", "--log-level", "--log-file":
			name := valueName(tok)
			if i+1 >= len(args) {
				return Config{}, configErrorf("Missing value for %s", name)
			}
			i++
			value := args[i]
			if strings.TrimSpace(value) == "" {
				return Config{}, configErrorf("Empty %s provided", name)
			}
			switch name {
			case "path":
				path = value
			case "search text":
				search = &value
			case "extensions":
				extensions = NormalizeExtensions(value)
			case "output file":
				cfg.OutputFile = value
			case "log level":
				cfg.LogLevel = value
			case "log file":
				cfg.LogFile = value
			}
		case "-c", "--case-sensitive":
			cfg.CaseSensitive = true
		case "-l", "--show-lines":
			cfg.ShowLineContent = true
		case "-u", "--unicode-fold":
			cfg.UnicodeFold = true
		case "--no-color":
			cfg.NoColor = true
		case "-h", "--help":
			return Config{}, &ConfigError{msg: Usage}
		default:
			return Config{}, configErrorf("Unknown argument: %s\n\n%s", tok, Usage)
		}
	}

	root, err := resolveRoot(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Root = root

	if search == nil {
		return Config{}, configErrorf("Search text is required\n\n%s", Usage)
	}
	cfg.Needle = *search

	if extensions == nil {
		extensions = append([]string(nil), DefaultExtensions...)
	}
	cfg.Extensions = extensions

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Prepare()
	return cfg, nil
}

func valueName(flag string) string {
	switch flag {
	case "-p", "--path":
		return "path"
	case "-s", "--search":
		return "search text"
	case "-e", "--extensions":
		return "extensions"
	case "-o", "--output":
		return "output file"
	case "--log-level":
		return "log level"
	default:
		return "log file"
	}
}

// NormalizeExtensions splits a comma separated list, trims every item and makes sure it starts with a dot.
func NormalizeExtensions(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	return out
}

func resolveRoot(path string) (string, error) {
	if strings.TrimSpace(path) == "" || path == "." || path == "*" {
		wd, err := os.Getwd()
		if err != nil {
			return "", configErrorf("Failed to get current directory: %v", err)
		}
		path = wd
	}
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", configErrorf("Path does not exist: %s", path)
		}
		return "", configErrorf("Path is not accessible: %s: %v", path, reason(err))
	}
	if !st.IsDir() {
		return "", configErrorf("Path is not a directory: %s", path)
	}
	return path, nil
}

// Validate checks invariants of a hand-built Config. ParseConfig calls it too.
func (c *Config) Validate() error {
	if c.Root == "" {
		return configErrorf("Path does not exist: %s", c.Root)
	}
	if strings.TrimSpace(c.Needle) == "" {
		return configErrorf("Empty search text provided")
	}
	if len(c.Extensions) == 0 {
		return configErrorf("Empty extensions provided")
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return configErrorf("Invalid log level: %s", c.LogLevel)
		}
	}
	return nil
}

// Prepare builds the extension lookup set.
func (c *Config) Prepare() {
	c.extMap = make(map[string]struct{}, len(c.Extensions))
	for _, e := range c.Extensions {
		c.extMap[strings.ToLower(e)] = struct{}{}
	}
}

// allowedExt reports whether a dotted extension is selected. Comparison ignores case.
func (c *Config) allowedExt(ext string) bool {
	if ext == "" {
		return false
	}
	if c.extMap == nil {
		for _, e := range c.Extensions {
			if strings.EqualFold(e, ext) {
				return true
			}
		}
		return false
	}
	_, ok := c.extMap[strings.ToLower(ext)]
	return ok
}

// ToStdout reports whether the report goes to standard output.
func (c *Config) ToStdout() bool { return c.OutputFile == "" }
