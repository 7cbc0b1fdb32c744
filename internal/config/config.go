package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/window-switcher/internal/app"
	"github.com/atomicstack/window-switcher/internal/query"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix     = "WINDOW_SWITCHER_"
	envBackend    = envPrefix + "BACKEND"
	envSocketPath = envPrefix + "SOCKET"
	envFilter     = envPrefix + "FILTER"
	envMatch      = envPrefix + "MATCH"
	envFieldLimit = envPrefix + "FIELD_LIMIT"
	envRefresh    = envPrefix + "REFRESH"
	envWidth      = envPrefix + "WIDTH"
	envHeight     = envPrefix + "HEIGHT"
	envShowFooter = envPrefix + "FOOTER"
	envPreview    = envPrefix + "PREVIEW"
	envTrace      = envPrefix + "TRACE"
	envLogFile    = envPrefix + "LOG_FILE"
	envConfigFile = envPrefix + "CONFIG"

	defaultRefresh = 2 * time.Second
)

var backendNames = []string{"auto", "x11", "tmux", "windows"}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := scanFlag(args, "config")
	if configPath == "" {
		configPath = env[envConfigFile]
	}
	defaults := builtinDefaults()
	if configPath != "" {
		if err := defaults.loadFile(configPath); err != nil {
			return Config{}, err
		}
	}

	fs := flag.NewFlagSet("window-switcher", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	_ = fs.String("config", configPath, "path to a YAML file with default option values")
	backend := fs.String("backend", envOrDefault(env, envBackend, defaults.Backend), "window system backend: auto, x11, tmux or windows")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, defaults.Socket), "path to the tmux socket (tmux backend)")
	filter := fs.String("filter", envOrDefault(env, envFilter, defaults.Filter), "tmux list-windows filter expression (tmux backend)")
	match := fs.String("match", envOrDefault(env, envMatch, defaults.Match), "token matching: substring or fuzzy")
	fieldLimit := fs.Int("field-limit", envOrInt(env, envFieldLimit, defaults.FieldLimit), "truncate titles and process names to this many characters (0 disables)")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, defaults.Refresh), "background snapshot interval (0 disables)")
	width := fs.Int("width", envOrInt(env, envWidth, defaults.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, defaults.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, defaults.Footer), "enable footer hint row")
	preview := fs.Bool("preview", envOrBool(env, envPreview, defaults.Preview), "show a preview of the selected window")
	daemon := fs.Bool("daemon", false, "stay resident and open the switcher on SIGUSR1")
	list := fs.Bool("list", false, "print the window snapshot as YAML and exit")
	initialQuery := fs.String("query", "", "initial query text")
	trace := fs.Bool("trace", envOrBool(env, envTrace, defaults.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, defaults.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Backend:     strings.ToLower(strings.TrimSpace(*backend)),
			SocketPath:  *socket,
			Filter:      *filter,
			Match:       strings.ToLower(strings.TrimSpace(*match)),
			FieldLimit:  *fieldLimit,
			Refresh:     *refresh,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			ShowPreview: *preview,
			Daemon:      *daemon,
			List:        *list,
			Query:       *initialQuery,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: configPath,
		Flags: map[string]string{
			"backend":    *backend,
			"socket":     *socket,
			"filter":     *filter,
			"match":      *match,
			"fieldLimit": strconv.Itoa(*fieldLimit),
			"refresh":    refresh.String(),
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"preview":    strconv.FormatBool(*preview),
			"daemon":     strconv.FormatBool(*daemon),
			"list":       strconv.FormatBool(*list),
			"query":      *initialQuery,
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
			"config":     configPath,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanFlag finds -name value, --name value or -name=value ahead of the
// real parse so the config file can seed the flag defaults.
func scanFlag(args []string, name string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg {
			continue
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(trimmed, name+"=") {
			return strings.TrimPrefix(trimmed, name+"=")
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks option values that the flag parser cannot.
func Validate(cfg Config) error {
	var errs []error
	if !knownBackend(cfg.App.Backend) {
		errs = append(errs, fmt.Errorf("backend must be one of %s (got %q)", strings.Join(backendNames, ", "), cfg.App.Backend))
	}
	if _, err := query.ParseMode(cfg.App.Match); err != nil {
		errs = append(errs, err)
	}
	if cfg.App.FieldLimit < 0 {
		errs = append(errs, fmt.Errorf("field-limit must be >= 0 (got %d)", cfg.App.FieldLimit))
	}
	if cfg.App.Refresh < 0 {
		errs = append(errs, fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh))
	}
	if cfg.App.Daemon && cfg.App.List {
		errs = append(errs, errors.New("daemon and list cannot be combined"))
	}
	return errors.Join(errs...)
}

func knownBackend(name string) bool {
	for _, known := range backendNames {
		if name == known {
			return true
		}
	}
	return false
}
