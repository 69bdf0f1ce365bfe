package initializer

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amirasaad/onramp/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	colorDebug = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}
	colorInfo  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	colorWarn  = lipgloss.AdaptiveColor{Light: "#E0A800", Dark: "#FFD54F"}
	colorError = lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"}
	colorKey   = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
)

// levelBadges are short fixed-width labels, so provider lines stay aligned in a tail.
var levelBadges = []struct {
	level log.Level
	label string
	color lipgloss.AdaptiveColor
}{
	{log.DebugLevel, "DBG", colorDebug},
	{log.InfoLevel, "INF", colorInfo},
	{log.WarnLevel, "WRN", colorWarn},
	{log.ErrorLevel, "ERR", colorError},
	{log.FatalLevel, "FTL", colorError},
}

// highlightedKeys are the attributes operators grep for when reconciling a user.
var highlightedKeys = map[string]lipgloss.AdaptiveColor{
	"provider":    colorKey,
	"user_id":     colorKey,
	"customer_id": colorKey,
	"event":       colorWarn,
	"error":       colorError,
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
	"text":   log.TextFormatter,
}

// SetupLogger builds the process logger and installs it as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}

	formatter, ok := formatters[strings.ToLower(cfg.Format)]
	if !ok {
		formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           parseLevel(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(onrampStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}

func onrampStyles() *log.Styles {
	styles := log.DefaultStyles()
	for _, b := range levelBadges {
		styles.Levels[b.level] = lipgloss.NewStyle().
			SetString(b.label).
			Bold(true).
			Padding(0, 1).
			Foreground(b.color)
	}
	for key, color := range highlightedKeys {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	styles.Prefix = lipgloss.NewStyle().Foreground(colorKey).Bold(true)
	return styles
}

// parseLevel accepts level names and falls back to info, so a typo in LOG_LEVEL
// never silences warnings about provider anomalies.
func parseLevel(name string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
