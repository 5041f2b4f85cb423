// Package config defines the command-line grammar of frourio-express and
// the project files that can supply its defaults.
package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
)

// BaseName is the file name, without extension, of a project config file.
const BaseName = "frourio"

// Config is the full set of options accepted on the command line. Any flag
// can also be set from frourio.json, frourio.yaml or frourio.toml in the
// working directory; explicit flags win.
type Config struct {
	Dir        string           `help:"Project root containing the api directory." default:"." type:"path" validate:"required"`
	Project    string           `short:"p" help:"Path to tsconfig.json or a directory containing it." type:"path"`
	Watch      bool             `short:"w" help:"Regenerate whenever a file under api changes."`
	DumpRoutes bool             `name:"dump-routes" help:"Print the analyzed routes as JSON instead of writing $server.ts."`
	LogLevel   string           `name:"log-level" help:"Log level (${enum})." default:"info" enum:"debug,info,warn,error" validate:"oneof=debug info warn error"`
	Debounce   time.Duration    `help:"Quiet period before a watch-mode rebuild." default:"100ms" validate:"gte=10ms,lte=10s"`
	Quiet      bool             `short:"q" help:"Suppress warnings; errors are still reported."`
	Config     string           `help:"Explicit config file (json, yaml, yml or toml)." type:"path"`
	Version    kong.VersionFlag `short:"v" help:"Print the version and exit."`
}

// CandidatePaths lists the config files to try, per loader, in priority
// order. An explicit file is routed to the loader matching its extension
// and comes before the files found in cwd.
func CandidatePaths(cwd, explicit string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if explicit != "" {
		switch filepath.Ext(explicit) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, explicit)
		case ".toml":
			tomlPaths = append(tomlPaths, explicit)
		default:
			jsonPaths = append(jsonPaths, explicit)
		}
	}

	base := filepath.Join(cwd, BaseName)
	jsonPaths = append(jsonPaths, base+".json")
	yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
	tomlPaths = append(tomlPaths, base+".toml")
	return jsonPaths, yamlPaths, tomlPaths
}

// ExplicitConfig finds a --config value in raw arguments. Configuration
// loaders run before flags are parsed, so the flag has to be found by hand.
func ExplicitConfig(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ParseLevel maps a --log-level value to a slog level. Unknown values map
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
