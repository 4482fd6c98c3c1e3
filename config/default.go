// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Lectio + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.AuthUsername, "", "Login or email used to sign in.\nThe password is kept in the system keyring, see \"lectio login\"")
	register(key.AuthLoginURL, constant.DefaultLoginURL, "Identity provider login page")
	register(key.AuthNextPage, constant.DefaultNextPage, "Redirect target submitted with the login form")
	register(key.DownloadPath, ".", "Root directory for downloaded courses")
	register(key.DownloadLecturePrefix, constant.LecturePrefix, "Prefix of numbered lecture files.\nAlso used to shorten names that exceed the path length limit")
	register(key.DownloadChunkSize, constant.ChunkSize, "Size in bytes of a single streamed chunk")
	register(key.DownloadMaxPathLength, constant.MaxPathLength, "Maximum absolute path length before a file name is shortened")
	register(key.DownloadTempSuffix, constant.TempSuffix, "Suffix of files that are still being transferred")
	register(key.DiscoveryVideoPattern, constant.VideoPattern, "Regular expression matching playable video URLs on a lesson page")
	register(key.DiscoveryAttachmentExtensions, []string{".pdf"}, "File extensions of lesson attachments to download")
	register(key.NetworkRetryAttempts, 5, "Attempts per request on 502, 503 and 504 responses")
	register(key.NetworkRetryBaseDelayMs, 500, "Initial retry backoff in milliseconds, doubled on every attempt")
	register(key.NetworkRetryMaxDelayMs, 15000, "Upper bound of the retry backoff in milliseconds")
	register(key.NetworkHeaderTimeoutSeconds, 60, "Seconds to wait for response headers")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent with every request")
	register(key.NetworkSpoofTLS, false, "Mimic the Chrome TLS fingerprint on HTTPS connections")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
