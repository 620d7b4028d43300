package visualisation

import (
	"hash/fnv"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Style is the chart identity of one subject: a fixed color and a dash
// pattern (empty means a solid line).
type Style struct {
	Color string `mapstructure:"color"`
	Dash  []int  `mapstructure:"dash"`
}

// Built-in styles for the proxies the benchmark harness ships with.
var defaultStyles = map[string]Style{
	"nginx":   {Color: "#60a5fa"},
	"caddy":   {Color: "#34d399", Dash: []int{10, 10}},
	"traefik": {Color: "#fbbf24", Dash: []int{10, 4, 2, 4}},
	"haproxy": {Color: "#f87171", Dash: []int{2, 4}},
}

var fallbackPalette = []string{"#a78bfa", "#f472b6", "#2dd4bf", "#fb923c", "#94a3b8", "#facc15"}

var fallbackDashes = [][]int{nil, {10, 10}, {10, 4, 2, 4}, {2, 4}}

// StyleMap resolves subjects to chart styles. Configured subjects win;
// unknown subjects get a deterministic generated style instead of failing,
// so a new proxy shows up in charts without a config change.
type StyleMap struct {
	styles map[string]Style
}

// DefaultStyles returns the built-in mapping.
func DefaultStyles() *StyleMap {
	m := &StyleMap{styles: make(map[string]Style, len(defaultStyles))}
	for name, s := range defaultStyles {
		m.styles[name] = s
	}
	return m
}

// LoadStyles reads a styles config file and overlays it on the defaults.
// The file maps subject names to color/dash under a "subjects" key:
//
//	subjects:
//	  envoy:
//	    color: "#a78bfa"
//	    dash: [4, 4]
func LoadStyles(path string) (*StyleMap, error) {
	m := DefaultStyles()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading styles config %s", path)
	}

	var overrides map[string]Style
	if err := v.UnmarshalKey("subjects", &overrides); err != nil {
		return nil, errors.Wrapf(err, "parsing styles config %s", path)
	}
	for name, s := range overrides {
		m.styles[name] = s
	}
	return m, nil
}

// For returns the style for a subject, generating one for subjects the
// mapping does not know.
func (m *StyleMap) For(subject string) Style {
	if s, ok := m.styles[subject]; ok {
		return s
	}
	h := fnv.New32a()
	h.Write([]byte(subject))
	n := int(h.Sum32() & 0x7fffffff)
	return Style{
		Color: fallbackPalette[n%len(fallbackPalette)],
		Dash:  fallbackDashes[(n/len(fallbackPalette))%len(fallbackDashes)],
	}
}
