package terminal

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// UnsupportedFeatureError reports a feature name absent from the registry
type UnsupportedFeatureError struct {
	Name string
}

func (e *UnsupportedFeatureError) Error() string {
	return "feature " + strconv.Quote(e.Name) + " is not supported"
}

// colorNames is the order of the 8 base ANSI colors
var colorNames = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Registry maps feature names to SGR parameter lists.
// Lookups are exact-match and case-sensitive.
type Registry struct {
	mu     sync.RWMutex
	params map[string]string
	mode   ColorMode
}

// NewRegistry creates a registry holding the default feature table.
// mode selects how RGB parametrized colors are encoded.
func NewRegistry(mode ColorMode) *Registry {
	r := &Registry{
		params: make(map[string]string, 64),
		mode:   mode,
	}

	r.params["reset"] = "0"

	// Styles
	r.params["bold"] = "1"
	r.params["faint"] = "2"
	r.params["italics"] = "3"
	r.params["underlined"] = "4"
	r.params["blink"] = "5"
	r.params["inverse"] = "7"
	r.params["invisible"] = "8"
	r.params["crossed-out"] = "9"
	r.params["double-underlined"] = "21"

	// Colors: 30-37 / 90-97 foreground, 40-47 / 100-107 background
	for i, name := range colorNames {
		r.params[name] = strconv.Itoa(30 + i)
		r.params["bright-"+name] = strconv.Itoa(90 + i)
		r.params["bg-"+name] = strconv.Itoa(40 + i)
		r.params["bg-bright-"+name] = strconv.Itoa(100 + i)
	}
	r.params["default"] = "39"
	r.params["bg-default"] = "49"

	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, built on first use with the detected color mode
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(DetectColorMode())
	})
	return defaultRegistry
}

// ColorMode returns the mode used for RGB parametrized colors
func (r *Registry) ColorMode() ColorMode {
	return r.mode
}

// Names returns all plain feature names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.params))
	for name := range r.params {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Define adds or replaces a feature with a raw SGR parameter list such as "38;5;208"
func (r *Registry) Define(name, params string) error {
	if name == "" || strings.ContainsAny(name, ",;=") || !validParams(params) {
		return &UnsupportedFeatureError{Name: name}
	}
	r.mu.Lock()
	r.params[name] = params
	r.mu.Unlock()
	return nil
}

// Alias defines name as the composition of existing features, resolved now
func (r *Registry) Alias(name string, features ...string) error {
	if name == "" || strings.ContainsAny(name, ",;=") || len(features) == 0 {
		return &UnsupportedFeatureError{Name: name}
	}
	params, err := r.ComposeParams(features...)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.params[name] = params
	r.mu.Unlock()
	return nil
}

// Params returns the SGR parameter list for a single feature name
func (r *Registry) Params(name string) (string, error) {
	if k, v, ok := strings.Cut(name, "="); ok {
		return r.colorParams(name, k, v)
	}
	r.mu.RLock()
	p, ok := r.params[name]
	r.mu.RUnlock()
	if !ok {
		return "", &UnsupportedFeatureError{Name: name}
	}
	return p, nil
}

// Lookup returns the escape fragment for a single feature name
func (r *Registry) Lookup(name string) (string, error) {
	p, err := r.Params(name)
	if err != nil {
		return "", err
	}
	return CSI + p + "m", nil
}

// ComposeParams resolves every requested feature and joins their parameters with ';'.
// Each argument may hold several names separated by ',' or ';'. Empty arguments are skipped;
// an empty name between separators is an error.
func (r *Registry) ComposeParams(features ...string) (string, error) {
	var sb strings.Builder
	for _, feature := range features {
		if feature == "" {
			continue
		}
		if hasEmptyName(feature) {
			return "", &UnsupportedFeatureError{Name: ""}
		}
		for _, name := range strings.FieldsFunc(feature, isSeparator) {
			name = strings.TrimSpace(name)
			p, err := r.Params(name)
			if err != nil {
				return "", err
			}
			if sb.Len() > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(p)
		}
	}
	return sb.String(), nil
}

// Compose returns one SGR sequence applying the requested features in caller order,
// or "" when no feature is requested
func (r *Registry) Compose(features ...string) (string, error) {
	p, err := r.ComposeParams(features...)
	if err != nil || p == "" {
		return "", err
	}
	return CSI + p + "m", nil
}

// Format decorates text with feature and appends a reset
func (r *Registry) Format(text, feature string) (string, error) {
	seq, err := r.Compose(feature)
	if err != nil {
		return "", err
	}
	if seq == "" {
		return text, nil
	}
	return seq + text + Reset, nil
}

// FormatOpen decorates text with feature without resetting afterwards
func (r *Registry) FormatOpen(text, feature string) (string, error) {
	seq, err := r.Compose(feature)
	if err != nil {
		return "", err
	}
	return seq + text, nil
}

// colorParams encodes fg=/bg= parametrized colors
func (r *Registry) colorParams(name, key, value string) (string, error) {
	var base string
	switch key {
	case "fg":
		base = "38"
	case "bg":
		base = "48"
	default:
		return "", &UnsupportedFeatureError{Name: name}
	}

	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > 255 {
			return "", &UnsupportedFeatureError{Name: name}
		}
		return base + ";5;" + strconv.Itoa(n), nil
	}

	c, err := ParseColor(value)
	if err != nil {
		return "", &UnsupportedFeatureError{Name: name}
	}

	b := make([]byte, 0, 16)
	b = append(b, base...)
	if r.mode == ColorModeTrueColor {
		b = append(b, ";2;"...)
		b = AppendInt(b, int(c.R))
		b = append(b, ';')
		b = AppendInt(b, int(c.G))
		b = append(b, ';')
		b = AppendInt(b, int(c.B))
	} else {
		b = append(b, ";5;"...)
		b = AppendInt(b, int(RGBTo256(c)))
	}
	return string(b), nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// hasEmptyName reports an empty or blank name in a separated feature list
func hasEmptyName(feature string) bool {
	start := 0
	for i := 0; i <= len(feature); i++ {
		if i == len(feature) || feature[i] == ',' || feature[i] == ';' {
			if strings.TrimSpace(feature[start:i]) == "" {
				return true
			}
			start = i + 1
		}
	}
	return false
}

// validParams accepts a non-empty ';'-separated list of integers
func validParams(params string) bool {
	if params == "" {
		return false
	}
	for _, p := range strings.Split(params, ";") {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}
