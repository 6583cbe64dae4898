package terminal

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	r := NewRegistry(ColorMode256)

	tests := []struct {
		name string
		want string
	}{
		{"red", "\x1b[31m"},
		{"bold", "\x1b[1m"},
		{"bright-cyan", "\x1b[96m"},
		{"bg-blue", "\x1b[44m"},
		{"bg-bright-white", "\x1b[107m"},
		{"reset", "\x1b[0m"},
		{"crossed-out", "\x1b[9m"},
		{"fg=208", "\x1b[38;5;208m"},
		{"bg=0", "\x1b[48;5;0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	r := NewRegistry(ColorMode256)

	for _, name := range []string{"", "Red", "RED", "bold ", "purple", "fg=256", "fg=-1", "fg=notacolor", "ul=3", "red,bold"} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Lookup(name)
			var ufe *UnsupportedFeatureError
			if !errors.As(err, &ufe) {
				t.Fatalf("Lookup(%q) error = %v, want UnsupportedFeatureError", name, err)
			}
			if ufe.Name != name {
				t.Errorf("error name = %q, want %q", ufe.Name, name)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	r := NewRegistry(ColorMode256)

	tests := []struct {
		name     string
		features []string
		want     string
	}{
		{"Single", []string{"red"}, "\x1b[31m"},
		{"Combined string", []string{"red,bold"}, "\x1b[31;1m"},
		{"Semicolon separated", []string{"bold;underlined"}, "\x1b[1;4m"},
		{"Order preserved", []string{"bold,red"}, "\x1b[1;31m"},
		{"Multiple args", []string{"bg-black", "green"}, "\x1b[40;32m"},
		{"Whitespace trimmed", []string{" red , bold "}, "\x1b[31;1m"},
		{"Parametrized", []string{"fg=196,bg=17"}, "\x1b[38;5;196;48;5;17m"},
		{"No features", nil, ""},
		{"Empty string", []string{""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Compose(tt.features...)
			if err != nil {
				t.Fatalf("Compose(%q) error: %v", tt.features, err)
			}
			if got != tt.want {
				t.Errorf("Compose(%q) = %q, want %q", tt.features, got, tt.want)
			}
		})
	}
}

func TestCompose_Deterministic(t *testing.T) {
	r := NewRegistry(ColorModeTrueColor)
	first, err := r.Compose("fg=#ff8800", "bold,bg-blue", "underlined")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		got, _ := r.Compose("fg=#ff8800", "bold,bg-blue", "underlined")
		if got != first {
			t.Fatalf("iteration %d: %q != %q", i, got, first)
		}
	}
}

func TestCompose_Errors(t *testing.T) {
	r := NewRegistry(ColorMode256)

	tests := []struct {
		name     string
		features []string
		wantName string
	}{
		{"Unknown name", []string{"red,sparkly"}, "sparkly"},
		{"Wrong case", []string{"Bold"}, "Bold"},
		{"Empty between separators", []string{"red,,bold"}, ""},
		{"Trailing separator", []string{"red,"}, ""},
		{"Blank argument", []string{"  "}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Compose(tt.features...)
			var ufe *UnsupportedFeatureError
			if !errors.As(err, &ufe) {
				t.Fatalf("Compose(%q) = %q, %v; want UnsupportedFeatureError", tt.features, got, err)
			}
			if ufe.Name != tt.wantName {
				t.Errorf("error name = %q, want %q", ufe.Name, tt.wantName)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	r := NewRegistry(ColorMode256)

	got, err := r.Format("hi", "red,bold")
	if err != nil {
		t.Fatal(err)
	}
	if want := "\x1b[31;1mhi\x1b[0m"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}

	got, err = r.FormatOpen("hi", "red")
	if err != nil {
		t.Fatal(err)
	}
	if want := "\x1b[31mhi"; got != want {
		t.Errorf("FormatOpen = %q, want %q", got, want)
	}

	got, err = r.Format("plain", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "plain" {
		t.Errorf("Format without feature = %q, want %q", got, "plain")
	}

	if _, err := r.Format("x", "nope"); err == nil {
		t.Error("Format with unknown feature should fail")
	}
}

func TestParametrizedRGB(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		feature string
		want    string
	}{
		{"Hex truecolor", ColorModeTrueColor, "fg=#ff8800", "\x1b[38;2;255;136;0m"},
		{"Short hex truecolor", ColorModeTrueColor, "bg=#fff", "\x1b[48;2;255;255;255m"},
		{"Hex 256", ColorMode256, "fg=#ff0000", "\x1b[38;5;196m"},
		{"Gray 256", ColorMode256, "bg=#808080", "\x1b[48;5;244m"},
		{"Named truecolor", ColorModeTrueColor, "fg=red", "\x1b[38;2;255;0;0m"},
		{"Index wins over mode", ColorModeTrueColor, "fg=42", "\x1b[38;5;42m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(tt.mode)
			got, err := r.Lookup(tt.feature)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.feature, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.feature, got, tt.want)
			}
		})
	}
}

func TestDefineAndAlias(t *testing.T) {
	r := NewRegistry(ColorMode256)

	if err := r.Define("orange", "38;5;208"); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := r.Alias("warning", "orange,bold"); err != nil {
		t.Fatalf("Alias: %v", err)
	}

	got, err := r.Lookup("warning")
	if err != nil {
		t.Fatal(err)
	}
	if want := "\x1b[38;5;208;1m"; got != want {
		t.Errorf("Lookup(warning) = %q, want %q", got, want)
	}

	invalid := []struct {
		name, params string
	}{
		{"", "1"},
		{"a,b", "1"},
		{"x=y", "1"},
		{"empty", ""},
		{"letters", "1;x"},
	}
	for _, tt := range invalid {
		if err := r.Define(tt.name, tt.params); err == nil {
			t.Errorf("Define(%q, %q) should fail", tt.name, tt.params)
		}
	}

	if err := r.Alias("broken", "red", "missing"); err == nil {
		t.Error("Alias to missing feature should fail")
	}
	if _, err := r.Lookup("broken"); err == nil {
		t.Error("failed alias must not be registered")
	}
}

func TestNames(t *testing.T) {
	r := NewRegistry(ColorMode256)
	names := r.Names()
	if len(names) == 0 {
		t.Fatal("expected default names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
	for _, name := range names {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("listed name %q does not resolve: %v", name, err)
		}
	}
}
