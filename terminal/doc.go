// Package terminal turns symbolic display features and cursor requests into ANSI escape sequences.
//
// Features:
//   - Named SGR feature table (styles, 8/16 colors, backgrounds) with aliases
//   - Parametrized colors: 256-palette index, #rrggbb, tcell color names
//   - Feature composition into a single SGR sequence, caller order preserved
//   - Absolute and relative cursor movement sequences
//   - SGR decoding into tcell styles for screen backends
//   - Feature table extension from TOML files
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
