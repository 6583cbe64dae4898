package terminal

// Escape sequence fragments
const (
	CSI = "\x1b["

	Reset         = "\x1b[0m"
	ClearScreen   = "\x1b[2J"
	ClearLine     = "\x1b[2K"
	Home          = "\x1b[H"
	HideCursor    = "\x1b[?25l"
	ShowCursor    = "\x1b[?25h"
	SaveCursor    = "\x1b7"
	RestoreCursor = "\x1b8"

	// DECAWM: Auto-Wrap Mode
	AutoWrapOn  = "\x1b[?7h"
	AutoWrapOff = "\x1b[?7l"

	csiRIS = "\x1bc" // Reset to Initial State (emergency)
)

// AppendInt appends a non-negative integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func AppendInt(b []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(b, byte(n)+'0')
	}
	if n < 100 {
		return append(b, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(b, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(b, buf[i:]...)
}

// AppendMoveTo appends an absolute cursor position sequence (0-indexed input)
func AppendMoveTo(b []byte, x, y int) []byte {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	b = append(b, CSI...)
	b = AppendInt(b, y+1)
	b = append(b, ';')
	b = AppendInt(b, x+1)
	return append(b, 'H')
}

// appendCursorStep appends a CSI n <final> sequence, omitting n when it is 1
func appendCursorStep(b []byte, n int, final byte) []byte {
	if n <= 0 {
		return b
	}
	b = append(b, CSI...)
	if n != 1 {
		b = AppendInt(b, n)
	}
	return append(b, final)
}

// MoveTo returns the sequence placing the cursor at column x, row y (0-indexed).
// Terminal rows and columns are 1-indexed, so the emitted pair is (y+1, x+1).
func MoveTo(x, y int) string {
	var buf [16]byte
	return string(AppendMoveTo(buf[:0], x, y))
}

// MoveBy returns the sequence moving the cursor dx columns and dy rows from its
// current position. Vertical movement is emitted first. Zero offsets emit nothing.
func MoveBy(dx, dy int) string {
	var buf [24]byte
	b := buf[:0]
	if dy < 0 {
		b = appendCursorStep(b, -dy, 'A')
	} else {
		b = appendCursorStep(b, dy, 'B')
	}
	if dx < 0 {
		b = appendCursorStep(b, -dx, 'D')
	} else {
		b = appendCursorStep(b, dx, 'C')
	}
	return string(b)
}

// Up moves the cursor n rows up
func Up(n int) string { return string(appendCursorStep(nil, n, 'A')) }

// Down moves the cursor n rows down
func Down(n int) string { return string(appendCursorStep(nil, n, 'B')) }

// Forward moves the cursor n columns right
func Forward(n int) string { return string(appendCursorStep(nil, n, 'C')) }

// Back moves the cursor n columns left
func Back(n int) string { return string(appendCursorStep(nil, n, 'D')) }

// Column moves the cursor to column x (0-indexed) on the current row
func Column(x int) string {
	if x < 0 {
		x = 0
	}
	b := append([]byte(CSI), AppendInt(nil, x+1)...)
	return string(append(b, 'G'))
}

// cursorFinals maps parametrized cursor features to their CSI final byte
var cursorFinals = map[string]byte{
	"up":        'A',
	"down":      'B',
	"right":     'C',
	"left":      'D',
	"next-line": 'E',
	"prev-line": 'F',
	"column":    'G',
}

// Cursor returns the parametrized cursor feature name applied to n.
// For "column", n is a 0-indexed column.
func Cursor(name string, n int) (string, error) {
	final, ok := cursorFinals[name]
	if !ok {
		return "", &UnsupportedFeatureError{Name: name}
	}
	if final == 'G' {
		return Column(n), nil
	}
	return string(appendCursorStep(nil, n, final)), nil
}
