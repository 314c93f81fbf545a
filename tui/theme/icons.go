package theme

import (
	"os"
)

// Unicode icons (default)
const (
	unicodeIconRecording = "●"
	unicodeIconStopped   = "■"
	unicodeIconSuccess   = "✓"
	unicodeIconError     = "✗"
	unicodeIconWarning   = "⚠"
	unicodeIconInfo      = "ℹ"
	unicodeIconJoystick  = "⊕"
	unicodeIconTrace     = "∿"
	unicodeIconFile      = "▤"
	unicodeIconArrow     = "→"
	unicodeIconBullet    = "•"
	unicodeIconMarker    = "◉"
)

// ASCII fallback icons, selected with JOYSTICK_ICONS=ascii or tui.icons.
const (
	asciiIconRecording = "[REC]"
	asciiIconStopped   = "[STOP]"
	asciiIconSuccess   = "[OK]"
	asciiIconError     = "[ERR]"
	asciiIconWarning   = "[!]"
	asciiIconInfo      = "[i]"
	asciiIconJoystick  = "+"
	asciiIconTrace     = "~"
	asciiIconFile      = "#"
	asciiIconArrow     = "->"
	asciiIconBullet    = "*"
	asciiIconMarker    = "@"
)

// Public icons, set at init from the selected icon set.
var (
	IconRecording string
	IconStopped   string
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconJoystick  string
	IconTrace     string
	IconFile      string
	IconArrow     string
	IconBullet    string
	IconMarker    string
)

func init() {
	useASCII := os.Getenv("JOYSTICK_ICONS") == "ascii"
	if !useASCII && os.Getenv("JOYSTICK_ICONS") == "" {
		useASCII = loadTUIConfig().Icons == "ascii"
	}
	UseASCIIIcons(useASCII)
}

// UseASCIIIcons switches between the ASCII and unicode icon sets.
func UseASCIIIcons(ascii bool) {
	if ascii {
		IconRecording = asciiIconRecording
		IconStopped = asciiIconStopped
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconJoystick = asciiIconJoystick
		IconTrace = asciiIconTrace
		IconFile = asciiIconFile
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconMarker = asciiIconMarker
		return
	}
	IconRecording = unicodeIconRecording
	IconStopped = unicodeIconStopped
	IconSuccess = unicodeIconSuccess
	IconError = unicodeIconError
	IconWarning = unicodeIconWarning
	IconInfo = unicodeIconInfo
	IconJoystick = unicodeIconJoystick
	IconTrace = unicodeIconTrace
	IconFile = unicodeIconFile
	IconArrow = unicodeIconArrow
	IconBullet = unicodeIconBullet
	IconMarker = unicodeIconMarker
}
