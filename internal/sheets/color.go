package sheets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)

// ParseHexColor converts a "#RRGGBB" string (case-insensitive, leading
// '#' optional) into a normalized Color with channels in [0,1]. An empty
// string means "no color specified" and returns nil. Anything else is a
// ValidationError. No alpha channel is modeled.
func ParseHexColor(s string) (*Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	m := hexColorPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, validationErrorf("invalid hex color %q: expected format #RRGGBB", s)
	}

	hex := m[1]
	channels := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, validationErrorf("invalid hex color %q: %v", s, err)
		}
		channels[i] = float64(v) / 255.0
	}

	return &Color{Red: channels[0], Green: channels[1], Blue: channels[2]}, nil
}

// Hex renders the color back as "#RRGGBB". Channels are clamped to
// [0,1] before conversion so colors read back from the API (which may
// carry rounding artifacts) always render.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X",
		channelToByte(c.Red), channelToByte(c.Green), channelToByte(c.Blue))
}

func channelToByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
