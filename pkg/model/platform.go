package model

import (
	"errors"
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformLeetCode      Platform = "LeetCode"
	PlatformCodeforces    Platform = "Codeforces"
	PlatformCodeChef      Platform = "CodeChef"
	PlatformGeeksforGeeks Platform = "GeeksforGeeks"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Platforms lists every supported platform in display order.
var Platforms = []Platform{
	PlatformLeetCode,
	PlatformCodeforces,
	PlatformCodeChef,
	PlatformGeeksforGeeks,
}

var platformAliases = map[string]Platform{
	"leetcode":      PlatformLeetCode,
	"lc":            PlatformLeetCode,
	"codeforces":    PlatformCodeforces,
	"cf":            PlatformCodeforces,
	"codechef":      PlatformCodeChef,
	"cc":            PlatformCodeChef,
	"geeksforgeeks": PlatformGeeksforGeeks,
	"gfg":           PlatformGeeksforGeeks,
}

// ParsePlatform resolves a wire name or short alias, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

func (p Platform) String() string {
	return string(p)
}
