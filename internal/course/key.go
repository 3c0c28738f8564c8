// Package course identifies courses and their content blocks.
package course

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	coursePrefix = "course-v1:"
	blockPrefix  = "block-v1:"
)

var ErrInvalidKey = errors.New("invalid course key")

var keyPartPattern = regexp.MustCompile(`^[\w\-~.:]+$`)

// Key identifies one run of a course.
type Key struct {
	Org    string
	Course string
	Run    string
}

// ParseKey parses "course-v1:Org+Course+Run" and the deprecated "Org/Course/Run".
func ParseKey(s string) (Key, error) {
	var parts []string
	if rest, ok := strings.CutPrefix(s, coursePrefix); ok {
		parts = strings.Split(rest, "+")
	} else {
		parts = strings.Split(s, "/")
	}

	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	k := Key{Org: parts[0], Course: parts[1], Run: parts[2]}
	if err := k.validate(); err != nil {
		return Key{}, fmt.Errorf("%w: %q", err, s)
	}
	return k, nil
}

func (k Key) validate() error {
	for _, part := range []string{k.Org, k.Course, k.Run} {
		if !keyPartPattern.MatchString(part) {
			return ErrInvalidKey
		}
	}
	return nil
}

func (k Key) String() string {
	return coursePrefix + k.Org + "+" + k.Course + "+" + k.Run
}

// DeprecatedString returns the slash separated form used in course URLs.
func (k Key) DeprecatedString() string {
	return k.Org + "/" + k.Course + "/" + k.Run
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// UsageKey identifies a content block within a course.
type UsageKey struct {
	Course    Key
	BlockType string
	BlockID   string
}

// MakeUsageKey returns the key of the block of blockType and blockID in c.
func (k Key) MakeUsageKey(blockType, blockID string) UsageKey {
	return UsageKey{Course: k, BlockType: blockType, BlockID: blockID}
}

// ParseUsageKey parses "block-v1:Org+Course+Run+type@T+block@ID".
func ParseUsageKey(s string) (UsageKey, error) {
	rest, ok := strings.CutPrefix(s, blockPrefix)
	if !ok {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	parts := strings.Split(rest, "+")
	if len(parts) != 5 {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	blockType, okType := strings.CutPrefix(parts[3], "type@")
	blockID, okID := strings.CutPrefix(parts[4], "block@")
	if !okType || !okID || blockType == "" || blockID == "" {
		return UsageKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	c := Key{Org: parts[0], Course: parts[1], Run: parts[2]}
	if err := c.validate(); err != nil {
		return UsageKey{}, fmt.Errorf("%w: %q", err, s)
	}

	return UsageKey{Course: c, BlockType: blockType, BlockID: blockID}, nil
}

func (u UsageKey) String() string {
	return blockPrefix + u.Course.Org + "+" + u.Course.Course + "+" + u.Course.Run +
		"+type@" + u.BlockType + "+block@" + u.BlockID
}

func (u UsageKey) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UsageKey) UnmarshalText(b []byte) error {
	parsed, err := ParseUsageKey(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
