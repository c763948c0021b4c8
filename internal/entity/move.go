package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/ygame-backend/internal/apperror"
)

type MoveKind int

const (
	MoveUnknown MoveKind = iota
	MoveByString
	MoveByIndex
	MoveByCoord
)

// MoveInput is a move as received at the boundary, before it is resolved to a Coord.
type MoveInput struct {
	Kind  MoveKind
	Text  string
	Index int
	Coord Coord
}

func MoveFromString(s string) MoveInput { return MoveInput{Kind: MoveByString, Text: s} }
func MoveFromIndex(i int) MoveInput     { return MoveInput{Kind: MoveByIndex, Index: i} }
func MoveFromCoord(c Coord) MoveInput   { return MoveInput{Kind: MoveByCoord, Coord: c} }

// UnmarshalJSON accepts a string, an integer or an {x,y,z} object.
// Anything else decodes to MoveUnknown and is rejected by NormalizeMove.
func (that *MoveInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*that = MoveInput{Kind: MoveUnknown, Text: string(data)}

	// encoding/json hands a literal null to the unmarshaler
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*that = MoveFromString(s)
		}
	case '{':
		var obj struct {
			X *int `json:"x"`
			Y *int `json:"y"`
			Z *int `json:"z"`
		}
		if err := json.Unmarshal(data, &obj); err == nil && obj.X != nil && obj.Y != nil && obj.Z != nil {
			*that = MoveFromCoord(Coord{X: *obj.X, Y: *obj.Y, Z: *obj.Z})
		}
	default:
		var n int
		if err := json.Unmarshal(data, &n); err == nil {
			*that = MoveFromIndex(n)
		}
	}

	return nil
}

func (that MoveInput) MarshalJSON() ([]byte, error) {
	switch that.Kind {
	case MoveByString:
		return json.Marshal(that.Text)
	case MoveByIndex:
		return json.Marshal(that.Index)
	case MoveByCoord:
		return json.Marshal(that.Coord)
	default:
		return []byte("null"), nil
	}
}

// NormalizeMove - resolves any accepted move encoding to a coordinate on a board of side size.
func NormalizeMove(in MoveInput, size int) (Coord, error) {
	switch in.Kind {
	case MoveByCoord:
		return checkOnBoard(in.Coord, size)
	case MoveByIndex:
		return coordFromIndex(in.Index, size)
	case MoveByString:
		return parseMoveString(in.Text, size)
	default:
		return Coord{}, fmt.Errorf("%w: unsupported move %q", apperror.ErrInvalidMoveFormat, in.Text)
	}
}

func parseMoveString(raw string, size int) (Coord, error) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}

	if strings.ContainsAny(s, "()") {
		return Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveFormat, raw)
	}

	parts := strings.Split(s, ",")

	switch len(parts) {
	case 3:
		var values [3]int
		for i, part := range parts {
			v, ok := parseNonNegative(part)
			if !ok {
				return Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveFormat, raw)
			}
			values[i] = v
		}

		return checkOnBoard(Coord{X: values[0], Y: values[1], Z: values[2]}, size)
	case 1:
		if s != strings.TrimSpace(raw) {
			// "(5)" is not a valid index
			return Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveFormat, raw)
		}
		index, ok := parseNonNegative(s)
		if !ok {
			return Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveFormat, raw)
		}

		return coordFromIndex(index, size)
	default:
		return Coord{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveFormat, raw)
	}
}

func parseNonNegative(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return v, true
}

func coordFromIndex(index, size int) (Coord, error) {
	c, err := IndexToCoord(index, size)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMoveFormat, err)
	}

	return c, nil
}

func checkOnBoard(c Coord, size int) (Coord, error) {
	if !c.OnBoard(size) {
		return Coord{}, fmt.Errorf("%w: %s is not on a board of size %d", apperror.ErrInvalidMoveFormat, c, size)
	}

	return c, nil
}
