package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Status uint8

const (
	StatusActive Status = iota
	StatusWon
	StatusTied
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusActive:    "ACTIVE",
	StatusWon:       "WON",
	StatusTied:      "TIE",
	StatusCancelled: "CANCELLED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) IsTerminal() bool {
	return s != StatusActive
}

func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGameStatus, uint8(s))
	}
	return []byte(name), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownGameStatus, text)
}
