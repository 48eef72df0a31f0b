package pitch

import (
	"strconv"
	"strings"

	"github.com/jsphweid/miditok/apperr"
	"github.com/pkg/errors"
)

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var classes = map[string]int{
	"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4, "F": 5,
	"F#": 6, "G": 7, "G#": 8, "A": 9, "A#": 10, "B": 11,
}

// Name converts a note number (0-127) to a pitch name like C#4. Middle C (60) is C4,
// so note 0 is C-1.
func Name(n uint8) string {
	octave := int(n)/12 - 1
	return names[n%12] + strconv.Itoa(octave)
}

// Number is the inverse of Name. The unicode sharp sign is accepted in place of '#'
// and letters are case-insensitive.
func Number(s string) (uint8, error) {
	name := strings.ToUpper(strings.ReplaceAll(s, "♯", "#"))

	// the octave starts at the first digit or minus sign after the letter class
	split := -1
	for i := 1; i < len(name); i++ {
		if name[i] == '-' || (name[i] >= '0' && name[i] <= '9') {
			split = i
			break
		}
	}
	if split == -1 {
		return 0, errors.Wrapf(apperr.ErrInvalidPitchName, "%q has no octave", s)
	}

	class, ok := classes[name[:split]]
	if !ok {
		return 0, errors.Wrapf(apperr.ErrInvalidPitchName, "%q", s)
	}
	octave, err := strconv.Atoi(name[split:])
	if err != nil {
		return 0, errors.Wrapf(apperr.ErrInvalidPitchName, "%q has a bad octave", s)
	}

	n := class + (octave+1)*12
	if n < 0 || n > 127 {
		return 0, errors.Wrapf(apperr.ErrInvalidPitchName, "%q is outside 0-127", s)
	}
	return uint8(n), nil
}
