package model

import "github.com/arthurazevedods/maker-challenge-server/internal/lib/utils"

// Text is a string field of a payload that also accepts a JSON number or
// boolean, kept in its text form (5 -> "5"). null leaves it empty.
// Objects and arrays fail with utils.ErrNotScalar.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := utils.ScalarString(data)
	if err != nil {
		return err
	}

	*t = Text(s)
	return nil
}
