package tracker

import (
	"testing"

	"tornado-tracker/internal/digits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRecord(t *testing.T) {
	r := digits.Reading{digits.Known(0), digits.Unrecognized, digits.Known(9)}
	assert.Equal(t, "0\nNone\n9\n", FormatRecord(r))
}

func TestParseRecord(t *testing.T) {
	r, err := ParseRecord("0\nNone\n9\n\n", true)
	require.NoError(t, err)
	assert.Equal(t, digits.Reading{digits.Known(0), digits.Unrecognized, digits.Known(9)}, r)
}

func TestParseRecordMalformed(t *testing.T) {
	r, err := ParseRecord("4\nseven\n", false)
	require.NoError(t, err)
	assert.Equal(t, digits.Reading{digits.Unrecognized}, r)

	_, err = ParseRecord("4\nseven\n", true)
	assert.ErrorIs(t, err, ErrBadRecord)

	_, err = ParseRecord("12\n", true)
	assert.ErrorIs(t, err, ErrBadRecord)
}
