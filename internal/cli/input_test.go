package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(reader("  hello world  \n"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Name")
}

func TestGetSimpleText_PartialLineBeforeEOF(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(reader("no newline"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	var out bytes.Buffer

	_, err := GetSimpleText(reader(""), "Name", &out)
	require.Error(t, err)
}

func TestGetFloat(t *testing.T) {
	var out bytes.Buffer

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"number", "12.5\n", 12.5, false},
		{"empty uses fallback", "\n", 24, false},
		{"garbage", "abc\n", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetFloat(reader(tt.input), "Hours", 24, &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetChoice(t *testing.T) {
	options := []string{"user", "business"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"first", "1\n", "user", false},
		{"second", "2\n", "business", false},
		{"empty defaults to first", "\n", "user", false},
		{"out of range", "3\n", "", true},
		{"not a number", "x\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetChoice(reader(tt.input), "Account type", options, &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "1. user")
		})
	}
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	got, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Password: ")
}
