package rallylog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("ValidArray", func(t *testing.T) {
		path := writeLog(t, `[{"round":1,"who":"a"},{"who":"b"},{}]`)

		log, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, log.Path)
		require.Len(t, log.Records, 3)

		entries := log.Entries()
		assert.Equal(t, "1", entries[0].Round)
		assert.Equal(t, "1", entries[1].Round)
		assert.Equal(t, "2", entries[2].Round)
		assert.Equal(t, "user", entries[2].Who)
	})

	t.Run("EmptyArray", func(t *testing.T) {
		log, err := Load(writeLog(t, `[]`))
		require.NoError(t, err)
		assert.Empty(t, log.Records)
	})

	t.Run("MissingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.json")
		_, err := Load(path)

		var missing *MissingFileError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, path, missing.Path)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := Load(t.TempDir())

		var ioErr *IOError
		assert.True(t, errors.As(err, &ioErr))
	})

	t.Run("ByteOrderMark", func(t *testing.T) {
		log, err := Load(writeLog(t, "\xEF\xBB\xBF[{\"who\":\"x\"}]"))
		require.NoError(t, err)
		assert.Equal(t, "x", log.Entries()[0].Who)
	})
}

func TestLoadDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"trailing comma", `[{"round":1},]`},
		{"unbalanced brace", `[{"round":1}`},
		{"empty file", ``},
		{"object at top level", `{"round":1}`},
		{"string at top level", `"hello"`},
		{"null at top level", `null`},
		{"invalid utf-8", "[\"\xff\xfe\"]"},
		{"NaN literal", `[{"round":NaN}]`},
		{"Infinity literal", `[{"output":-Infinity}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Load(writeLog(t, tt.content))
			assert.Nil(t, log)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "got %T: %v", err, err)
			assert.NotNil(t, decodeErr.Err)
		})
	}
}

func TestDecodeNonObjectElements(t *testing.T) {
	records, err := Decode([]byte(`[1, "two", null, [3], {"who":"x"}]`))
	require.NoError(t, err)
	require.Len(t, records, 5)

	entries := Resolve(records)
	for i := 0; i < 4; i++ {
		assert.Equal(t, Entry{Round: string(rune('0' + i)), Who: "user"}, entries[i])
	}
	assert.Equal(t, "x", entries[4].Who)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		handled bool
		want    string
	}{
		{
			name:    "missing file",
			err:     &MissingFileError{Path: "/tmp/log.json"},
			handled: true,
			want:    "Error: /tmp/log.json not found.\n",
		},
		{
			name:    "decode error",
			err:     &DecodeError{Path: "log.json", Err: errors.New("unexpected end of JSON input")},
			handled: true,
			want:    "Error parsing JSON: unexpected end of JSON input\n",
		},
		{
			name:    "io error",
			err:     &IOError{Path: "log.json", Err: errors.New("permission denied")},
			handled: true,
			want:    "Error reading log.json: permission denied\n",
		},
		{
			name:    "other error",
			err:     errors.New("boom"),
			handled: false,
		},
		{
			name:    "nil",
			handled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handled, err := Report(&buf, tt.err)
			require.NoError(t, err)
			assert.Equal(t, tt.handled, handled)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
