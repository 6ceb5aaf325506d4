package rallylog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Log is a fully decoded log file.
type Log struct {
	Path    string
	Records []Record
}

// Entries returns the display view of every record.
func (l *Log) Entries() []Entry {
	return Resolve(l.Records)
}

// Load reads and decodes the log at path. The file is read completely and
// closed before decoding starts.
func Load(path string) (*Log, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, &IOError{Path: path, Err: err}
	}

	data, err := readAll(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	records, err := Decode(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &Log{Path: path, Records: records}, nil
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Decode parses UTF-8 JSON text holding an array of records. Array elements
// that are not objects become empty records.
func Decode(data []byte) ([]Record, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errors.New("content is not valid UTF-8")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	if elems == nil {
		return nil, errors.New("expected a JSON array, got null")
	}

	records := make([]Record, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			continue
		}
		if err := json.Unmarshal(elem, &records[i]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return records, nil
}
