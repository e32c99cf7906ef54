package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrMalformed marks level data that cannot be decoded or validated
	ErrMalformed = errors.New("malformed level")
	// ErrNotLoaded is returned while a level is still being read
	ErrNotLoaded = errors.New("level not loaded yet")
	// ErrNoSuchLevel is returned past the last level
	ErrNoSuchLevel = errors.New("no such level")
)

// FileSuffix is the extension of level files
const FileSuffix = ".level.toml"

// Parse decodes and validates a level file
func Parse(data []byte) (*Definition, error) {
	var def Definition
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&def)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrMalformed, strings.Join(keys, ", "))
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &def, nil
}

// Encode writes a definition in the level file format
func Encode(w io.Writer, def *Definition) error {
	return toml.NewEncoder(w).Encode(def)
}

// DisplayName drops the file suffix: "00_easy_start.level.toml" becomes
// "00_easy_start".
func DisplayName(file string) string {
	return strings.TrimSuffix(file, FileSuffix)
}
