package asset

import (
	"fmt"
	"io"
	"os"
)

// SaveAsset writes a's JSON form to path, for operator tooling rather
// than consensus storage. A single file handle is opened for the call
// and released on every exit path.
func SaveAsset(a Asset, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("asset: save %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	data, merr := MarshalJSON(a)
	if merr != nil {
		return fmt.Errorf("asset: save %q: marshal: %w", path, merr)
	}
	if _, werr := f.Write(data); werr != nil {
		return fmt.Errorf("asset: save %q: write: %w", path, werr)
	}
	return nil
}

// LoadAsset reads and decodes the JSON asset stored at path.
func LoadAsset(path string) (a Asset, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Asset{}, fmt.Errorf("asset: load %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	data, rerr := io.ReadAll(f)
	if rerr != nil {
		return Asset{}, fmt.Errorf("asset: load %q: read: %w", path, rerr)
	}
	a, derr := UnmarshalJSON(data)
	if derr != nil {
		return Asset{}, fmt.Errorf("asset: load %q: %w", path, derr)
	}
	return a, nil
}
