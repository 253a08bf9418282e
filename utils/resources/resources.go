// Package resources reads the descriptive block tables of an epoch.
package resources

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/bedrock-tool/blockmap/utils"
	"github.com/bedrock-tool/blockmap/utils/blockmapping"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
)

// Files names the resources of one epoch. Properties and Blob are optional.
type Files struct {
	LegacyIDs  string
	States     string
	Properties string
	Blob       string
}

// Loader reads resources from a filesystem. Files ending in .zst or .gz are
// decompressed transparently.
type Loader struct {
	fsys fs.FS
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// ReadFile returns the decompressed content of a resource.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	switch path.Ext(name) {
	case ".zst":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return data, nil
}

// Load reads and parses the resources of epoch. Malformed resources are
// reported as *blockmapping.ConfigError.
func (l *Loader) Load(epoch string, files Files) (blockmapping.Source, error) {
	var src blockmapping.Source
	configErr := func(resource string, err error) error {
		return &blockmapping.ConfigError{Epoch: epoch, Resource: resource, Err: err}
	}

	data, err := l.readJSON(files.LegacyIDs, legacyIDSchema)
	if err != nil {
		return src, configErr(files.LegacyIDs, err)
	}
	if err := utils.ParseJson(data, &src.LegacyIDs); err != nil {
		return src, configErr(files.LegacyIDs, err)
	}

	data, err = l.readJSON(files.States, statesSchema)
	if err != nil {
		return src, configErr(files.States, err)
	}
	if src.States, err = decodeStates(data); err != nil {
		return src, configErr(files.States, err)
	}

	if files.Properties != "" {
		data, err = l.readJSON(files.Properties, propertiesSchema)
		if err != nil {
			return src, configErr(files.Properties, err)
		}
		if src.Properties, err = decodeProperties(data); err != nil {
			return src, configErr(files.Properties, err)
		}
	}

	if files.Blob != "" {
		src.Blob, err = l.ReadFile(files.Blob)
		if err != nil {
			// An empty palette is rebuilt from the state table on first use.
			logrus.Warnf("epoch %s: precomputed palette: %s", epoch, err)
			src.Blob = nil
		}
	}

	logrus.Debugf("epoch %s: %d legacy names, %d blocks, %d with properties",
		epoch, len(src.LegacyIDs), len(src.States), len(src.Properties))
	return src, nil
}

func (l *Loader) readJSON(name string, s schema) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("no %s resource configured", s)
	}
	data, err := l.ReadFile(name)
	if err != nil {
		return nil, err
	}
	data = utils.CleanJson(data)
	if err := s.validate(data); err != nil {
		return nil, err
	}
	return data, nil
}
