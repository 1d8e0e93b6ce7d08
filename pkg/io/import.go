package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// DecodeSnapshot decodes a snapshot from r without rebuilding a scene.
func DecodeSnapshot(r io.Reader) (scene.Snapshot, error) {
	var snap scene.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return snap, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if snap.NumRacks != 0 && snap.NumRacks != len(snap.Racks) {
		return snap, errs.New(errs.ErrCodeInvalidFormat,
			"num_racks is %d but %d racks are listed", snap.NumRacks, len(snap.Racks))
	}
	return snap, nil
}

// ReadJSON decodes a snapshot from r and rebuilds the scene.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, a
// label is unknown, or a numeric delta is missing under all-but-delta
// coverage. It returns an INVALID_INPUT error if the racks violate the
// stored clearance. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Scene, error) {
	snap, err := DecodeSnapshot(r)
	if err != nil {
		return nil, err
	}
	sc, err := scene.FromSnapshot(snap)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "snapshot")
	}
	if err := layout.Validate(sc.Racks.All(), sc.Boundary, sc.Epsilon); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "snapshot racks")
	}
	return sc, nil
}

// ImportJSON reads the snapshot file at path and rebuilds the scene.
// A missing file is reported as FILE_NOT_FOUND.
func ImportJSON(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
