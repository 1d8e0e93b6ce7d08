package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/pipeline"
)

// backupDir holds the artifacts of the previous run, relative to the
// output directory.
const backupDir = "backup"

var artifactExts = []string{".json", ".svg", ".png"}

// prepareOutputDir moves the artifacts of a previous run in out into
// out/backup, replacing the files of the run before that. Subdirectories
// and unrelated files are left alone. It returns the number of files
// backed up.
func prepareOutputDir(out string) (int, error) {
	if err := errs.ValidateOutputDir(out); err != nil {
		return 0, err
	}
	backup := filepath.Join(out, backupDir)
	if err := os.MkdirAll(backup, 0o755); err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", backup)
	}

	if err := removeArtifacts(backup); err != nil {
		return 0, err
	}
	names, err := artifactNames(out)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		src := filepath.Join(out, name)
		if err := copyFile(src, filepath.Join(backup, name)); err != nil {
			return 0, errs.Wrap(errs.ErrCodeInvalidPath, err, "back up %s", src)
		}
		if err := os.Remove(src); err != nil {
			return 0, errs.Wrap(errs.ErrCodeInvalidPath, err, "remove %s", src)
		}
	}
	return len(names), nil
}

// writeArtifacts writes one round's artifacts as data_center<round>.<fmt>
// and returns the written paths in format order.
func writeArtifacts(out string, rr *pipeline.RoundResult, formats []string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := rr.Artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(out, rr.Round, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func artifactPath(out string, round int, format string) string {
	return filepath.Join(out, fmt.Sprintf("data_center%d.%s", round, format))
}

func artifactNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", dir)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && slices.Contains(artifactExts, filepath.Ext(e.Name())) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func removeArtifacts(dir string) error {
	names, err := artifactNames(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidPath, err, "remove %s", name)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
