package modelfiles

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/logger"
)

// ModelsDir is the directory the viewer loads models from.
const ModelsDir = "models"

// SeedPathsFile is a pre-built paths file copied instead of running Find.
var SeedPathsFile = filepath.Join("Arched Door", PathsFile)

// Options configure Setup.
type Options struct {
	Dirs []string
	Ext  string
	// Companions are extra extensions copied alongside model files when
	// a directory has to be copied, such as material libraries.
	Companions []string
	// Symlink creates a link; tests replace it to force the copy path.
	Symlink func(oldname, newname string) error
}

// DefaultOptions returns the room's source directories and extension.
func DefaultOptions() Options {
	return Options{
		Dirs:       DefaultDirs,
		Ext:        DefaultExt,
		Companions: []string{".mtl", ".png", ".jpg", ".jpeg", ".tga", ".bmp"},
		Symlink:    os.Symlink,
	}
}

// Action is what Setup did for one directory.
type Action string

const (
	Linked  Action = "linked"
	Copied  Action = "copied"
	Skipped Action = "skipped" // Source missing or target already present
	Failed  Action = "failed"
)

// Report summarizes a Setup run.
type Report struct {
	PathsSource string // "copied" or "found"
	Paths       Paths
	Dirs        map[string]Action
}

// Setup prepares root for the viewer: it creates models/, provides
// model-paths.json, and links every source directory into models/. A
// directory that cannot be linked is created and its model files copied.
// Per-directory problems are logged and recorded in the report, never
// returned.
func Setup(root string, opts Options, log *zap.Logger) (Report, error) {
	log = logger.OrNop(log)
	if opts.Ext == "" {
		opts.Ext = DefaultExt
	}
	if opts.Symlink == nil {
		opts.Symlink = os.Symlink
	}

	report := Report{Dirs: make(map[string]Action)}

	models := filepath.Join(root, ModelsDir)
	if err := os.MkdirAll(models, 0755); err != nil {
		return report, fmt.Errorf("creating %s: %w", models, err)
	}

	pathsFile := filepath.Join(root, PathsFile)
	if err := copyFile(filepath.Join(root, SeedPathsFile), pathsFile); err == nil {
		report.PathsSource = "copied"
		log.Info("copied model paths", zap.String("from", SeedPathsFile))
		if p, err := ReadJSON(pathsFile); err == nil {
			report.Paths = p
		}
	} else {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("copying model paths failed, searching instead", zap.Error(err))
		}
		report.PathsSource = "found"
		report.Paths = Find(root, opts.Dirs, opts.Ext, log)
		if err := WriteJSON(pathsFile, report.Paths); err != nil {
			log.Error("writing model paths failed", zap.Error(err))
		}
	}

	for _, dir := range opts.Dirs {
		report.Dirs[dir] = linkDir(root, dir, opts, log)
	}
	return report, nil
}

func linkDir(root, dir string, opts Options, log *zap.Logger) Action {
	source, err := filepath.Abs(filepath.Join(root, dir))
	if err != nil {
		log.Error("resolving source failed", zap.String("dir", dir), zap.Error(err))
		return Failed
	}
	target := filepath.Join(root, ModelsDir, dir)

	if !exists(source) || exists(target) {
		return Skipped
	}

	err = opts.Symlink(source, target)
	if err == nil {
		log.Info("linked model directory", zap.String("dir", dir))
		return Linked
	}
	log.Warn("linking failed, copying instead", zap.String("dir", dir), zap.Error(err))

	if err := copyMatching(source, target, append([]string{opts.Ext}, opts.Companions...)); err != nil {
		log.Error("copying model files failed", zap.String("dir", dir), zap.Error(err))
		return Failed
	}
	log.Info("copied model files", zap.String("dir", dir))
	return Copied
}

// copyMatching creates target and copies the files in source whose
// extension is one of exts.
func copyMatching(source, target string, exts []string) error {
	if err := os.MkdirAll(target, 0755); err != nil {
		return err
	}
	var files []string
	for _, ext := range exts {
		names, err := matching(source, ext)
		if err != nil {
			return err
		}
		files = append(files, names...)
	}
	for _, name := range files {
		if err := copyFile(filepath.Join(source, name), filepath.Join(target, name)); err != nil {
			return err
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

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
