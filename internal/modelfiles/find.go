// Package modelfiles prepares the models/ directory the viewer loads
// from: it finds the model file in each source directory and links or
// copies the directories into place.
package modelfiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/pastel-room/internal/logger"
)

// DefaultExt is the model file extension searched for.
const DefaultExt = ".obj"

// PathsFile is the name of the finder's output.
const PathsFile = "model-paths.json"

// DefaultDirs are the source directories of the room's models.
var DefaultDirs = []string{
	"Arched Door", "Book", "Bunny", "Cat Feeder", "Cute Desk Chair",
	"Desk", "Dog", "Gaming Desktop", "Light Switch", "Night Light",
	"Old Radio", "Orchids", "Organizer", "Pastel Keyboard", "Pencil",
	"Pink Pet Bed", "Pocket Pet", "Tassel Rug", "Tassel Rug 2",
	"Tulip Guestbook", "Violet Bed",
}

// Paths maps a source directory to the model file found in it, relative
// to the root.
type Paths map[string]string

var fold = cases.Fold()

// HasExt reports whether name ends in ext, ignoring case.
func HasExt(name, ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fold.String(filepath.Ext(name)) == fold.String(ext)
}

// Find looks in each of dirs under root for files with extension ext and
// records the first one, in name order. Directories without a match or
// that cannot be read are logged and left out.
func Find(root string, dirs []string, ext string, log *zap.Logger) Paths {
	log = logger.OrNop(log)

	found := make(Paths)
	for _, dir := range dirs {
		files, err := matching(filepath.Join(root, dir), ext)
		if err != nil {
			log.Error("reading model directory failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		if len(files) == 0 {
			log.Info("no model files found", zap.String("dir", dir), zap.String("ext", ext))
			continue
		}
		found[dir] = norm.NFC.String(filepath.ToSlash(filepath.Join(dir, files[0])))
		log.Info("found model file", zap.String("dir", dir), zap.String("file", files[0]))
	}
	return found
}

// matching lists regular files in dir with extension ext, sorted by name.
func matching(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !HasExt(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// WriteJSON writes paths as 2-space indented JSON.
func WriteJSON(path string, paths Paths) error {
	if paths == nil {
		paths = Paths{}
	}
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model paths: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON reads a file written by WriteJSON.
func ReadJSON(path string) (Paths, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var paths Paths
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return paths, nil
}
