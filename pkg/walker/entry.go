package walker

import (
	"encoding/json"
	"os"
	"time"
	"unicode/utf8"
)

// Entry is one result of a walk: either a filesystem object beneath the
// root or a failure to read one.
//
// An error entry (IsErr) carries only Path and Err; Directory and Symlink
// are false and Stats is nil. On an ok entry Stats is non-nil exactly when
// the walk was asked for stats.
type Entry[P Path] struct {
	// Path has the representation of the root the walk started from.
	Path P

	// Directory reports whether the entry is a directory. For a followed
	// symlink it describes the target.
	Directory bool

	// Symlink reports whether the entry is a symbolic link. For a followed
	// symlink it describes the target and is therefore false.
	Symlink bool

	// Stats is the entry's metadata, present only with Options.Stats.
	Stats os.FileInfo

	// Err is the failure this entry stands for.
	Err error
}

// IsErr reports whether the entry records a failure rather than an object.
func (e Entry[P]) IsErr() bool {
	return e.Err != nil
}

// String returns the path as text.
func (e Entry[P]) String() string {
	return string(e.Path)
}

// MarshalJSON encodes the entry with the path as a string. Fields that are
// absent on this entry are left out rather than written as null.
//
// JSON strings are UTF-8, so a path that is not valid UTF-8 is written with
// replacement characters in "path" and its exact bytes, base64 encoded, in
// "pathBytes".
func (e Entry[P]) MarshalJSON() ([]byte, error) {
	out := entryJSON{Path: string(e.Path)}
	if !utf8.ValidString(out.Path) {
		out.PathBytes = []byte(out.Path)
	}

	if e.IsErr() {
		out.Err = e.Err.Error()
		return json.Marshal(out) //nolint:wrapcheck // Plain struct encoding
	}

	out.Directory = &e.Directory
	out.Symlink = &e.Symlink

	if e.Stats != nil {
		out.Stats = &statsJSON{
			Size:    e.Stats.Size(),
			Mode:    e.Stats.Mode().String(),
			ModTime: e.Stats.ModTime(),
		}
	}

	return json.Marshal(out) //nolint:wrapcheck // Plain struct encoding
}

type entryJSON struct {
	Path      string     `json:"path"`
	PathBytes []byte     `json:"pathBytes,omitempty"`
	Directory *bool      `json:"directory,omitempty"`
	Symlink   *bool      `json:"symlink,omitempty"`
	Stats     *statsJSON `json:"stats,omitempty"`
	Err       string     `json:"err,omitempty"`
}

type statsJSON struct {
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"modTime"`
}

// buildEntry assembles an ok entry. Type flags come from stats when it was
// fetched, which reflects a link's target under FollowSymlinks; otherwise
// from the listing descriptor, which describes the link itself.
func buildEntry[P Path](dirent os.FileInfo, path P, stats os.FileInfo, wantStats bool) Entry[P] {
	source := dirent
	if stats != nil {
		source = stats
	}

	entry := Entry[P]{
		Path:      path,
		Directory: source.IsDir(),
		Symlink:   source.Mode()&os.ModeSymlink != 0,
	}

	if wantStats {
		entry.Stats = stats
	}

	return entry
}

func errorEntry[P Path](path P, err error) Entry[P] {
	return Entry[P]{Path: path, Err: err}
}
