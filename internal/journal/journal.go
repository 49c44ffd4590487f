// Package journal records platform notifications to disk and replays them.
//
// A journal is a versioned JSON document holding the window bounds at the
// start of the session and one entry per notification, with the offset
// from the start of recording. Journals can also be written by hand as
// YAML scenarios; entries without offsets replay one per frame.
//
// A Recorder wraps any platform.Source and records what passes through it.
// A Player is a platform.Source that replays a loaded journal.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inputcore/internal/input/platform"
)

// CurrentVersion is the journal format version written by Save.
const CurrentVersion = 1

var (
	// ErrUnknownKind is returned for an entry whose kind is not a
	// notification kind name.
	ErrUnknownKind = errors.New("unknown notification kind")
	// ErrInvalidEntry is returned for an entry whose fields do not
	// describe a valid notification.
	ErrInvalidEntry = errors.New("invalid journal entry")
	// ErrUnsupportedVersion is returned when loading a journal written by
	// a newer format.
	ErrUnsupportedVersion = errors.New("unsupported journal version")
)

// Journal is a recorded input session.
type Journal struct {
	Version int       `json:"version" yaml:"version"`
	Session string    `json:"session,omitempty" yaml:"session,omitempty"`
	Created time.Time `json:"created,omitempty" yaml:"created,omitempty"`

	// Bounds is the client area when recording started. Zero means the
	// replaying context keeps its own.
	Bounds platform.Bounds `json:"bounds" yaml:"bounds"`

	Entries []Entry `json:"entries" yaml:"entries"`
}

// New creates an empty journal with a fresh session id.
func New(bounds platform.Bounds) *Journal {
	return &Journal{
		Version: CurrentVersion,
		Session: uuid.NewString(),
		Created: time.Now().UTC(),
		Bounds:  bounds,
	}
}

// Notifications expands every entry in order.
func (j *Journal) Notifications() ([]platform.Notification, error) {
	var out []platform.Notification
	for i, e := range j.Entries {
		ns, err := e.Notifications()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, ns...)
	}
	return out, nil
}

// Save writes the journal to path as indented JSON. The file is written
// atomically using a temporary file and rename.
func Save(j *Journal, path string) error {
	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads a journal from path. Files ending in .yaml or .yml are read
// as YAML, anything else as JSON.
func Load(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return Parse(data, isYAML(path))
}

// Parse decodes a journal document and checks every entry.
func Parse(data []byte, asYAML bool) (*Journal, error) {
	var j Journal
	if asYAML {
		if err := yaml.Unmarshal(data, &j); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal: %w", err)
		}
	}

	if j.Version == 0 {
		j.Version = CurrentVersion
	}
	if j.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d (max supported: %d)", ErrUnsupportedVersion, j.Version, CurrentVersion)
	}

	for i := range j.Entries {
		if _, err := j.Entries[i].Notifications(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if j.Entries[i].Seq == 0 {
			j.Entries[i].Seq = uint64(i + 1)
		}
	}
	return &j, nil
}

// Summary describes a journal without decoding its entries.
type Summary struct {
	Version int
	Session string
	Entries int
	Created time.Time
}

func (s Summary) String() string {
	session := s.Session
	if session == "" {
		session = "none"
	}
	created := "unknown"
	if !s.Created.IsZero() {
		created = s.Created.Format(time.RFC3339)
	}
	return fmt.Sprintf("version %d, %d entries, session %s, created %s", s.Version, s.Entries, session, created)
}

// Peek reads the header fields of a journal. JSON journals are read with
// path queries and their entries are not decoded; YAML scenarios are
// loaded in full.
func Peek(path string) (Summary, error) {
	if isYAML(path) {
		j, err := Load(path)
		if err != nil {
			return Summary{}, err
		}
		return Summary{Version: j.Version, Session: j.Session, Entries: len(j.Entries), Created: j.Created}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read journal: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Summary{}, fmt.Errorf("failed to read journal: %s is not valid JSON", path)
	}

	res := gjson.GetManyBytes(data, "version", "session", "entries.#", "created")
	s := Summary{
		Version: int(res[0].Int()),
		Session: res[1].String(),
		Entries: int(res[2].Int()),
	}
	if res[3].Exists() {
		s.Created, _ = time.Parse(time.RFC3339Nano, res[3].String())
	}
	return s, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
