package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-deliberation/deliberation"
)

const (
	dirPerm  = 0o700
	fileExt  = ".txt"
	fileMode = 0o600
)

var ErrNotFound = errors.New("transcript not found")

type StoreOpt func(*Store)

func WithLogger(logger *zap.Logger) StoreOpt {
	return func(s *Store) {
		s.log = logger
	}
}

// Store keeps one transcript file per run in a directory.
type Store struct {
	fs  afero.Fs
	dir string
	log *zap.Logger
}

func NewStore(fs afero.Fs, dir string, opts ...StoreOpt) *Store {
	s := &Store{fs: fs, dir: dir, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name is the file name of the transcript of rst.
func Name(rst *deliberation.Result) string {
	return fmt.Sprintf("%s_%s%s", rst.Protocol, rst.ID, fileExt)
}

// Save renders the history of rst and writes it next to other transcripts.
// The file is written to a temporary file first and renamed into place.
func (s *Store) Save(rst *deliberation.Result) (string, error) {
	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create transcript dir %v: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, Name(rst))
	tmp, err := afero.TempFile(s.fs, s.dir, Name(rst))
	if err != nil {
		return "", fmt.Errorf("create tmp file: %w", err)
	}
	defer tmp.Close()

	w := bufio.NewWriter(tmp)
	if err := Write(w, rst.History); err != nil {
		return "", fmt.Errorf("render transcript: %w", err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush tmp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync tmp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close tmp file: %w", err)
	}
	if err := s.fs.Chmod(tmp.Name(), fileMode); err != nil {
		return "", fmt.Errorf("chmod tmp file: %w", err)
	}
	if err := s.fs.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename tmp file %v to %v: %w", tmp.Name(), path, err)
	}
	s.log.Debug("saved transcript",
		zap.String("path", path),
		zap.Stringer("run", rst.ID),
	)
	return path, nil
}

// Load reads a transcript by file name.
func (s *Store) Load(name string) (string, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", name, err)
	}
	return string(data), nil
}

// List returns names of stored transcripts in lexical order.
func (s *Store) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	var names []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), fileExt) {
			names = append(names, info.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
