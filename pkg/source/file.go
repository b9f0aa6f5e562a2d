package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// FileSource reads <dir>/<jobID>.json files in the crawler's export format.
type FileSource struct {
	dir string
}

// NewFileSource creates a source for dir, which must exist.
func NewFileSource(dir string) (*FileSource, error) {
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "open %s", dir)
	}
	if !info.IsDir() {
		return nil, errs.New(errs.ErrCodeInvalidSource, "%s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

func (s *FileSource) Load(ctx context.Context, jobID string) (*crawl.Graph, error) {
	if err := errs.ValidateJobID(jobID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := crawl.ReadGraphFile(s.Path(jobID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(jobID)
	}
	if err != nil {
		return nil, err
	}
	if g.JobID == "" {
		g.JobID = jobID
	}
	return g, nil
}

// Path returns the file that holds jobID.
func (s *FileSource) Path(jobID string) string {
	return filepath.Join(s.dir, jobID+".json")
}

// Jobs lists the job ids available in the directory, sorted.
func (s *FileSource) Jobs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var jobs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		jobs = append(jobs, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(jobs)
	return jobs, nil
}

func (s *FileSource) Name() string { return KindFile }

func (s *FileSource) Close() error { return nil }

var _ Source = (*FileSource)(nil)
