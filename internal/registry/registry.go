// Package registry discovers survey definitions in a directory and indexes
// them by a key derived from the file name.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"questflow/internal/definition"
	"questflow/internal/models/survey_models"
)

// Registry is an immutable set of surveys. It is safe for concurrent use.
type Registry struct {
	byKey  map[string]*survey_models.Survey
	sorted []*survey_models.Survey
}

// New indexes surveys in the given order, resolving key collisions.
func New(surveys []*survey_models.Survey) *Registry {
	r := &Registry{byKey: make(map[string]*survey_models.Survey, len(surveys))}
	for _, s := range surveys {
		key := s.Key
		for {
			if _, taken := r.byKey[key]; !taken {
				break
			}
			key = fmt.Sprintf("%s_%d", key, len(r.byKey)+1)
		}
		if key != s.Key {
			s = s.WithKey(key)
		}
		r.byKey[key] = s
		r.sorted = append(r.sorted, s)
	}

	fold := cases.Fold()
	sort.SliceStable(r.sorted, func(i, j int) bool {
		a, b := fold.String(r.sorted[i].Title), fold.String(r.sorted[j].Title)
		if a != b {
			return a < b
		}
		return r.sorted[i].Key < r.sorted[j].Key
	})
	return r
}

func (r *Registry) Get(key string) (*survey_models.Survey, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// List returns all surveys sorted by title, ignoring case.
func (r *Registry) List() []*survey_models.Survey {
	out := make([]*survey_models.Survey, len(r.sorted))
	copy(out, r.sorted)
	return out
}

func (r *Registry) Len() int { return len(r.byKey) }

type Options struct {
	Sheet  string
	Logger *zap.Logger
}

// Discover parses every definition file in dir. Any parse failure aborts the
// whole discovery. A missing directory yields an empty registry.
func Discover(ctx context.Context, dir string, opts Options) (*Registry, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("survey directory does not exist", zap.String("dir", dir))
			return New(nil), nil
		}
		return nil, fmt.Errorf("list survey directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !definition.IsDefinitionFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	parsed := make([]*survey_models.Survey, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := definition.ParseFile(path, opts.Sheet)
			if err != nil {
				return err
			}
			parsed[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reg := New(parsed)
	for _, s := range reg.List() {
		fields := []zap.Field{
			zap.String("key", s.Key),
			zap.String("file", s.FileName),
			zap.Int("questions", len(s.Questions)),
		}
		if dangling := definition.DanglingTargets(s); len(dangling) > 0 {
			log.Warn("survey has branches to unknown questions", append(fields, zap.Strings("branches", dangling))...)
			continue
		}
		log.Info("survey loaded", fields...)
	}
	return reg, nil
}

// Holder publishes the registry currently being served.
type Holder struct {
	current atomic.Pointer[Registry]
}

func NewHolder(r *Registry) *Holder {
	h := &Holder{}
	h.Store(r)
	return h
}

func (h *Holder) Current() *Registry { return h.current.Load() }

func (h *Holder) Store(r *Registry) { h.current.Store(r) }
