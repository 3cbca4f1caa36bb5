package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/wsrun/internal/ctxlog"
	"github.com/viant/wsrun/model/workspace"
	"golang.org/x/sync/errgroup"
)

// ErrNoWorkspaces is returned when the root declares or matches no workspace.
var ErrNoWorkspaces = errors.New("could not find any workspaces")

// Service discovers workspaces under a root directory.
type Service struct {
	fs          afs.Service
	concurrency int
}

// New creates a discovery service.
func New(opts ...Option) *Service {
	ret := &Service{fs: afs.New(), concurrency: 8}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Discover returns workspaces of the monorepo rooted at root, in glob match order.
func (s *Service) Discover(ctx context.Context, root string) (*workspace.Set, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	patterns, err := s.Patterns(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w from %v", ErrNoWorkspaces, root)
	}
	dirs, err := Expand(root, patterns)
	if err != nil {
		return nil, err
	}
	manifests := make([]*Manifest, len(dirs))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, dir := range dirs {
		i, dir := i, dir
		group.Go(func() error {
			manifest, err := s.load(gctx, url.Join(root, dir, ManifestFile))
			if err != nil {
				return err
			}
			manifests[i] = manifest
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	var items []*workspace.Workspace
	for i, manifest := range manifests {
		if manifest.Name == "" {
			logger.Debug("skipping unnamed package", "dir", dirs[i])
			continue
		}
		items = append(items, manifest.Workspace(filepath.Join(root, filepath.FromSlash(dirs[i]))))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w from %v", ErrNoWorkspaces, root)
	}
	ret, err := workspace.NewSet(root, items...)
	if err != nil {
		return nil, err
	}
	logger.Debug("workspaces discovered", "root", root, "count", ret.Len())
	return ret, nil
}

// Patterns returns workspace globs declared by package.json or pnpm-workspace.yaml under root.
func (s *Service) Patterns(ctx context.Context, root string) ([]string, error) {
	manifestURL := url.Join(root, ManifestFile)
	if ok, _ := s.fs.Exists(ctx, manifestURL); ok {
		manifest, err := s.load(ctx, manifestURL)
		if err != nil {
			return nil, err
		}
		if len(manifest.Workspaces) > 0 {
			return manifest.Workspaces, nil
		}
	}
	pnpmURL := url.Join(root, PnpmWorkspaceFile)
	if ok, _ := s.fs.Exists(ctx, pnpmURL); ok {
		data, err := s.fs.DownloadWithURL(ctx, pnpmURL)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", pnpmURL, err)
		}
		patterns, err := parsePnpmWorkspace(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %v: %w", pnpmURL, err)
		}
		return patterns, nil
	}
	return nil, nil
}

func (s *Service) load(ctx context.Context, URL string) (*Manifest, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", URL, err)
	}
	return manifest, nil
}

// Expand resolves workspace globs into slash separated directories relative
// to root holding a package.json. Patterns starting with "!" exclude
// directories; node_modules is never traversed.
func Expand(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	var includes, excludes []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if negated, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, cleanPattern(negated))
			continue
		}
		if pattern != "" {
			includes = append(includes, cleanPattern(pattern))
		}
	}
	seen := map[string]bool{}
	var ret []string
	for _, include := range includes {
		if !doublestar.ValidatePattern(include) {
			return nil, fmt.Errorf("invalid workspace pattern: %q", include)
		}
		matches, err := doublestar.Glob(fsys, path.Join(include, ManifestFile))
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", include, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			dir := path.Dir(match)
			if seen[dir] || dir == "." || inNodeModules(dir) || excluded(dir, excludes) {
				continue
			}
			seen[dir] = true
			ret = append(ret, dir)
		}
	}
	return ret, nil
}

func cleanPattern(pattern string) string {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	return strings.TrimSuffix(pattern, "/")
}

func inNodeModules(dir string) bool {
	for _, segment := range strings.Split(dir, "/") {
		if segment == "node_modules" {
			return true
		}
	}
	return false
}

func excluded(dir string, excludes []string) bool {
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, dir); ok {
			return true
		}
	}
	return false
}
