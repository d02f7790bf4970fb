package worktree

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/worktree/internal/git"
	"github.com/raphi011/worktree/internal/lockfile"
	"github.com/raphi011/worktree/internal/log"
)

const (
	// LockFileName is created in the git common dir.
	LockFileName = "worktree-tool.lock"

	defaultLockWait = 5 * time.Second

	// defaultSettleWait bounds how long a creator that could not take the
	// lock waits for an in-flight creation at its destination to register.
	defaultSettleWait = 3 * time.Second
	settlePoll        = 50 * time.Millisecond

	// maxDefaultAttempts bounds how often a nameless create moves on to the
	// next default name after losing a race for the previous one.
	maxDefaultAttempts = 16
)

// Worktree is a registered worktree inside the container.
type Worktree struct {
	Name string
	Path string
	// Locked worktrees (git worktree lock) are not removed by Clear.
	Locked bool
}

// Registry creates, finds and removes the worktrees of one repository.
type Registry struct {
	layout     Layout
	lockWait   time.Duration
	settleWait time.Duration
}

// NewRegistry returns a registry for the given layout.
func NewRegistry(layout Layout) *Registry {
	return &Registry{layout: layout, lockWait: defaultLockWait, settleWait: defaultSettleWait}
}

// Layout returns the repository layout the registry operates on.
func (r *Registry) Layout() Layout {
	return r.layout
}

// Create returns the worktree called name, creating it first if it is not
// registered yet. An empty name derives a fresh default name; a derived
// name never switches into an existing worktree.
func (r *Registry) Create(ctx context.Context, name string) (Worktree, bool, error) {
	if name != "" {
		return r.create(ctx, name)
	}

	for range maxDefaultAttempts {
		taken, err := r.takenNames(ctx)
		if err != nil {
			return Worktree{}, false, err
		}
		derived := NextDefaultName(taken)

		wt, existed, err := r.create(ctx, derived)
		if existed || errors.Is(err, ErrPathConflict) {
			log.FromContext(ctx).Debug("default name taken concurrently", "name", derived)
			continue
		}
		return wt, false, err
	}
	return Worktree{}, false, fmt.Errorf("%w: no free default name after %d attempts", ErrCreationFailed, maxDefaultAttempts)
}

func (r *Registry) create(ctx context.Context, name string) (Worktree, bool, error) {
	if _, err := ValidateName(name); err != nil {
		return Worktree{}, false, err
	}
	l := log.FromContext(ctx)

	if wt, ok, err := r.find(ctx, name); err != nil || ok {
		return wt, ok, err
	}
	path := filepath.Join(r.layout.Container, name)

	madeContainer := !dirExists(r.layout.Container)
	if err := os.MkdirAll(r.layout.Container, 0755); err != nil {
		return Worktree{}, false, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	unlock, locked := r.lock(ctx)
	defer unlock()

	// Someone may have won while we waited for the lock.
	live, stale, err := r.entries(ctx)
	if err != nil {
		return Worktree{}, false, err
	}
	if wt, ok := byName(live, name); ok {
		return wt, true, nil
	}
	if _, ok := byName(stale, name); ok {
		// git refuses to add over a registration whose directory is gone.
		l.Debug("pruning stale registration", "name", name)
		if err := git.PruneWorktrees(ctx, r.layout.Root); err != nil {
			return Worktree{}, false, fmt.Errorf("%w: %s: %v", ErrCreationFailed, name, err)
		}
	}

	if err := checkDestination(path); err != nil {
		// Without the lock the directory may belong to a creator that is
		// still inside git worktree add.
		if !locked && errors.Is(err, ErrPathConflict) {
			if wt, ok := r.awaitRegistration(ctx, name); ok {
				return wt, true, nil
			}
		}
		return Worktree{}, false, err
	}

	l.Debug("creating worktree", "name", name, "path", path)
	if err := git.AddDetachedWorktree(ctx, r.layout.Root, path); err != nil {
		// Lost the race to a creator that bypassed or timed out on the lock.
		if wt, ok, findErr := r.find(ctx, name); findErr == nil && ok {
			return wt, true, nil
		}
		if madeContainer {
			// Only succeeds while empty.
			_ = os.Remove(r.layout.Container)
		}
		return Worktree{}, false, fmt.Errorf("%w: %s: %v", ErrCreationFailed, name, err)
	}

	return Worktree{Name: name, Path: path}, false, nil
}

// awaitRegistration polls until name is registered or settleWait passes.
func (r *Registry) awaitRegistration(ctx context.Context, name string) (Worktree, bool) {
	deadline := time.Now().Add(r.settleWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return Worktree{}, false
		case <-time.After(settlePoll):
		}
		if wt, ok, err := r.find(ctx, name); err == nil && ok {
			return wt, true
		}
	}
	return Worktree{}, false
}

// checkDestination fails when something that git does not know about
// occupies path.
func checkDestination(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s exists and is not a directory", ErrPathConflict, path)
	}
	return fmt.Errorf("%w: %s exists but is not a registered worktree, move or remove it first", ErrPathConflict, path)
}

// lock takes the repository-wide creation lock, waiting at most lockWait,
// and reports whether it is held. When the lock cannot be taken the
// returned func is a no-op and the caller proceeds, relying on git refusing
// to overwrite an existing destination.
func (r *Registry) lock(ctx context.Context) (func(), bool) {
	l := log.FromContext(ctx)
	fl := lockfile.New(filepath.Join(r.layout.CommonDir, LockFileName))

	waitCtx, cancel := context.WithTimeout(ctx, r.lockWait)
	defer cancel()

	if err := fl.LockContext(waitCtx); err != nil {
		l.Debug("proceeding without lock", "path", fl.Path(), "err", err)
		return func() {}, false
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			l.Debug("failed to release lock", "path", fl.Path(), "err", err)
		}
	}, true
}

// Lookup returns the registered worktree called name.
func (r *Registry) Lookup(ctx context.Context, name string) (Worktree, error) {
	if _, err := ValidateName(name); err != nil {
		return Worktree{}, err
	}
	wt, ok, err := r.find(ctx, name)
	if err != nil {
		return Worktree{}, err
	}
	if !ok {
		return Worktree{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return wt, nil
}

// All yields the registered worktrees in the container sorted by name.
// Every iteration queries git afresh, so the sequence can be ranged over
// again to observe later changes. Worktrees registered outside the
// container, and registrations whose directory is gone, are skipped.
func (r *Registry) All(ctx context.Context) iter.Seq2[Worktree, error] {
	return func(yield func(Worktree, error) bool) {
		wts, err := r.registered(ctx)
		if err != nil {
			yield(Worktree{}, err)
			return
		}
		for _, wt := range wts {
			if !yield(wt, nil) {
				return
			}
		}
	}
}

// List collects All.
func (r *Registry) List(ctx context.Context) ([]Worktree, error) {
	var result []Worktree
	for wt, err := range r.All(ctx) {
		if err != nil {
			return nil, err
		}
		result = append(result, wt)
	}
	return result, nil
}

// Names returns the sorted names of all registered worktrees.
func (r *Registry) Names(ctx context.Context) ([]string, error) {
	wts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(wts))
	for i, wt := range wts {
		names[i] = wt.Name
	}
	return names, nil
}

// Clear removes every registered worktree in the container, then the
// container itself if nothing else is left in it. Registrations whose
// directory was deleted by hand are pruned. Worktrees registered elsewhere
// and locked worktrees are not touched. Clearing an already clear
// repository is a no-op. It returns the number of worktrees removed.
func (r *Registry) Clear(ctx context.Context) (int, error) {
	l := log.FromContext(ctx)

	live, stale, err := r.entries(ctx)
	if err != nil {
		return 0, err
	}
	if len(live) == 0 && len(stale) == 0 && !dirExists(r.layout.Container) {
		return 0, nil
	}

	unlock, _ := r.lock(ctx)
	defer unlock()

	// Re-read under the lock to include worktrees created meanwhile.
	if live, stale, err = r.entries(ctx); err != nil {
		return 0, err
	}

	var errs []error
	removed := 0
	for _, wt := range live {
		if wt.Locked {
			errs = append(errs, fmt.Errorf("%s is locked, run 'git worktree unlock %s' to allow removal", wt.Name, wt.Path))
			continue
		}
		l.Debug("removing worktree", "name", wt.Name)
		if err := git.RemoveWorktree(ctx, r.layout.Root, wt.Path, true); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	if err := r.removeContainer(ctx); err != nil {
		errs = append(errs, err)
	}

	if len(stale) > 0 {
		l.Debug("pruning stale registrations", "count", len(stale))
	}
	if err := git.PruneWorktrees(ctx, r.layout.Root); err != nil {
		errs = append(errs, fmt.Errorf("git worktree prune failed: %v", err))
	}

	// git leaves these behind once its last linked worktree is gone.
	// os.Remove refuses non-empty directories, which keeps foreign
	// worktrees intact.
	for _, dir := range []string{"worktrees", filepath.Join("refs", "worktree"), filepath.Join("logs", "refs", "worktree")} {
		_ = os.Remove(filepath.Join(r.layout.CommonDir, dir))
	}

	return removed, errors.Join(errs...)
}

// removeContainer deletes the container if it is empty. Leftover entries
// are reported, never deleted.
func (r *Registry) removeContainer(ctx context.Context) error {
	entries, err := os.ReadDir(r.layout.Container)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		log.FromContext(ctx).Printf("kept %s: contains unmanaged entries %v\n", r.layout.Container, names)
		return nil
	}
	return os.Remove(r.layout.Container)
}

func (r *Registry) find(ctx context.Context, name string) (Worktree, bool, error) {
	wts, err := r.registered(ctx)
	if err != nil {
		return Worktree{}, false, err
	}
	wt, ok := byName(wts, name)
	return wt, ok, nil
}

func byName(wts []Worktree, name string) (Worktree, bool) {
	for _, wt := range wts {
		if wt.Name == name {
			return wt, true
		}
	}
	return Worktree{}, false
}

// registered returns the live worktrees git reports as direct children of
// the container, sorted by name.
func (r *Registry) registered(ctx context.Context) ([]Worktree, error) {
	live, _, err := r.entries(ctx)
	return live, err
}

// entries returns the registrations under the container sorted by name,
// split into live worktrees and stale ones whose directory is gone.
func (r *Registry) entries(ctx context.Context) (live, stale []Worktree, err error) {
	infos, err := git.ListWorktreesFromRepo(ctx, r.layout.Root)
	if err != nil {
		return nil, nil, err
	}

	// The container itself may be a symlink.
	containers := []string{r.layout.Container, realPath(r.layout.Container)}

	for _, info := range infos {
		if info.Bare {
			continue
		}
		for _, path := range []string{filepath.Clean(info.Path), realPath(info.Path)} {
			if !slices.Contains(containers, filepath.Dir(path)) {
				continue
			}
			wt := Worktree{Name: filepath.Base(path), Path: path, Locked: info.Locked}
			if info.Prunable {
				stale = append(stale, wt)
			} else {
				live = append(live, wt)
			}
			break
		}
	}

	byNameOrder := func(a, b Worktree) int {
		return cmp.Compare(a.Name, b.Name)
	}
	slices.SortFunc(live, byNameOrder)
	slices.SortFunc(stale, byNameOrder)
	return live, stale, nil
}

// takenNames returns registered names, including stale registrations, plus
// every entry in the container.
func (r *Registry) takenNames(ctx context.Context) (map[string]bool, error) {
	live, stale, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(live)+len(stale))
	for _, wt := range slices.Concat(live, stale) {
		taken[wt.Name] = true
	}
	entries, err := os.ReadDir(r.layout.Container)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, e := range entries {
		taken[e.Name()] = true
	}
	return taken, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
