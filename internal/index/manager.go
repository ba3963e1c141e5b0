package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	ocstats "go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/Zubry/immutable-quadtree/internal/logging"
	"github.com/Zubry/immutable-quadtree/internal/stats"
	"github.com/Zubry/immutable-quadtree/pkg/container/quadtree"
	"github.com/Zubry/immutable-quadtree/pkg/geo"
)

var (
	ErrUnknownIndex   = fmt.Errorf("unknown index")
	ErrUnknownVersion = fmt.Errorf("unknown version")
	ErrShuttingDown   = fmt.Errorf("manager is shutting down")
)

// Contract for returning the Manager instance
type ProvideFn func(chan<- error) (Manager, error)

// Inserter defines the write side of the index registry.
type Inserter interface {
	// Inserts the items as one batch and returns the resulting version
	Insert(ctx context.Context, indexID string, items ...geo.Rect) (Version, error)
	// Resets the index to an empty tree with the same bounds and limits
	Clear(ctx context.Context, indexID string) (Version, error)
}

// Searcher defines the read side of the index registry.
type Searcher interface {
	// Searches the latest version of the index
	Search(ctx context.Context, indexID string, query geo.Rect) ([]geo.Rect, error)
	// Searches a retained historical version of the index
	SearchAt(ctx context.Context, indexID string, versionID uuid.UUID, query geo.Rect) ([]geo.Rect, error)
	// Lists the retained versions of the index, oldest first
	Versions(indexID string) ([]Version, error)
}

// The interface defines the behavior of the manager with all available
// methods, including the background retention service.
type Manager interface {
	Inserter
	Searcher
	// Start method of the service
	Run(context.Context) error
	// Method for stopping the service
	Stop()
}

type Options struct {
	bounds        geo.Rect
	maxItems      int
	maxDepth      int
	maxVersions   int
	maxVersionAge time.Duration
	pruneInterval time.Duration
}

type Option func(*manager)

func WithBounds(bounds geo.Rect) Option {
	return func(m *manager) {
		m.opts.bounds = bounds
	}
}

func WithMaxItems(n int) Option {
	return func(m *manager) {
		m.opts.maxItems = n
	}
}

func WithMaxDepth(n int) Option {
	return func(m *manager) {
		m.opts.maxDepth = n
	}
}

func WithMaxVersions(n int) Option {
	return func(m *manager) {
		m.opts.maxVersions = n
	}
}

func WithMaxVersionAge(t time.Duration) Option {
	return func(m *manager) {
		m.opts.maxVersionAge = t
	}
}

func WithPruneInterval(t time.Duration) Option {
	return func(m *manager) {
		m.opts.pruneInterval = t
	}
}

// state tracks one named index: the tree the next insert builds on plus the
// retained versions, oldest first. The last retained version always wraps
// the current tree.
type state struct {
	current  *quadtree.Tree
	versions []Version
}

// New returns a manager keeping every index inside the given bounds.
func New(shutdownCh chan<- error, opts ...Option) (*manager, error) {
	m := &manager{
		indexes:    map[string]*state{},
		shutdownCh: shutdownCh,
		opts: Options{
			maxItems:      quadtree.DefaultMaxItems,
			maxDepth:      quadtree.DefaultMaxDepth,
			maxVersions:   32,
			maxVersionAge: time.Hour,
			pruneInterval: time.Minute,
		},
	}
	for _, f := range opts {
		f(m)
	}

	if m.opts.bounds.Width <= 0 || m.opts.bounds.Height <= 0 {
		return nil, fmt.Errorf("index bounds must have positive size, got %s", m.opts.bounds)
	}
	if m.opts.maxVersions <= 0 {
		return nil, fmt.Errorf("max versions must be positive, got %d", m.opts.maxVersions)
	}
	// validates maxItems/maxDepth up front instead of on first insert
	if _, err := quadtree.New(m.opts.bounds, quadtree.WithMaxItems(m.opts.maxItems), quadtree.WithMaxDepth(m.opts.maxDepth)); err != nil {
		return nil, fmt.Errorf("unable create index tree: %w", err)
	}

	return m, nil
}

// The manager owns a registry of named indexes. Every mutating call swaps
// in a brand-new immutable tree version under the lock; searches grab a
// version under a read lock and traverse it outside any lock, because a
// version can never change once taken.
type manager struct {
	mtx sync.RWMutex

	opts       Options
	indexes    map[string]*state
	shutdownCh chan<- error

	closed bool
	cancel func()
}

// Run starts the background retention janitor.
func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go m.janitor(ctx)
	return nil
}

// Stop the manager
func (m *manager) Stop() {
	m.cancel()
}

// Insert applies the items in order as one batch and returns the resulting
// version. The index is created on first use.
func (m *manager) Insert(ctx context.Context, indexID string, items ...geo.Rect) (Version, error) {
	logger := logging.FromContext(ctx)
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.closed {
		return Version{}, fmt.Errorf("insert into %q: %w", indexID, ErrShuttingDown)
	}

	st := m.stateFor(indexID)
	version := m.commit(ctx, indexID, st, st.current.BatchInsert(items))

	_ = ocstats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(stats.KeyIndex, indexID)},
		stats.MInsertedItems.M(int64(len(items))),
	)
	logger.Debugf("index %s: version %s holds %d items", indexID, version.ID, version.Size)

	return version, nil
}

// Clear resets the index to an empty tree preserving bounds and limits and
// returns the resulting version.
func (m *manager) Clear(ctx context.Context, indexID string) (Version, error) {
	logger := logging.FromContext(ctx)
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.closed {
		return Version{}, fmt.Errorf("clear %q: %w", indexID, ErrShuttingDown)
	}

	st, ok := m.indexes[indexID]
	if !ok {
		return Version{}, fmt.Errorf("clear %q: %w", indexID, ErrUnknownIndex)
	}

	version := m.commit(ctx, indexID, st, st.current.Clear())
	logger.Debugf("index %s: cleared into version %s", indexID, version.ID)

	return version, nil
}

// Search runs the query against the latest version of the index.
func (m *manager) Search(ctx context.Context, indexID string, query geo.Rect) ([]geo.Rect, error) {
	m.mtx.RLock()
	st, ok := m.indexes[indexID]
	if !ok {
		m.mtx.RUnlock()
		return nil, fmt.Errorf("search %q: %w", indexID, ErrUnknownIndex)
	}
	tree := st.current
	m.mtx.RUnlock()

	return m.search(ctx, indexID, tree, query), nil
}

// SearchAt runs the query against a retained historical version.
func (m *manager) SearchAt(ctx context.Context, indexID string, versionID uuid.UUID, query geo.Rect) ([]geo.Rect, error) {
	m.mtx.RLock()
	st, ok := m.indexes[indexID]
	if !ok {
		m.mtx.RUnlock()
		return nil, fmt.Errorf("search %q: %w", indexID, ErrUnknownIndex)
	}
	var tree *quadtree.Tree
	for i := range st.versions {
		if st.versions[i].ID == versionID {
			tree = st.versions[i].Tree()
			break
		}
	}
	m.mtx.RUnlock()

	if tree == nil {
		return nil, fmt.Errorf("search %q at %s: %w", indexID, versionID, ErrUnknownVersion)
	}
	return m.search(ctx, indexID, tree, query), nil
}

// Versions lists the retained versions of the index, oldest first.
func (m *manager) Versions(indexID string) ([]Version, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	st, ok := m.indexes[indexID]
	if !ok {
		return nil, fmt.Errorf("versions of %q: %w", indexID, ErrUnknownIndex)
	}

	versions := make([]Version, len(st.versions))
	copy(versions, st.versions)
	return versions, nil
}

// search traverses outside the lock: the tree value is immutable.
func (m *manager) search(ctx context.Context, indexID string, tree *quadtree.Tree, query geo.Rect) []geo.Rect {
	matches := tree.Search(query)
	_ = ocstats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(stats.KeyIndex, indexID)},
		stats.MSearches.M(1),
		stats.MSearchMatches.M(int64(len(matches))),
	)
	return matches
}

// stateFor returns the state of the index, creating an empty tree for a new
// id. Caller must hold the write lock. The tree configuration was validated
// in New, so the error cannot trigger here.
func (m *manager) stateFor(indexID string) *state {
	st, ok := m.indexes[indexID]
	if !ok {
		tree, _ := quadtree.New(m.opts.bounds,
			quadtree.WithMaxItems(m.opts.maxItems),
			quadtree.WithMaxDepth(m.opts.maxDepth),
		)
		st = &state{current: tree}
		m.indexes[indexID] = st
	}
	return st
}

// commit records the next tree as a new retained version and trims the ring
// to maxVersions. Caller must hold the write lock.
func (m *manager) commit(ctx context.Context, indexID string, st *state, next *quadtree.Tree) Version {
	version := newVersion(next)
	st.current = next
	st.versions = append(st.versions, version)
	if len(st.versions) > m.opts.maxVersions {
		st.versions = st.versions[len(st.versions)-m.opts.maxVersions:]
	}

	_ = ocstats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(stats.KeyIndex, indexID)},
		stats.MRetainedVersions.M(int64(len(st.versions))),
	)
	return version
}

// janitor drops retained versions past their storage time so old snapshots
// do not pin memory forever. The tree never evicts anything on its own, a
// snapshot lives exactly as long as something references it.
func (m *manager) janitor(ctx context.Context) {
	logger := logging.FromContext(ctx)
	ticker := time.NewTicker(m.opts.pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := m.pruneOutdated(time.Now()); n > 0 {
				logger.Debugf("pruned %d outdated versions", n)
			}
		case <-ctx.Done():
			m.mtx.Lock()
			m.closed = true
			m.mtx.Unlock()
			m.shutdownCh <- nil
			return
		}
	}
}

// pruneOutdated removes versions older than maxVersionAge, always keeping
// the latest version of every index.
func (m *manager) pruneOutdated(now time.Time) int {
	deadline := now.Add(-m.opts.maxVersionAge)
	pruned := 0

	m.mtx.Lock()
	defer m.mtx.Unlock()
	for _, st := range m.indexes {
		kept := st.versions[:0:0]
		for i, version := range st.versions {
			if i == len(st.versions)-1 || version.CreatedAt.After(deadline) {
				kept = append(kept, version)
			}
		}
		pruned += len(st.versions) - len(kept)
		st.versions = kept
	}
	return pruned
}
