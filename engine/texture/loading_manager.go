package texture

import "sync"

// LoadingManager tracks a group of loads and reports aggregate progress.
// A load batch starts when the first item starts while nothing is pending, and finishes when
// every started item has ended. Failed items still count as loaded once ItemEnd is called for them.
type LoadingManager interface {
	// ItemStart records that a load began.
	//
	// Parameters:
	//   - url: the item being loaded
	ItemStart(url string)

	// ItemEnd records that a load finished, successfully or not.
	//
	// Parameters:
	//   - url: the item that finished
	ItemEnd(url string)

	// ItemError records that a load failed. ItemEnd must still be called for the item.
	//
	// Parameters:
	//   - url: the item that failed
	ItemError(url string)

	// Progress returns the number of finished items and the number of started items.
	Progress() (itemsLoaded, itemsTotal int)

	// IsLoading reports whether any started item has not finished.
	IsLoading() bool

	SetOnStart(fn func(url string, itemsLoaded, itemsTotal int))
	SetOnProgress(fn func(url string, itemsLoaded, itemsTotal int))
	SetOnLoad(fn func())
	SetOnError(fn func(url string))
}

type loadingManagerImpl struct {
	mu sync.Mutex

	loading     bool
	itemsLoaded int
	itemsTotal  int

	onStart    func(url string, itemsLoaded, itemsTotal int)
	onProgress func(url string, itemsLoaded, itemsTotal int)
	onLoad     func()
	onError    func(url string)
}

var _ LoadingManager = &loadingManagerImpl{}

// LoadingManagerBuilderOption is a functional option for configuring a LoadingManager.
type LoadingManagerBuilderOption func(*loadingManagerImpl)

// WithOnStart sets the callback fired when a batch begins.
func WithOnStart(fn func(url string, itemsLoaded, itemsTotal int)) LoadingManagerBuilderOption {
	return func(m *loadingManagerImpl) { m.onStart = fn }
}

// WithOnProgress sets the callback fired every time an item finishes.
func WithOnProgress(fn func(url string, itemsLoaded, itemsTotal int)) LoadingManagerBuilderOption {
	return func(m *loadingManagerImpl) { m.onProgress = fn }
}

// WithOnLoad sets the callback fired when every started item has finished.
func WithOnLoad(fn func()) LoadingManagerBuilderOption {
	return func(m *loadingManagerImpl) { m.onLoad = fn }
}

// WithOnError sets the callback fired when an item fails.
func WithOnError(fn func(url string)) LoadingManagerBuilderOption {
	return func(m *loadingManagerImpl) { m.onError = fn }
}

// NewLoadingManager creates a LoadingManager.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - LoadingManager: the new manager
func NewLoadingManager(options ...LoadingManagerBuilderOption) LoadingManager {
	m := &loadingManagerImpl{}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *loadingManagerImpl) ItemStart(url string) {
	m.mu.Lock()
	m.itemsTotal++
	first := !m.loading
	m.loading = true
	loaded, total, fn := m.itemsLoaded, m.itemsTotal, m.onStart
	m.mu.Unlock()

	if first && fn != nil {
		fn(url, loaded, total)
	}
}

func (m *loadingManagerImpl) ItemEnd(url string) {
	m.mu.Lock()
	m.itemsLoaded++
	loaded, total := m.itemsLoaded, m.itemsTotal
	done := loaded == total
	if done {
		m.loading = false
	}
	onProgress, onLoad := m.onProgress, m.onLoad
	m.mu.Unlock()

	if onProgress != nil {
		onProgress(url, loaded, total)
	}
	if done && onLoad != nil {
		onLoad()
	}
}

func (m *loadingManagerImpl) ItemError(url string) {
	m.mu.Lock()
	fn := m.onError
	m.mu.Unlock()

	if fn != nil {
		fn(url)
	}
}

func (m *loadingManagerImpl) Progress() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemsLoaded, m.itemsTotal
}

func (m *loadingManagerImpl) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *loadingManagerImpl) SetOnStart(fn func(url string, itemsLoaded, itemsTotal int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStart = fn
}

func (m *loadingManagerImpl) SetOnProgress(fn func(url string, itemsLoaded, itemsTotal int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress = fn
}

func (m *loadingManagerImpl) SetOnLoad(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLoad = fn
}

func (m *loadingManagerImpl) SetOnError(fn func(url string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}
