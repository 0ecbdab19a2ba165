package catalog

import (
	"errors"
	"sync"
	"time"

	"felmel/internal/models"
)

// ErrBusy is returned when a load is requested while another is still running.
var ErrBusy = errors.New("a catalog load is already in progress")

// Session owns the loaded products and the user's current filter and sort. Only loads
// replace or extend the product set; filter and sort build the view from it.
type Session struct {
	mu       sync.RWMutex
	loading  bool
	products []models.Product
	view     []models.Product
	filter   models.FilterState
	sort     *models.SortState
	mode     models.LoadMode
	page     int
	pageSize int
	hasMore  bool
	loadedAt time.Time
}

// Status is a snapshot of the session for the presentation layer.
type Status struct {
	Loading  bool               `json:"loading"`
	Mode     models.LoadMode    `json:"mode,omitempty"`
	Total    int                `json:"total"`
	Filtered int                `json:"filtered"`
	Page     int                `json:"page"`
	HasMore  bool               `json:"has_more"`
	LoadedAt *time.Time         `json:"loaded_at,omitempty"`
	Filter   models.FilterState `json:"filter"`
	Sort     *models.SortState  `json:"sort,omitempty"`
}

func NewSession() *Session {
	return &Session{}
}

// BeginLoad marks the session busy or returns ErrBusy.
func (s *Session) BeginLoad() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ErrBusy
	}
	s.loading = true
	return nil
}

func (s *Session) EndLoad() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Replace installs a fresh load and resets the filter and sort.
func (s *Session) Replace(result *models.LoadResult, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append([]models.Product(nil), result.Products...)
	s.view = s.products
	s.filter = models.FilterState{}
	s.sort = nil
	s.mode = result.Mode
	s.page = result.Pages
	s.pageSize = result.PageSize
	s.hasMore = hasMore
	s.loadedAt = time.Now()
}

// Append adds the products of a further page and rebuilds the view with the current
// filter and sort.
func (s *Session) Append(products []models.Product, page int, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(products) > 0 {
		s.products = append(s.products, products...)
		s.page = page
	}
	s.hasMore = hasMore
	s.rebuildView()
}

// NextPage is the page LoadMore should request.
func (s *Session) NextPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page + 1
}

// PageSize is the page size the current product set was loaded with. Further pages must
// use the same size to line up with it.
func (s *Session) PageSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageSize
}

// SetFilter applies a new filter state and returns the resulting summary.
func (s *Session) SetFilter(state models.FilterState) models.FilterStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = state
	s.rebuildView()
	return FilterSummary(len(s.products), len(s.view), s.filter)
}

func (s *Session) ClearFilter() models.FilterStats {
	return s.SetFilter(models.FilterState{})
}

// SortBy toggles the sort on field and reorders the view.
func (s *Session) SortBy(field models.Field) models.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.sort.Toggle(field)
	s.sort = &next
	s.view = Sort(s.view, next.Field, next.Direction)
	return next
}

// SetSort installs an explicit sort state without toggling.
func (s *Session) SetSort(state models.SortState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = &state
	s.view = Sort(s.view, state.Field, state.Direction)
}

// rebuildView must be called with the lock held.
func (s *Session) rebuildView() {
	view := s.products
	if s.filter.IsActive() {
		view = Apply(s.products, s.filter)
	}
	if s.sort != nil {
		view = Sort(view, s.sort.Field, s.sort.Direction)
	}
	s.view = view
}

// Products returns a copy of every loaded product.
func (s *Session) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// View returns a copy of the filtered and sorted products.
func (s *Session) View() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.view...)
}

func (s *Session) Filter() models.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Session) FilterStats() models.FilterStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterSummary(len(s.products), len(s.view), s.filter)
}

// FastLoad reports whether the current product set came from a fast load.
func (s *Session) FastLoad() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode == models.LoadModeFast
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Loading:  s.loading,
		Mode:     s.mode,
		Total:    len(s.products),
		Filtered: len(s.view),
		Page:     s.page,
		HasMore:  s.hasMore,
		Filter:   s.filter,
	}
	if !s.loadedAt.IsZero() {
		loadedAt := s.loadedAt
		status.LoadedAt = &loadedAt
	}
	if s.sort != nil {
		sortState := *s.sort
		status.Sort = &sortState
	}
	return status
}
