package views

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/domain"
)

// Home page sizes.
const (
	homeProjects      = 8
	homeAnnouncements = 5
)

// AuthState tells views whether a user is signed in.
type AuthState interface {
	IsAuthenticated() bool
}

type HomeState struct {
	Banners       []domain.Banner       `json:"banners"`
	Announcements []domain.Announcement `json:"announcements"`
	Categories    []domain.Category     `json:"categories"`
	Projects      []domain.Project      `json:"projects"`
}

// Home loads its four sections concurrently. Each section keeps its last
// good value when its own fetch fails.
type Home struct {
	api *api.Client

	mu    sync.RWMutex
	state HomeState
}

func NewHome(a *api.Client) *Home {
	return &Home{api: a}
}

func (v *Home) Load(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		banners, err := v.api.Banners(ctx)
		if err != nil {
			return err
		}
		v.update(func(s *HomeState) { s.Banners = banners })
		return nil
	})
	g.Go(func() error {
		page, err := v.api.Announcements(ctx, domain.PageQuery{Page: 1, PageSize: homeAnnouncements})
		if err != nil {
			return err
		}
		v.update(func(s *HomeState) { s.Announcements = page.Entries() })
		return nil
	})
	g.Go(func() error {
		cats, err := v.api.Categories(ctx)
		if err != nil {
			return err
		}
		v.update(func(s *HomeState) { s.Categories = cats })
		return nil
	})
	g.Go(func() error {
		page, err := v.api.Projects(ctx, api.ProjectFilter{PageQuery: domain.PageQuery{Page: 1, PageSize: homeProjects}})
		if err != nil {
			return err
		}
		v.update(func(s *HomeState) { s.Projects = page.Entries() })
		return nil
	})

	return g.Wait()
}

func (v *Home) update(fn func(*HomeState)) {
	v.mu.Lock()
	fn(&v.state)
	v.mu.Unlock()
}

func (v *Home) Snapshot() HomeState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

type ProjectListState struct {
	Filter api.ProjectFilter         `json:"filter"`
	List   ListState[domain.Project] `json:"list"`
	Tabs   []domain.Category         `json:"categories"`
}

// ProjectList is the filterable project catalogue.
type ProjectList struct {
	api *api.Client

	mu     sync.RWMutex
	filter api.ProjectFilter
	list   *List[domain.Project]
	cats   []domain.Category
}

func NewProjectList(a *api.Client) *ProjectList {
	v := &ProjectList{api: a}
	v.list = v.newList(api.ProjectFilter{})
	return v
}

func (v *ProjectList) newList(f api.ProjectFilter) *List[domain.Project] {
	return NewList[domain.Project](f.PageSize, func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Project], error) {
		f.PageQuery = q
		return v.api.Projects(ctx, f)
	})
}

// Load fetches the categories and the first page under the current filter.
func (v *ProjectList) Load(ctx context.Context) error {
	v.mu.RLock()
	list := v.list
	v.mu.RUnlock()

	var g errgroup.Group
	g.Go(func() error {
		cats, err := v.api.Categories(ctx)
		if err != nil {
			return err
		}
		v.mu.Lock()
		v.cats = cats
		v.mu.Unlock()
		return nil
	})
	g.Go(func() error { return list.Load(ctx) })
	return g.Wait()
}

// SetFilter reloads the list under f, starting at f.Page. The old filter
// and results stay in place if the fetch fails.
func (v *ProjectList) SetFilter(ctx context.Context, f api.ProjectFilter) error {
	next := v.newList(f)
	if err := next.LoadPage(ctx, f.Page); err != nil {
		return err
	}
	v.mu.Lock()
	v.filter = f
	v.list = next
	v.mu.Unlock()
	return nil
}

func (v *ProjectList) NextPage(ctx context.Context) error {
	v.mu.RLock()
	list := v.list
	v.mu.RUnlock()
	return list.NextPage(ctx)
}

func (v *ProjectList) Snapshot() ProjectListState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ProjectListState{Filter: v.filter, List: v.list.Snapshot(), Tabs: v.cats}
}

type ProjectDetailState struct {
	Project    *domain.ProjectDetail `json:"project"`
	IsFavorite bool                  `json:"is_favorite"`
	Reviews    []domain.Review       `json:"reviews"`
}

// ProjectDetail shows one project with its reviews and favourite flag.
type ProjectDetail struct {
	api  *api.Client
	auth AuthState

	mu    sync.RWMutex
	state ProjectDetailState
}

func NewProjectDetail(a *api.Client, auth AuthState) *ProjectDetail {
	return &ProjectDetail{api: a, auth: auth}
}

// Open loads project id. The detail itself must load; reviews and the
// favourite flag are best effort.
func (v *ProjectDetail) Open(ctx context.Context, projectID int64) error {
	if projectID <= 0 {
		return errors.New("project id is required")
	}
	detail, err := v.api.Project(ctx, projectID)
	if err != nil {
		return err
	}

	next := ProjectDetailState{Project: detail}
	var g errgroup.Group
	g.Go(func() error {
		page, err := v.api.ProjectReviews(ctx, projectID, domain.PageQuery{Page: 1})
		if err == nil {
			next.Reviews = page.Entries()
		}
		return nil
	})
	if v.auth != nil && v.auth.IsAuthenticated() {
		g.Go(func() error {
			fav, err := v.api.IsFavorite(ctx, projectID)
			if err == nil {
				next.IsFavorite = fav
			}
			return nil
		})
	}
	_ = g.Wait()

	v.mu.Lock()
	v.state = next
	v.mu.Unlock()
	return nil
}

// ToggleFavorite flips the favourite flag of the open project.
func (v *ProjectDetail) ToggleFavorite(ctx context.Context) (bool, error) {
	v.mu.RLock()
	p, fav := v.state.Project, v.state.IsFavorite
	v.mu.RUnlock()
	if p == nil {
		return false, errors.New("no project is open")
	}

	var err error
	if fav {
		err = v.api.RemoveFavorite(ctx, p.ID)
	} else {
		err = v.api.AddFavorite(ctx, p.ID)
	}
	if err != nil {
		return fav, err
	}

	v.mu.Lock()
	v.state.IsFavorite = !fav
	v.mu.Unlock()
	return !fav, nil
}

func (v *ProjectDetail) Snapshot() ProjectDetailState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}
