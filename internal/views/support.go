package views

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/logging"
)

// ErrEmptyMessage is returned when a chat message has no content.
var ErrEmptyMessage = errors.New("message is empty")

// Chat is the customer-service conversation. There is no push channel;
// new messages arrive by polling or after a send.
type Chat struct {
	api    *api.Client
	poller *Poller

	mu       sync.RWMutex
	messages []domain.ChatMessage
	onUpdate func([]domain.ChatMessage)
}

func NewChat(a *api.Client) *Chat {
	return &Chat{api: a, poller: NewPoller()}
}

func (v *Chat) Load(ctx context.Context) error {
	history, err := v.api.ChatHistory(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	changed := !slices.EqualFunc(history, v.messages, func(a, b domain.ChatMessage) bool {
		return a.ID == b.ID && a.Content == b.Content
	})
	v.messages = history
	fn := v.onUpdate
	v.mu.Unlock()

	if changed && fn != nil {
		fn(append([]domain.ChatMessage(nil), history...))
	}
	return nil
}

// Send posts content and appends it, plus any synchronous reply, locally.
func (v *Chat) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}
	reply, err := v.api.SendMessage(ctx, content)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.messages = append(v.messages, domain.ChatMessage{Content: content, Sender: "user"})
	if reply != nil {
		v.messages = append(v.messages, *reply)
	}
	v.mu.Unlock()
	return nil
}

// OnUpdate registers fn to receive the history whenever a poll sees new
// messages.
func (v *Chat) OnUpdate(fn func([]domain.ChatMessage)) {
	v.mu.Lock()
	v.onUpdate = fn
	v.mu.Unlock()
}

// StartPolling reloads the history every interval until StopPolling.
func (v *Chat) StartPolling(interval time.Duration) error {
	return v.poller.Start(interval, func(ctx context.Context) {
		if err := v.Load(ctx); err != nil {
			logging.NewLogger(ctx).LogWarnf("chat_poll", "reload chat history: %v", err)
		}
	})
}

func (v *Chat) StopPolling() { v.poller.Stop() }

func (v *Chat) Polling() bool { return v.poller.Running() }

func (v *Chat) Snapshot() []domain.ChatMessage {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.ChatMessage{}, v.messages...)
}

type Announcements struct {
	list *List[domain.Announcement]
}

func NewAnnouncements(a *api.Client) *Announcements {
	return &Announcements{list: NewList[domain.Announcement](domain.DefaultPageSize, a.Announcements)}
}

func (v *Announcements) Load(ctx context.Context) error { return v.list.Load(ctx) }

func (v *Announcements) NextPage(ctx context.Context) error { return v.list.NextPage(ctx) }

func (v *Announcements) Snapshot() ListState[domain.Announcement] { return v.list.Snapshot() }

type HelpState struct {
	Categories []domain.HelpCategory         `json:"categories"`
	CategoryID int64                         `json:"category_id,omitempty"`
	Articles   ListState[domain.HelpArticle] `json:"articles"`
}

// Help is the FAQ centre: categories plus the articles of the chosen one.
type Help struct {
	api *api.Client

	mu         sync.RWMutex
	categories []domain.HelpCategory
	categoryID int64
	articles   *List[domain.HelpArticle]
}

func NewHelp(a *api.Client) *Help {
	v := &Help{api: a}
	v.articles = v.newList(0)
	return v
}

func (v *Help) newList(categoryID int64) *List[domain.HelpArticle] {
	return NewList[domain.HelpArticle](domain.DefaultPageSize, func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.HelpArticle], error) {
		return v.api.HelpArticles(ctx, categoryID, q)
	})
}

func (v *Help) Load(ctx context.Context) error {
	cats, err := v.api.HelpCategories(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.categories = cats
	list := v.articles
	v.mu.Unlock()
	return list.Load(ctx)
}

func (v *Help) SetCategory(ctx context.Context, categoryID int64) error {
	next := v.newList(categoryID)
	if err := next.Load(ctx); err != nil {
		return err
	}
	v.mu.Lock()
	v.categoryID = categoryID
	v.articles = next
	v.mu.Unlock()
	return nil
}

func (v *Help) Snapshot() HelpState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return HelpState{
		Categories: append([]domain.HelpCategory{}, v.categories...),
		CategoryID: v.categoryID,
		Articles:   v.articles.Snapshot(),
	}
}
