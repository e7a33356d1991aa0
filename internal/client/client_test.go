package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/session"
)

type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Message)
	}
	return out
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *session.Store, *recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewStore(session.NewMemoryStorage())
	rec := &recorder{}
	c, err := New(Config{BaseURL: srv.URL + "/", Session: store, Notifier: rec})
	require.NoError(t, err)
	return c, store, rec
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func login(t *testing.T, store *session.Store, token string) {
	t.Helper()
	require.NoError(t, store.Login(context.Background(), token, &domain.User{ID: 1, Phone: "13800000000"}))
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	c, err := New(Config{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestDo_SuccessReturnsData(t *testing.T) {
	c, _, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/7", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":{"id":7,"name":"XRD"}}`)
	})

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/api/v1/projects/7", nil, &out))
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "XRD", out.Name)
	assert.Empty(t, rec.messages())
}

func TestDo_BearerHeader(t *testing.T) {
	var got []string
	c, store, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		_, present := r.Header["Authorization"]
		if !present {
			got[len(got)-1] = "<absent>"
		}
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":null}`)
	})
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/a", nil, nil))
	login(t, store, "tok-1")
	require.NoError(t, c.Get(ctx, "/b", nil, nil))
	require.NoError(t, c.Get(WithBearer(ctx, "override"), "/c", nil, nil))

	assert.Equal(t, []string{"<absent>", "Bearer tok-1", "Bearer override"}, got)
}

func TestDo_RequestIDHeader(t *testing.T) {
	var ids []string
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-Id"))
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":null}`)
	})

	require.NoError(t, c.Get(context.Background(), "/a", nil, nil))
	require.NoError(t, c.Get(withRequestID("req-42"), "/b", nil, nil))

	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, "req-42", ids[1])
}

func TestDo_QueryAndBody(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "pending_payment", r.URL.Query().Get("status"))
		case http.MethodPost:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "13800000000", body["phone"])
		}
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":{}}`)
	})
	ctx := context.Background()

	q := map[string][]string{"page": {"2"}, "status": {"pending_payment"}}
	require.NoError(t, c.Get(ctx, "/api/v1/orders/list", q, nil))
	require.NoError(t, c.Post(ctx, "/api/v1/auth/send-sms", map[string]string{"phone": "13800000000"}, nil))
}

func TestDo_BusinessFailure(t *testing.T) {
	c, store, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":400,"message":"余额不足","data":null}`)
	})
	login(t, store, "tok")

	err := c.Post(context.Background(), "/api/v1/payments/balance-pay", map[string]int{"order_id": 1}, nil)
	require.Error(t, err)

	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, 400, be.Code)
	assert.Equal(t, "余额不足", be.Message)
	assert.Equal(t, []string{"余额不足"}, rec.messages())
	assert.True(t, store.IsAuthenticated(), "business failures leave the session alone")
}

func TestDo_BusinessFailureWithoutMessage(t *testing.T) {
	c, _, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":500,"data":null}`)
	})

	err := c.Get(context.Background(), "/x", nil, nil)
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, MsgRequestFailed, be.Message)
	assert.Equal(t, []string{MsgRequestFailed}, rec.messages())
}

func TestDo_UnauthorizedClearsSession(t *testing.T) {
	var calls int
	c, store, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
			return
		}
		_, present := r.Header["Authorization"]
		assert.False(t, present, "no bearer after the session expired")
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":null}`)
	})
	login(t, store, "stale")

	var handled int
	c.SetUnauthorizedHandler(func(context.Context) { handled++ })

	err := c.Get(context.Background(), "/api/v1/users/me", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusUnauthorized, serr.StatusCode)

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, 1, handled)
	assert.Equal(t, []string{MsgLoginRequired}, rec.messages())

	require.NoError(t, c.Get(context.Background(), "/api/v1/projects/list", nil, nil))
}

func TestDo_UnauthorizedWhileAnonymous(t *testing.T) {
	c, store, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"code":401,"message":"unauthorized"}`)
	})

	err := c.Post(context.Background(), "/api/v1/auth/sms-login",
		map[string]string{"phone": "13800000000", "code": "123456"}, nil)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, []string{MsgLoginRequired}, rec.messages())
}

func TestDo_HTTPErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"envelope message", `{"code":400,"message":"手机号已注册"}`, "手机号已注册"},
		{"detail string", `{"detail":"订单不存在"}`, "订单不存在"},
		{"validation list", `{"detail":[{"loc":["body","phone"],"msg":"field required"}]}`, "field required"},
		{"no message", `oops`, MsgHTTPError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, tt.body)
			})
			login(t, store, "tok")

			err := c.Get(context.Background(), "/x", nil, nil)
			var serr *StatusError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
			assert.False(t, IsUnauthorized(err))
			assert.Equal(t, []string{tt.want}, rec.messages())
			assert.True(t, store.IsAuthenticated())
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	rec := &recorder{}
	c, err := New(Config{BaseURL: srv.URL, Notifier: rec})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/x", nil, nil)
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, []string{MsgNetworkFailure}, rec.messages())
}

func TestDo_MalformedEnvelope(t *testing.T) {
	c, _, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":1}`)
	})

	err := c.Get(context.Background(), "/x", nil, nil)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
	assert.Equal(t, []string{MsgRequestFailed}, rec.messages())
}

func TestDo_DataDecodeFailureNotifies(t *testing.T) {
	c, _, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":{"id":"not-a-number"}}`)
	})

	var out struct {
		ID int64 `json:"id"`
	}
	err := c.Get(context.Background(), "/x", nil, &out)
	require.Error(t, err)
	assert.Equal(t, []string{MsgRequestFailed}, rec.messages())
}

func TestDo_UnauthorizedWithBearerOverrideKeepsSession(t *testing.T) {
	c, store, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"bad token"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":null}`)
	})
	login(t, store, "stored")

	var handled int
	c.SetUnauthorizedHandler(func(context.Context) { handled++ })

	err := c.Get(WithBearer(context.Background(), "fresh"), "/api/v1/users/me", nil, nil)
	assert.True(t, IsUnauthorized(err))
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "stored", store.Token())
	assert.Zero(t, handled)
	assert.Equal(t, []string{MsgLoginRequired}, rec.messages())
}

func TestDoRaw(t *testing.T) {
	c, _, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1/download") {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
			return
		}
		writeJSON(w, http.StatusOK, `{"code":404,"message":"报告未生成"}`)
	})
	ctx := context.Background()

	body, ct, err := c.DoRaw(ctx, http.MethodGet, "/api/v1/reports/1/download", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, "%PDF-1.4", string(body))

	_, _, err = c.DoRaw(ctx, http.MethodGet, "/api/v1/reports/2/download", nil)
	be, ok := AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, 404, be.Code)
	assert.Equal(t, []string{"报告未生成"}, rec.messages())
}

func TestMetrics_CanonicalPaths(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":null}`)
	})
	ctx := context.Background()
	require.NoError(t, c.Post(ctx, "/api/v1/orders/12/cancel", nil, nil))
	require.NoError(t, c.Post(ctx, "/api/v1/orders/13/cancel", nil, nil))

	got := testutil.ToFloat64(c.metrics.calls.WithLabelValues(http.MethodPost, "/api/v1/orders/:id/cancel", outcomeOK))
	assert.Equal(t, float64(2), got)

	assert.Equal(t, "/api/v1/favorites/check/:id", canonicalPath("/api/v1/favorites/check/99?x=1"))
	assert.Equal(t, "/api/v1/orders/list", canonicalPath("/api/v1/orders/list"))
}

func TestRateLimiter_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"code":200,"message":"ok","data":null}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, RateLimitRPS: 0.001, RateLimitBurst: 1})
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "/x", nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = c.Get(ctx, "/x", nil, nil)
	var terr *TransportError
	assert.True(t, errors.As(err, &terr))
}

func withRequestID(id string) context.Context {
	return logging.WithRequestID(context.Background(), id)
}
