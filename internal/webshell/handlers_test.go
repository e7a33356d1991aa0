package webshell

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/session"
	"github.com/labmall/storefront/internal/shell"
)

func writeOK(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"code":200,"message":"success","data":` + data + `}`))
}

type upstream struct {
	mu          sync.Mutex
	seen        map[string]string
	requestIDs  []string
	calls       atomic.Int32
	expireToken atomic.Bool
}

func (u *upstream) record(r *http.Request) {
	u.calls.Add(1)
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.seen == nil {
		u.seen = map[string]string{}
	}
	u.seen[r.URL.Path] = r.Header.Get("Authorization")
	u.requestIDs = append(u.requestIDs, r.Header.Get("X-Request-Id"))
}

func (u *upstream) authFor(path string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.seen[path]
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/send-sms", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"code":"123456"}`)
	})
	mux.HandleFunc("POST /api/v1/auth/sms-login", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"access_token":"tok-1","token_type":"bearer","user_id":1}`)
	})
	mux.HandleFunc("GET /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"id":1,"phone":"13800000000","nickname":"tester"}`)
	})
	mux.HandleFunc("GET /api/v1/users/balance", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"balance":"500.00"}`)
	})
	mux.HandleFunc("GET /api/v1/orders/list", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		if u.expireToken.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"token expired"}`))
			return
		}
		writeOK(w, `{"items":[{"id":5,"order_no":"LM5","status":"pending_payment","total_fee":"80.00"}],"total":1}`)
	})
	mux.HandleFunc("GET /api/v1/projects/7", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"id":7,"name":"XRD","current_price":"80.00"}`)
	})
	mux.HandleFunc("GET /api/v1/projects/99", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":404,"message":"项目不存在","data":null}`))
	})
	mux.HandleFunc("GET /api/v1/addresses/list", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `[{"id":1,"receiver_name":"张三"},{"id":2,"receiver_name":"李四","is_default":true}]`)
	})
	mux.HandleFunc("GET /api/v1/coupons/available", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `[]`)
	})
	mux.HandleFunc("POST /api/v1/orders/create", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"id":5,"order_no":"LM5","total_fee":"80.00"}`)
	})
	mux.HandleFunc("POST /api/v1/payments/balance-pay", func(w http.ResponseWriter, r *http.Request) {
		u.record(r)
		writeOK(w, `{"status":"paid"}`)
	})
	return mux
}

type fixture struct {
	up     *upstream
	store  *session.Store
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	up := &upstream{}
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)

	notes := shell.NewNotifications(0)
	store := session.NewStore(session.NewMemoryStorage())
	c, err := client.New(client.Config{BaseURL: srv.URL, Session: store, Notifier: notes})
	require.NoError(t, err)

	sh := shell.New(shell.Options{API: api.New(c), Session: store, Notifier: notes, Policy: shell.PolicyReload})
	c.SetUnauthorizedHandler(sh.HandleUnauthorized)
	t.Cleanup(sh.Close)

	r := NewRouter(Deps{
		ServiceName:   "storefront-web",
		Version:       "1.0.0",
		Shell:         sh,
		Session:       store,
		Client:        c,
		Notifications: notes,
	})
	return &fixture{up: up, store: store, router: r}
}

func (f *fixture) do(t *testing.T, method, path string, body any, header ...string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	out := map[string]any{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr.Code, out
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	code, body := f.do(t, http.MethodPost, "/shell/login", gin.H{"phone": "13800000000", "code": "123456"})
	require.Equal(t, http.StatusOK, code, body)
	require.True(t, f.store.IsAuthenticated())
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "storefront-web", resp.Service)
	assert.Equal(t, "anonymous", resp.Session)
	assert.Equal(t, "disabled", resp.DB)

	code, _ := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRequestIDReachesBackend(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodPost, "/shell/sms", gin.H{"phone": "13800000000"}, "X-Request-Id", "rid-42")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "123456", body["dev_code"])

	f.up.mu.Lock()
	defer f.up.mu.Unlock()
	assert.Equal(t, []string{"rid-42"}, f.up.requestIDs)
}

func TestSendSMS_InvalidPhoneStaysLocal(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodPost, "/shell/sms", gin.H{"phone": "1380"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "phone", body["field"])
	assert.Zero(t, f.up.calls.Load())

	_, notes := f.do(t, http.MethodGet, "/shell/notifications", nil)
	items := notes["notifications"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "请输入正确的手机号", items[0].(map[string]any)["message"])

	_, notes = f.do(t, http.MethodGet, "/shell/notifications", nil)
	assert.Empty(t, notes["notifications"])
}

func TestProtectedViewOpensLogin(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodGet, "/views/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, false, body["ok"])
	assert.Zero(t, f.up.calls.Load())

	_, st := f.do(t, http.MethodGet, "/shell/state", nil)
	modals := st["state"].(map[string]any)["modals"].(map[string]any)
	assert.Equal(t, true, modals["login"])
}

func TestLoginThenUnauthorizedReloads(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	code, body := f.do(t, http.MethodGet, "/views/orders?status=pending_payment", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Bearer tok-1", f.up.authFor("/api/v1/orders/list"))

	f.up.expireToken.Store(true)
	code, _ = f.do(t, http.MethodGet, "/views/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, f.store.IsAuthenticated())

	_, st := f.do(t, http.MethodGet, "/shell/state", nil)
	state := st["state"].(map[string]any)
	assert.Equal(t, false, state["authenticated"])
	assert.Equal(t, "home", state["active_view"])
}

func TestBookingAndBalancePayment(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	code, body := f.do(t, http.MethodPost, "/shell/booking/7", nil)
	require.Equal(t, http.StatusOK, code, body)
	booking := body["booking"].(map[string]any)
	assert.EqualValues(t, 2, booking["address_id"])

	code, body = f.do(t, http.MethodPost, "/shell/booking/submit", gin.H{"sample_name": " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "sample_name", body["field"])

	code, body = f.do(t, http.MethodPost, "/shell/booking/submit", gin.H{"sample_name": "粉末", "quantity": 1})
	require.Equal(t, http.StatusCreated, code, body)
	modals := body["state"].(map[string]any)["modals"].(map[string]any)
	assert.Equal(t, true, modals["payment"])

	code, body = f.do(t, http.MethodPost, "/shell/payment/submit", gin.H{"method": "balance"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["payment"].(map[string]any)["paid"])

	code, _ = f.do(t, http.MethodPost, "/shell/payment/submit", gin.H{"method": "balance"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestBusinessErrorMapsTo422(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodGet, "/views/project?id=99", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "项目不存在", body["error"])
	assert.EqualValues(t, 404, body["code"])
}

func TestBadParams(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodGet, "/views/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(t, http.MethodGet, "/views/project?id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/shell/booking/x", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/shell/navigate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/views/project?id=7", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `storefront_api_calls_total{method="GET",outcome="ok",path="/api/v1/projects/:id"}`)
}
