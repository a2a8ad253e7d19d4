package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"winespace/internal/actions"
	"winespace/internal/auth"
	"winespace/internal/config"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	notificationRepository "winespace/internal/repository/notification"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsers struct {
	byId map[string]model.User
	n    int
}

func (m *memUsers) Create(_ context.Context, u model.User) (model.User, error) {
	for _, existing := range m.byId {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.User{}, fmt.Errorf("create user: %w", ierr.AlreadyExists)
		}
	}
	m.n++
	u.SetIdIfEmpty(fmt.Sprintf("user-%d", m.n))
	m.byId[u.Id] = u
	return u, nil
}

func (m *memUsers) GetById(_ context.Context, id string) (*model.User, error) {
	u, ok := m.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.byId {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ierr.NotFound
}

func (m *memUsers) List(_ context.Context, role model.Role) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.byId {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) Update(context.Context, string, model.UserUpdate) error { return nil }

func (m *memUsers) SetStatus(_ context.Context, id string, status model.UserStatus) error {
	u, ok := m.byId[id]
	if !ok {
		return ierr.NotFound
	}
	u.Status = status
	m.byId[id] = u
	return nil
}

func (m *memUsers) SetCustomerTier(context.Context, string, string, model.Tier) error { return nil }

type memProducts struct{ items []model.Product }

func (m *memProducts) Create(_ context.Context, p model.Product) (model.Product, error) {
	m.items = append(m.items, p)
	return p, nil
}

func (m *memProducts) CreateMany(ctx context.Context, data []model.Product) ([]model.Product, error) {
	for _, p := range data {
		_, _ = m.Create(ctx, p)
	}
	return data, nil
}

func (m *memProducts) GetById(_ context.Context, id string) (*model.Product, error) {
	for _, p := range m.items {
		if p.Id == id {
			return &p, nil
		}
	}
	return nil, ierr.NotFound
}

func (m *memProducts) GetByIds(_ context.Context, ids []string) (map[string]model.Product, error) {
	out := map[string]model.Product{}
	for _, id := range ids {
		if p, err := m.GetById(context.Background(), id); err == nil {
			out[id] = *p
		}
	}
	return out, nil
}

func (m *memProducts) List(_ context.Context, f model.ProductFilter) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.items {
		if f.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) Update(context.Context, string, model.ProductUpdate) error { return nil }

func (m *memProducts) Delete(context.Context, string) error { return nil }

type memNotifications struct{ queued []model.Notification }

func (m *memNotifications) Create(_ context.Context, n model.Notification) (model.Notification, error) {
	m.queued = append(m.queued, n)
	return n, nil
}

func (m *memNotifications) NotifyOnAdded(context.Context) <-chan notificationRepository.NotificationEvent {
	return make(chan notificationRepository.NotificationEvent)
}

func (m *memNotifications) MarkSent(context.Context, string) error { return nil }

func (m *memNotifications) MarkFailed(context.Context, string, error) error { return nil }

type testServer struct {
	router *gin.Engine
	users  *memUsers
	outbox *memNotifications
	tokens auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := &memUsers{byId: map[string]model.User{}}
	products := &memProducts{items: []model.Product{
		{Meta: model.Meta{Id: "p1"}, Name: "Screw caps", SupplierId: "s1", Active: true},
		{Meta: model.Meta{Id: "p2"}, Name: "Old labels", SupplierId: "s1"},
	}}
	outbox := &memNotifications{}
	a := actions.New(actions.Repositories{Users: users, Products: products, Notifications: outbox}, pagecache.Noop{})
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	srv := New(a, tokens, config.HTTP{CookieName: "session", TokenTTL: time.Hour})
	return &testServer{router: srv.Router(), users: users, outbox: outbox, tokens: tokens}
}

func (ts *testServer) addUser(t *testing.T, id, email, password string, role model.Role, status model.UserStatus) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := model.User{Meta: model.Meta{Id: id}, Email: email, PasswordHash: hash, Role: role, Status: status}
	ts.users.byId[id] = u
	token, err := ts.tokens.Issue(u, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) actions.Result {
	t.Helper()
	var res actions.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return res
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSessionRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/orders", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no session: status = %d", w.Code)
	}
	if msg := decode(t, w).Message; msg != "please sign in" {
		t.Errorf("message = %q", msg)
	}

	w = ts.do(http.MethodGet, "/api/orders", nil, "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d", w.Code)
	}
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)
	producer := ts.addUser(t, "prod", "prod@example.co.za", "password1", model.RoleProducer, model.UserStatusActive)
	admin := ts.addUser(t, "admin", "admin@example.co.za", "password1", model.RoleAdmin, model.UserStatusActive)

	if w := ts.do(http.MethodGet, "/api/admin/users", nil, producer); w.Code != http.StatusForbidden {
		t.Errorf("producer: status = %d", w.Code)
	}

	w := ts.do(http.MethodGet, "/api/admin/users?role=producer", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = ts.do(http.MethodPut, "/api/admin/users/prod/status", map[string]string{"status": "suspended"}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("set status: %d, body = %s", w.Code, w.Body.String())
	}
	if got := ts.users.byId["prod"].Status; got != model.UserStatusSuspended {
		t.Errorf("status = %s", got)
	}
	if len(ts.outbox.queued) != 1 || ts.outbox.queued[0].To != "prod@example.co.za" {
		t.Errorf("queued = %+v", ts.outbox.queued)
	}
}

func TestSuspendedTokenRefused(t *testing.T) {
	ts := newTestServer(t)
	producer := ts.addUser(t, "prod", "prod@example.co.za", "password1", model.RoleProducer, model.UserStatusActive)
	admin := ts.addUser(t, "admin", "admin@example.co.za", "password1", model.RoleAdmin, model.UserStatusActive)

	if w := ts.do(http.MethodGet, "/api/me", nil, producer); w.Code != http.StatusOK {
		t.Fatalf("before suspension: status = %d", w.Code)
	}

	w := ts.do(http.MethodPut, "/api/admin/users/prod/status", map[string]string{"status": "suspended"}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("set status: %d, body = %s", w.Code, w.Body.String())
	}

	for _, path := range []string{"/api/me", "/api/orders"} {
		w = ts.do(http.MethodGet, path, nil, producer)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d", path, w.Code)
			continue
		}
		if msg := decode(t, w).Message; msg != "your account is suspended" {
			t.Errorf("%s: message = %q", path, msg)
		}
	}
	w = ts.do(http.MethodPost, "/api/orders/checkout", map[string]interface{}{
		"lines": []map[string]interface{}{{"productId": "p1", "quantity": 1}},
	}, producer)
	if w.Code != http.StatusForbidden {
		t.Errorf("checkout: status = %d", w.Code)
	}

	// public pages and logout still work
	if w := ts.do(http.MethodGet, "/api/products", nil, producer); w.Code != http.StatusOK {
		t.Errorf("products: status = %d", w.Code)
	}
	if w := ts.do(http.MethodPost, "/api/auth/logout", nil, producer); w.Code != http.StatusOK {
		t.Errorf("logout: status = %d", w.Code)
	}
}

func TestRoleFromStoredUser(t *testing.T) {
	ts := newTestServer(t)
	token := ts.addUser(t, "former", "former@example.co.za", "password1", model.RoleAdmin, model.UserStatusActive)

	u := ts.users.byId["former"]
	u.Role = model.RoleProducer
	ts.users.byId["former"] = u

	if w := ts.do(http.MethodGet, "/api/admin/users", nil, token); w.Code != http.StatusForbidden {
		t.Errorf("demoted admin: status = %d", w.Code)
	}

	delete(ts.users.byId, "former")
	if w := ts.do(http.MethodGet, "/api/me", nil, token); w.Code != http.StatusUnauthorized {
		t.Errorf("deleted user: status = %d", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":       "not-an-email",
		"password":    "short",
		"name":        "Anna",
		"companyName": "Klein Estate",
		"role":        "producer",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	res := decode(t, w)
	want := "email must be a valid email address; password must be at least 8"
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
	fields, _ := res.Data.(map[string]interface{})
	if fields["password"] != "password must be at least 8" {
		t.Errorf("fields = %v", fields)
	}
}

func TestRegisterRole(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":       "ops@example.co.za",
		"password":    "password1",
		"name":        "Ops",
		"companyName": "Ops",
		"role":        "admin",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := decode(t, w).Message; msg != "role must be one of: producer, supplier, service_provider" {
		t.Errorf("message = %q", msg)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]string{
		"email":       "anna@example.co.za",
		"password":    "password1",
		"name":        "Anna",
		"companyName": "Klein Estate",
		"role":        "producer",
	}
	if w := ts.do(http.MethodPost, "/api/auth/register", body, ""); w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	if w := ts.do(http.MethodPost, "/api/auth/register", body, ""); w.Code != http.StatusConflict {
		t.Errorf("duplicate register: %d", w.Code)
	}

	w := ts.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "anna@example.co.za", "password": "wrong-one"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", w.Code)
	}
	if msg := decode(t, w).Message; msg != "invalid email or password" {
		t.Errorf("message = %q", msg)
	}

	w = ts.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "anna@example.co.za", "password": "password1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}

	// the cookie alone is enough to reach private routes
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(cookie)
	me := httptest.NewRecorder()
	ts.router.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("me: %d %s", me.Code, me.Body.String())
	}
	if !strings.Contains(me.Body.String(), "anna@example.co.za") || strings.Contains(me.Body.String(), "passwordHash") {
		t.Errorf("me body = %s", me.Body.String())
	}
}

func TestLoginPending(t *testing.T) {
	ts := newTestServer(t)
	ts.addUser(t, "sup", "sup@example.co.za", "password1", model.RoleSupplier, model.UserStatusPending)

	w := ts.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "sup@example.co.za", "password": "password1"}, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := decode(t, w).Message; msg != "your account is awaiting approval" {
		t.Errorf("message = %q", msg)
	}
}

func TestPublicProducts(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/products", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data []model.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data) != 1 || body.Data[0].Id != "p1" {
		t.Errorf("products = %+v", body.Data)
	}

	if w := ts.do(http.MethodGet, "/api/products/p2", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("inactive product: %d", w.Code)
	}
}

func TestCheckoutNeedsLines(t *testing.T) {
	ts := newTestServer(t)
	producer := ts.addUser(t, "prod", "prod@example.co.za", "password1", model.RoleProducer, model.UserStatusActive)

	w := ts.do(http.MethodPost, "/api/orders/checkout", map[string]interface{}{"lines": []interface{}{}}, producer)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := decode(t, w).Message; msg != "lines needs at least 1 item(s)" {
		t.Errorf("message = %q", msg)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{fmt.Errorf("order %w", ierr.NotFound), http.StatusNotFound, "order not found"},
		{ierr.Forbiddenf("only the supplier can do this"), http.StatusForbidden, "only the supplier can do this"},
		{ierr.Invalidf("quantity must be positive"), http.StatusBadRequest, "quantity must be positive"},
		{ierr.Unauthorized, http.StatusUnauthorized, "please sign in"},
		{fmt.Errorf("an account with this email %w", ierr.AlreadyExists), http.StatusConflict, "an account with this email already exists"},
		{fmt.Errorf("firestore: deadline exceeded"), http.StatusInternalServerError, internalErrorMessage},
	}
	for _, tt := range tests {
		status, msg := statusOf(tt.err)
		if status != tt.status || msg != tt.msg {
			t.Errorf("statusOf(%v) = %d %q, want %d %q", tt.err, status, msg, tt.status, tt.msg)
		}
	}
}
