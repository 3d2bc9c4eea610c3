package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// cmd/seed が入れるユーザーでログインする前提。
// サーバーが起動していなければskipする。
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("url.Parse failed: %v", err)
	}
	host := u.Host
	if u.Port() == "" {
		host = net.JoinHostPort(u.Hostname(), "80")
	}

	//サーバー未起動ならe2e全体をskip
	conn, err := net.DialTimeout("tcp", host, 500*time.Millisecond)
	if err != nil {
		t.Skipf("server not reachable at %s: %v", baseURL, err)
	}
	_ = conn.Close()

	return &TestClient{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	TypeUser string `json:"type_user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success     bool    `json:"success"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        UserDTO `json:"user"`
}

type Order struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	RequestorName string `json:"requestor_name"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Status        string `json:"status"`
}

type OrderEnvelope struct {
	Message string `json:"message"`
	Data    Order  `json:"data"`
}

type OrderListEnvelope struct {
	Message string  `json:"message"`
	Data    []Order `json:"data"`
}

type Notification struct {
	ID                  int64  `json:"id"`
	OrderID             int64  `json:"order_id"`
	UserID              int64  `json:"user_id"`
	NotificationMessage string `json:"notification_message"`
	Viewed              bool   `json:"viewed"`
}

type NotificationListEnvelope struct {
	Data []Notification `json:"data"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeMessage(t *testing.T, body []byte) MessageResponse {
	t.Helper()
	var v MessageResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(MessageResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeOrder(t *testing.T, body []byte) Order {
	t.Helper()
	var v OrderEnvelope
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(OrderEnvelope) failed: %v body=%s", err, string(body))
	}
	return v.Data
}

func mustDecodeOrders(t *testing.T, body []byte) []Order {
	t.Helper()
	var v OrderListEnvelope
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(OrderListEnvelope) failed: %v body=%s", err, string(body))
	}
	return v.Data
}

func mustDecodeNotifications(t *testing.T, body []byte) []Notification {
	t.Helper()
	var v NotificationListEnvelope
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(NotificationListEnvelope) failed: %v body=%s", err, string(body))
	}
	return v.Data
}

func toStr(v int64) string {
	return strconv.FormatInt(v, 10)
}

func login(t *testing.T, c *TestClient, ctx context.Context, email string, password string) LoginResponse {
	t.Helper()

	req := LoginRequest{Email: email, Password: password}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(LoginRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/login", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	var out LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("json.Unmarshal(LoginResponse) failed: %v body=%s", err, string(body))
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		t.Fatalf("access token is empty: body=%s", string(body))
	}
	return out
}

// seedの一般ユーザー
func defaultLogin(t *testing.T, c *TestClient, ctx context.Context) LoginResponse {
	t.Helper()
	return login(t, c, ctx, "default@teste.com", "1234")
}

// seedの管理者
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) LoginResponse {
	t.Helper()
	return login(t, c, ctx, "admin@teste.com", "1234")
}

// 注文を1件作って返す
func createOrder(t *testing.T, c *TestClient, ctx context.Context, access string, destination string) Order {
	t.Helper()

	req := map[string]string{
		"requestor_name": "E2E Tester",
		"destination":    destination,
		"departure_date": "2026-09-01",
		"return_date":    "2026-09-10",
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(create order) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/orders", access, b)
	requireStatus(t, resp, http.StatusCreated, body)

	o := mustDecodeOrder(t, body)
	if o.ID <= 0 {
		t.Fatalf("invalid order id: %d body=%s", o.ID, string(body))
	}
	return o
}

func updateStatus(t *testing.T, c *TestClient, ctx context.Context, access string, orderID int64, status string, wantStatus int) MessageResponse {
	t.Helper()

	b, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		t.Fatalf("json.Marshal(status) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPatch, "/orders/"+toStr(orderID)+"/status", access, b)
	requireStatus(t, resp, wantStatus, body)
	return mustDecodeMessage(t, body)
}
