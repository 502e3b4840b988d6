package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aadyanvi/wealth-admin/internal/forms"
)

// ErrUnauthorized is returned when the server rejects the session.
var ErrUnauthorized = errors.New("not authenticated")

// Client talks to the admin API. The session cookie lives in an internal
// cookie jar, so callers never see or handle the credential.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("build cookie jar: %w", err)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func checkStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status >= 300:
		return fmt.Errorf("server answered %d", status)
	}
	return nil
}

// CheckAuth probes the session. Both answers arrive as 200; the boolean in
// the body is the verdict.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/checkAuth", nil, &out)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("auth probe answered %d", status)
	}
	return out.Authenticated, nil
}

// Login exchanges credentials for a session cookie.
func (c *Client) Login(ctx context.Context, email, password string) error {
	status, err := c.do(ctx, http.MethodPost, "/api/v1/admin/login",
		map[string]string{"email": email, "password": password}, nil)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	return checkStatus(status)
}

// Logout revokes the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	status, err := c.do(ctx, http.MethodPost, "/api/v1/admin/logout", nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(status)
}

// UserSummary is the investor record as listed by the dashboard.
type UserSummary struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	MobileNumber      string `json:"mobileNumber"`
	ReferralCode      string `json:"referralCode"`
	VerificationState string `json:"verificationState"`
	AvailableBalance  string `json:"availableBalance"`
	CreatedAt         string `json:"createdAt"`
}

// Users fetches all investors.
func (c *Client) Users(ctx context.Context) ([]UserSummary, error) {
	var out struct {
		Users []UserSummary `json:"users"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/get-users", nil, &out)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// VerifyUser records a KYC decision: status "approve" or "reject".
func (c *Client) VerifyUser(ctx context.Context, userID, status string) error {
	code, err := c.do(ctx, http.MethodPost, "/api/v1/admin/verify-user",
		map[string]string{"userId": userID, "status": status}, nil)
	if err != nil {
		return err
	}
	return checkStatus(code)
}

// Plan is an investment plan as served by the API.
type Plan struct {
	ID             string  `json:"id"`
	ProductName    string  `json:"productName"`
	ROIAAR         float64 `json:"roiAAR"`
	ROIAMR         float64 `json:"roiAMR"`
	MinInvestment  float64 `json:"minInvestment"`
	InvestmentTerm int     `json:"investmentTerm"`
	ProductType    string  `json:"productType"`
	Status         string  `json:"status"`
	TotalGain      float64 `json:"totalGain"`
	MaturityValue  float64 `json:"maturityValue"`
}

// Plans fetches every investment plan.
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	var out struct {
		Plans []Plan `json:"plans"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/get-investment-plans", nil, &out)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}
	return out.Plans, nil
}

// Transaction is a pending fund request as served by the API.
type Transaction struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (c *Client) pendingTransactions(ctx context.Context, path string) ([]Transaction, error) {
	var out struct {
		Transactions []Transaction `json:"transactions"`
	}
	status, err := c.do(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// PendingDeposits fetches deposit requests awaiting review.
func (c *Client) PendingDeposits(ctx context.Context) ([]Transaction, error) {
	return c.pendingTransactions(ctx, "/api/v1/admin/get-deposit-transactions")
}

// PendingWithdrawals fetches withdrawal requests awaiting review.
func (c *Client) PendingWithdrawals(ctx context.Context) ([]Transaction, error) {
	return c.pendingTransactions(ctx, "/api/v1/admin/get-withdrawal-transactions")
}

// DecideDeposit approves or rejects a deposit: status "approved" or "reject".
func (c *Client) DecideDeposit(ctx context.Context, txID, status string) error {
	code, err := c.do(ctx, http.MethodPost, "/api/v1/admin/add-funds",
		map[string]string{"transactionsId": txID, "status": status}, nil)
	if err != nil {
		return err
	}
	return checkStatus(code)
}

// DecideWithdrawal approves or rejects a withdrawal: status "approved" or "reject".
func (c *Client) DecideWithdrawal(ctx context.Context, txID, status string) error {
	code, err := c.do(ctx, http.MethodPost, "/api/v1/admin/withdraw-funds",
		map[string]string{"transactionsId": txID, "status": status}, nil)
	if err != nil {
		return err
	}
	return checkStatus(code)
}

// DashboardStats bundles the five dashboard aggregates.
type DashboardStats struct {
	AUM             float64
	ActiveInvestors int
	UnusedFunds     float64
	TotalPlans      int
	PendingRequests int
}

// Stats fetches the dashboard aggregates one endpoint at a time, matching
// how the dashboard loads its cards.
func (c *Client) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	var aum struct {
		Assets struct {
			Sum struct {
				InvestedAmount float64 `json:"investedAmount"`
			} `json:"_sum"`
		} `json:"assets"`
	}
	if status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/aum", nil, &aum); err != nil {
		return stats, err
	} else if err := checkStatus(status); err != nil {
		return stats, err
	}
	stats.AUM = aum.Assets.Sum.InvestedAmount

	var investors struct {
		Count int `json:"count"`
	}
	if status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/activeInvestors", nil, &investors); err != nil {
		return stats, err
	} else if err := checkStatus(status); err != nil {
		return stats, err
	}
	stats.ActiveInvestors = investors.Count

	var funds struct {
		Funds struct {
			Sum struct {
				AvailableBalance float64 `json:"availableBalance"`
			} `json:"_sum"`
		} `json:"funds"`
	}
	if status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/getUnusedFunds", nil, &funds); err != nil {
		return stats, err
	} else if err := checkStatus(status); err != nil {
		return stats, err
	}
	stats.UnusedFunds = funds.Funds.Sum.AvailableBalance

	var plans struct {
		TotalPlans int `json:"totalPlans"`
	}
	if status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/activePlans", nil, &plans); err != nil {
		return stats, err
	} else if err := checkStatus(status); err != nil {
		return stats, err
	}
	stats.TotalPlans = plans.TotalPlans

	var pending struct {
		TotalPending int `json:"totalPending"`
	}
	if status, err := c.do(ctx, http.MethodGet, "/api/v1/admin/pendingRequests", nil, &pending); err != nil {
		return stats, err
	} else if err := checkStatus(status); err != nil {
		return stats, err
	}
	stats.PendingRequests = pending.TotalPending

	return stats, nil
}

// Upload sends a KYC document and returns the public URL to attach to the
// investor payload.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/documents/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.URL, nil
}

// createUser posts the normalized payload. Used by SubmitUser after the
// local gate and validation have passed.
func (c *Client) createUser(ctx context.Context, payload forms.CreateUserPayload) (int, map[string]string, error) {
	var out struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	status, err := c.do(ctx, http.MethodPost, "/api/v1/admin/create-user", payload, &out)
	if err != nil {
		return 0, nil, err
	}
	return status, out.Errors, nil
}
