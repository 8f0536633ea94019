package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wheelproject/wheel-backend/internal/common"
	"github.com/wheelproject/wheel-backend/internal/config"
	"github.com/wheelproject/wheel-backend/internal/features/account"
	"github.com/wheelproject/wheel-backend/internal/features/wheel"
)

// memBackend implements account.Storage and wheel.Store over one shared
// map, so the real services run end to end without PostgreSQL.
type memBackend struct {
	mu       sync.Mutex
	accounts map[int64]*account.Account
	prizes   []*wheel.Prize
}

func newMemBackend() *memBackend {
	return &memBackend{accounts: make(map[int64]*account.Account)}
}

func (m *memBackend) GetByID(_ context.Context, id int64) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, common.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memBackend) GetByReferralCode(_ context.Context, code string) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ReferralCode == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrAccountNotFound
}

func (m *memBackend) Create(_ context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memBackend) UpdateAlias(_ context.Context, id int64, alias *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id].TelegramAlias = alias
	return nil
}

func (m *memBackend) SetReferralCode(_ context.Context, id int64, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id].ReferralCode = code
	return nil
}

func (m *memBackend) ReferralCodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBackend) IncrementBonusSpins(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id].BonusSpins++
	return nil
}

func (m *memBackend) SetWalletAddress(_ context.Context, id int64, addr *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[id].WalletAddress = addr
	return nil
}

func (m *memBackend) CountReferred(_ context.Context, id int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.accounts {
		if a.ReferredBy != nil && *a.ReferredBy == id {
			n++
		}
	}
	return n, nil
}

func (m *memBackend) ConsumeBonusSpin(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.accounts[id]
	if a.BonusSpins <= 0 {
		return fmt.Errorf("no bonus spins left for account %d", id)
	}
	a.BonusSpins--
	return nil
}

func (m *memBackend) AwardPrize(_ context.Context, id int64, outcome wheel.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.accounts[id]
	switch outcome.Kind() {
	case wheel.KindCoins:
		amount, _ := outcome.CoinAmount()
		a.Coins += amount
	case wheel.KindNFT:
		a.NFT++
	}
	now := time.Now()
	a.LastSpin = &now

	p := &wheel.Prize{AccountID: id, PrizeType: outcome.Kind(), CreatedAt: now}
	if amount, ok := outcome.CoinAmount(); ok {
		p.Amount = &amount
	}
	m.prizes = append(m.prizes, p)
	return nil
}

func (m *memBackend) ListPrizes(_ context.Context, id int64, limit int) ([]*wheel.Prize, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*wheel.Prize
	for i := len(m.prizes) - 1; i >= 0 && len(out) < limit; i-- {
		if m.prizes[i].AccountID == id {
			out = append(out, m.prizes[i])
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) (*Server, *memBackend) {
	t.Helper()
	backend := newMemBackend()
	accounts := account.NewService(backend)
	spins := wheel.NewService(accounts, backend)
	cfg := &config.Config{
		TelegramBotUsername: "wheelbot",
		HTTPAllowedOrigin:   "http://localhost:3000",
		HTTPPort:            3001,
		AppEnv:              "production",
	}
	return New(cfg, accounts, spins), backend
}

func doRequest(t *testing.T, srv *Server, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func initDataBody(userID int64, extra map[string]any) map[string]any {
	body := map[string]any{
		"initData": map[string]any{
			"user": map[string]any{
				"id":         userID,
				"first_name": "Ada",
				"username":   "ada",
			},
		},
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func TestMissingInitDataRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	w, resp := doRequest(t, srv, "/api/wheel/get", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, false, resp["ok"])
	require.Equal(t, "Invalid request: No initData provided", resp["err"])
}

func TestGetRegistersAndReportsState(t *testing.T) {
	srv, backend := newTestServer(t)

	w, resp := doRequest(t, srv, "/api/wheel/get", initDataBody(42, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["ok"])
	require.Equal(t, true, resp["canSpin"])
	require.NotEmpty(t, resp["referralCode"])

	botConfig := resp["botConfig"].(map[string]any)
	require.Equal(t, "wheelbot", botConfig["botUsername"])

	balances := resp["balances"].(map[string]any)
	require.EqualValues(t, 0, balances["coins"])
	require.EqualValues(t, 0, balances["nft"])

	a, err := backend.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Ada", a.Name)
}

func TestGetReportsCooldownRemainder(t *testing.T) {
	srv, backend := newTestServer(t)
	last := time.Now().Add(-1 * time.Hour)
	require.NoError(t, backend.Create(context.Background(), &account.Account{
		ID: 42, Name: "Ada", ReferralCode: "CODE0042", LastSpin: &last,
	}))

	_, resp := doRequest(t, srv, "/api/wheel/get", initDataBody(42, nil))
	require.Equal(t, false, resp["canSpin"])

	remain := resp["timeUntilNextSpin"].(map[string]any)
	require.EqualValues(t, 22, remain["hours"])
	require.EqualValues(t, 59, remain["minutes"])
}

func TestGetAppliesReferralOnFirstContact(t *testing.T) {
	srv, backend := newTestServer(t)
	require.NoError(t, backend.Create(context.Background(), &account.Account{
		ID: 1, Name: "Referrer", ReferralCode: "FRIEND01",
	}))

	_, resp := doRequest(t, srv, "/api/wheel/get", initDataBody(42, map[string]any{
		"referralCode": "FRIEND01",
	}))
	require.Equal(t, true, resp["ok"])
	require.EqualValues(t, 1, resp["bonusSpins"])

	referrer, err := backend.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, referrer.BonusSpins)
}

func TestSetWalletRejectsBadFormat(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, addr := range []string{"tooshort", "0invalidcharacterbutlongenough0000000"} {
		w, resp := doRequest(t, srv, "/api/wheel/set-wallet", initDataBody(42, map[string]any{
			"walletAddress": addr,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, false, resp["ok"], "address %q must be rejected", addr)
		require.Equal(t, "Invalid wallet address format", resp["err"])
	}
}

func TestSetWalletStoresAddress(t *testing.T) {
	srv, backend := newTestServer(t)
	addr := "4Nd1mY5c6vTPYqkDmrqrtcgBPeqSg1BBosg9MsXWLpgF"

	_, resp := doRequest(t, srv, "/api/wheel/set-wallet", initDataBody(42, map[string]any{
		"walletAddress": addr,
	}))
	require.Equal(t, true, resp["ok"])

	a, err := backend.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, a.WalletAddress)
	require.Equal(t, addr, *a.WalletAddress)
}

func TestRollAwardsPrize(t *testing.T) {
	srv, backend := newTestServer(t)

	w, resp := doRequest(t, srv, "/api/wheel/roll", initDataBody(42, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["ok"])

	sector := resp["result"].(float64)
	require.GreaterOrEqual(t, sector, 1.0)
	require.LessOrEqual(t, sector, 12.0)
	require.Contains(t, []any{"COINS", "NFT", "ZERO"}, resp["prizeType"])
	require.Equal(t, false, resp["usedBonusSpin"])

	require.Len(t, backend.prizes, 1)
	a, err := backend.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, a.LastSpin)
}

func TestRollDuringCooldownRejected(t *testing.T) {
	srv, backend := newTestServer(t)
	last := time.Now().Add(-1 * time.Hour)
	require.NoError(t, backend.Create(context.Background(), &account.Account{
		ID: 42, Name: "Ada", ReferralCode: "CODE0042", LastSpin: &last,
	}))

	w, resp := doRequest(t, srv, "/api/wheel/roll", initDataBody(42, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, resp["ok"])
	require.Equal(t, "Must wait 24 hours between spins or invite friends for bonus spins", resp["err"])
	require.Empty(t, backend.prizes)
}

func TestRollConsumesBonusSpin(t *testing.T) {
	srv, backend := newTestServer(t)
	last := time.Now().Add(-1 * time.Hour)
	require.NoError(t, backend.Create(context.Background(), &account.Account{
		ID: 42, Name: "Ada", ReferralCode: "CODE0042", LastSpin: &last, BonusSpins: 1,
	}))

	_, resp := doRequest(t, srv, "/api/wheel/roll", initDataBody(42, nil))
	require.Equal(t, true, resp["ok"])
	require.Equal(t, true, resp["usedBonusSpin"])

	a, err := backend.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, 0, a.BonusSpins)
}
