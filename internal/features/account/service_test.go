package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wheelproject/wheel-backend/internal/common"
)

// memStorage is an in-memory Storage implementation for service tests.
type memStorage struct {
	accounts map[int64]*Account
}

func newMemStorage() *memStorage {
	return &memStorage{accounts: make(map[int64]*Account)}
}

func (m *memStorage) GetByID(_ context.Context, id int64) (*Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, common.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStorage) GetByReferralCode(_ context.Context, code string) (*Account, error) {
	for _, a := range m.accounts {
		if a.ReferralCode == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrAccountNotFound
}

func (m *memStorage) Create(_ context.Context, a *Account) error {
	cp := *a
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memStorage) UpdateAlias(_ context.Context, id int64, alias *string) error {
	m.accounts[id].TelegramAlias = alias
	return nil
}

func (m *memStorage) SetReferralCode(_ context.Context, id int64, code string) error {
	m.accounts[id].ReferralCode = code
	return nil
}

func (m *memStorage) ReferralCodeExists(_ context.Context, code string) (bool, error) {
	for _, a := range m.accounts {
		if a.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStorage) IncrementBonusSpins(_ context.Context, id int64) error {
	m.accounts[id].BonusSpins++
	return nil
}

func (m *memStorage) SetWalletAddress(_ context.Context, id int64, addr *string) error {
	m.accounts[id].WalletAddress = addr
	return nil
}

func (m *memStorage) CountReferred(_ context.Context, id int64) (int, error) {
	n := 0
	for _, a := range m.accounts {
		if a.ReferredBy != nil && *a.ReferredBy == id {
			n++
		}
	}
	return n, nil
}

func strPtr(s string) *string { return &s }

func TestGetOrCreateNewAccount(t *testing.T) {
	store := newMemStorage()
	svc := NewService(store)

	a, err := svc.GetOrCreate(context.Background(), 100, "Alice", strPtr("alice"), "")
	require.NoError(t, err)
	require.EqualValues(t, 100, a.ID)
	require.Equal(t, "Alice", a.Name)
	require.Len(t, a.ReferralCode, 8)
	require.Zero(t, a.BonusSpins)
	require.Nil(t, a.ReferredBy)
	require.Zero(t, a.Coins)
	require.Zero(t, a.NFT)
}

func TestGetOrCreateRefreshesAlias(t *testing.T) {
	store := newMemStorage()
	svc := NewService(store)

	_, err := svc.GetOrCreate(context.Background(), 100, "Alice", strPtr("alice"), "")
	require.NoError(t, err)

	a, err := svc.GetOrCreate(context.Background(), 100, "Alice", strPtr("alice_new"), "")
	require.NoError(t, err)
	require.NotNil(t, a.TelegramAlias)
	require.Equal(t, "alice_new", *a.TelegramAlias)
}

func TestGetOrCreateBackfillsReferralCode(t *testing.T) {
	store := newMemStorage()
	// a row created before referral codes existed
	store.accounts[7] = &Account{ID: 7, Name: "Oldtimer"}

	svc := NewService(store)
	a, err := svc.GetOrCreate(context.Background(), 7, "Oldtimer", nil, "")
	require.NoError(t, err)
	require.Len(t, a.ReferralCode, 8)
}

func TestReferralCreditsBothSides(t *testing.T) {
	store := newMemStorage()
	svc := NewService(store)

	referrer, err := svc.GetOrCreate(context.Background(), 1, "Referrer", nil, "")
	require.NoError(t, err)

	referred, err := svc.GetOrCreate(context.Background(), 2, "Referred", nil, referrer.ReferralCode)
	require.NoError(t, err)

	require.Equal(t, 1, referred.BonusSpins, "referred side starts with one bonus spin")
	require.NotNil(t, referred.ReferredBy)
	require.EqualValues(t, 1, *referred.ReferredBy)

	updatedReferrer, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, updatedReferrer.BonusSpins, "referrer is credited exactly once")

	n, err := svc.CountReferred(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestOwnCodeOnRepeatContactGrantsNothing(t *testing.T) {
	store := newMemStorage()
	svc := NewService(store)

	a, err := svc.GetOrCreate(context.Background(), 1, "Loner", nil, "")
	require.NoError(t, err)

	// reopening the mini-app through one's own referral link must not
	// grant anything to either side
	again, err := svc.GetOrCreate(context.Background(), 1, "Loner", nil, a.ReferralCode)
	require.NoError(t, err)
	require.Zero(t, again.BonusSpins)
	require.Nil(t, again.ReferredBy)

	n, err := svc.CountReferred(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, n)
}

// selfReferralStorage resolves a code to an account whose id equals the
// identity being created, without that account being loadable by id.
// This is the shape the pre-write self-referral comparison protects against.
type selfReferralStorage struct {
	*memStorage
	phantomID int64
	code      string
}

func (s *selfReferralStorage) GetByReferralCode(ctx context.Context, code string) (*Account, error) {
	if code == s.code {
		return &Account{ID: s.phantomID, Name: "Phantom", ReferralCode: s.code}, nil
	}
	return s.memStorage.GetByReferralCode(ctx, code)
}

func TestSelfReferralRejectedBeforeAnyWrite(t *testing.T) {
	store := &selfReferralStorage{memStorage: newMemStorage(), phantomID: 9, code: "OWNCODE9"}
	svc := NewService(store)

	a, err := svc.GetOrCreate(context.Background(), 9, "Bob", nil, "OWNCODE9")
	require.NoError(t, err, "self-referral is ignored silently, not surfaced")
	require.Zero(t, a.BonusSpins)
	require.Nil(t, a.ReferredBy)
}

func TestUnknownReferralCodeIgnored(t *testing.T) {
	svc := NewService(newMemStorage())

	b, err := svc.GetOrCreate(context.Background(), 2, "Bob", nil, "NOPE1234")
	require.NoError(t, err)
	require.Zero(t, b.BonusSpins)
	require.Nil(t, b.ReferredBy)
}

func TestWalletAddressValidation(t *testing.T) {
	store := newMemStorage()
	svc := NewService(store)

	_, err := svc.GetOrCreate(context.Background(), 1, "Alice", nil, "")
	require.NoError(t, err)

	tests := []struct {
		addr  string
		valid bool
	}{
		{strings.Repeat("1", 31), false},
		{strings.Repeat("1", 32), true},
		{strings.Repeat("1", 44), true},
		{strings.Repeat("1", 45), false},
		{strings.Repeat("0", 32), false}, // 0 is not base58
		{strings.Repeat("O", 32), false}, // neither is O
		{"5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1", true},
	}

	for _, tc := range tests {
		err := svc.SetWalletAddress(context.Background(), 1, strPtr(tc.addr))
		if tc.valid {
			require.NoError(t, err, "addr=%q", tc.addr)
		} else {
			require.ErrorIs(t, err, common.ErrInvalidWalletAddress, "addr=%q", tc.addr)
		}
	}

	// clearing the wallet is always allowed
	require.NoError(t, svc.SetWalletAddress(context.Background(), 1, nil))
	a, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, a.WalletAddress)
}

func TestResolveReferralUnknownCode(t *testing.T) {
	svc := NewService(newMemStorage())
	a, err := svc.ResolveReferral(context.Background(), "MISSING1")
	require.NoError(t, err)
	require.Nil(t, a)
}
