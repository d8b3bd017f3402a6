package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

// --- users ---

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	getErr  error
	linkErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[string]*models.User)}
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return errs.NewAlreadyExistsError("email already registered")
		}
	}
	cp := *u
	f.byID[u.UID] = &cp
	return nil
}

func (f *fakeUsers) GetUser(_ context.Context, uid string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[uid]
	if !ok {
		return nil, errs.NewNotFoundError("user not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.NewNotFoundError("user not found")
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetUserByAPIKeyHash(_ context.Context, hash string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.APIKeyHash == hash })
}

func (f *fakeUsers) GetUserByExternalID(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ExternalID != "" && u.ExternalID == id })
}

func (f *fakeUsers) SetAPIKey(_ context.Context, uid, hash, cipher string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[uid]
	if !ok {
		return errs.NewNotFoundError("user not found")
	}
	u.APIKeyHash, u.APIKeyCipher = hash, cipher
	return nil
}

func (f *fakeUsers) LinkExternalID(_ context.Context, uid, externalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.linkErr != nil {
		return f.linkErr
	}
	u, ok := f.byID[uid]
	if !ok {
		return errs.NewNotFoundError("user not found")
	}
	u.ExternalID = externalID
	return nil
}

// --- crypto stand-ins ---

// plainHasher prefixes instead of hashing so tests stay fast.
type plainHasher struct {
	unknownCalls int
}

func (h *plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (h *plainHasher) Compare(hash, pw string) bool  { return hash == "hashed:"+pw }
func (h *plainHasher) CompareUnknown(string) bool {
	h.unknownCalls++
	return false
}

type fakeSessions struct {
	issued map[string]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{issued: make(map[string]string)}
}

func (f *fakeSessions) Issue(uid string) (string, time.Time, error) {
	tok := "session-" + uid
	f.issued[tok] = uid
	return tok, time.Date(2026, 1, 1, 5, 0, 0, 0, time.UTC), nil
}

func (f *fakeSessions) Verify(tok string) (string, error) {
	uid, ok := f.issued[tok]
	if !ok {
		return "", errs.NewUnauthenticatedError("bad token")
	}
	return uid, nil
}

// reverseCipher binds ciphertext to aad so a key decrypted for the wrong
// user fails.
type reverseCipher struct {
	failDecrypt bool
}

func (reverseCipher) Encrypt(_ context.Context, plaintext, aad string) (string, error) {
	return aad + "|" + plaintext, nil
}

func (c reverseCipher) Decrypt(_ context.Context, ciphertext, aad string) (string, error) {
	prefix := aad + "|"
	if c.failDecrypt || !strings.HasPrefix(ciphertext, prefix) {
		return "", errs.NewEncryptionError("decrypt failed", nil)
	}
	return strings.TrimPrefix(ciphertext, prefix), nil
}

type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

// --- ledger stores ---

type fakeAccounts struct {
	mu         sync.Mutex
	byID       map[string]*models.Account
	txs        *fakeTxs
	goals      *fakeGoals
	reminders  *fakeReminders
	cascadeErr error
	seq        int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: make(map[string]*models.Account)}
}

func (f *fakeAccounts) put(a *models.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
}

func (f *fakeAccounts) Create(_ context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if a.ID == "" {
		a.ID = fmt.Sprintf("acc-%d", f.seq)
	}
	a.CreatedAt = time.Date(2026, 1, f.seq, 0, 0, 0, 0, time.UTC)
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) Get(_ context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, errs.NewNotFoundError("account not found")
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) ListByUser(_ context.Context, uid string) ([]*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Account{}
	for _, a := range f.byID {
		if a.UserID == uid {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAccounts) Update(_ context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[a.ID]; !ok {
		return errs.NewNotFoundError("account not found")
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAccounts) DeleteCascade(_ context.Context, id string) (dto.CascadeResult, error) {
	if f.cascadeErr != nil {
		return dto.CascadeResult{}, f.cascadeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return dto.CascadeResult{}, errs.NewNotFoundError("account not found")
	}

	var res dto.CascadeResult
	if f.txs != nil {
		res.Transactions = f.txs.removeByAccount(id)
	}
	if f.goals != nil {
		res.Goals = f.goals.removeByAccount(id)
	}
	if f.reminders != nil {
		res.Reminders = f.reminders.removeByAccount(id)
	}
	delete(f.byID, id)
	return res, nil
}

type fakeTxs struct {
	mu        sync.Mutex
	byID      map[string]*models.Transaction
	createErr error
	upsertErr error
	upserts   int
	seq       int
}

func newFakeTxs() *fakeTxs {
	return &fakeTxs{byID: make(map[string]*models.Transaction)}
}

func (f *fakeTxs) put(t *models.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[t.ID] = t
}

func (f *fakeTxs) Create(_ context.Context, t *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if t.ID == "" {
		t.ID = fmt.Sprintf("tx-%d", f.seq)
	}
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTxs) Get(_ context.Context, id string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTxs) ListByUser(_ context.Context, uid string) ([]*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Transaction{}
	for _, t := range f.byID {
		if t.UserID == uid {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTxs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return errs.NewNotFoundError("transaction not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTxs) UpsertBatch(_ context.Context, txs []models.Transaction) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	// BulkWriter refuses two writes to one document in a batch
	paths := make(map[string]struct{}, len(txs))
	for _, t := range txs {
		if t.ID == "" {
			continue
		}
		if _, dup := paths[t.ID]; dup {
			return errs.NewDatabaseError("create", "duplicate write for path "+t.ID, nil)
		}
		paths[t.ID] = struct{}{}
	}
	f.upserts++
	for _, t := range txs {
		if t.ID == "" {
			f.seq++
			t.ID = fmt.Sprintf("import-%d", f.seq)
		}
		cp := t
		f.byID[t.ID] = &cp
	}
	return nil
}

func (f *fakeTxs) removeByAccount(accountID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, t := range f.byID {
		if t.AccountID == accountID {
			delete(f.byID, id)
			n++
		}
	}
	return n
}

type fakeGoals struct {
	mu   sync.Mutex
	byID map[string]*models.Goal
	adds int
}

func newFakeGoals() *fakeGoals {
	return &fakeGoals{byID: make(map[string]*models.Goal)}
}

func (f *fakeGoals) put(g *models.Goal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[g.ID] = g
}

func (f *fakeGoals) Create(_ context.Context, g *models.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g.ID == "" {
		g.ID = fmt.Sprintf("goal-%d", len(f.byID)+1)
	}
	cp := *g
	f.byID[g.ID] = &cp
	return nil
}

func (f *fakeGoals) Get(_ context.Context, id string) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id]
	if !ok {
		return nil, errs.NewNotFoundError("goal not found")
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) ListByUser(_ context.Context, uid string) ([]*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Goal{}
	for _, g := range f.byID {
		if g.UserID == uid {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeGoals) Update(_ context.Context, g *models.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[g.ID]
	if !ok {
		return errs.NewNotFoundError("goal not found")
	}
	cur.Name, cur.TargetAmount, cur.DailyAmount = g.Name, g.TargetAmount, g.DailyAmount
	return nil
}

func (f *fakeGoals) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return errs.NewNotFoundError("goal not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGoals) AddContribution(_ context.Context, id string, amount float64) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id]
	if !ok {
		return nil, errs.NewNotFoundError("goal not found")
	}
	f.adds++
	g.CurrentAmount += amount
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) removeByAccount(accountID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, g := range f.byID {
		if g.AccountID == accountID {
			delete(f.byID, id)
			n++
		}
	}
	return n
}

type fakeReminders struct {
	mu   sync.Mutex
	byID map[string]*models.Reminder
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{byID: make(map[string]*models.Reminder)}
}

func (f *fakeReminders) put(r *models.Reminder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID] = r
}

func (f *fakeReminders) Create(_ context.Context, r *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == "" {
		r.ID = fmt.Sprintf("rem-%d", len(f.byID)+1)
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReminders) Get(_ context.Context, id string) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, errs.NewNotFoundError("reminder not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReminders) ListByUser(_ context.Context, uid string) ([]*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Reminder{}
	for _, r := range f.byID {
		if r.UserID == uid {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReminders) Update(_ context.Context, r *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[r.ID]; !ok {
		return errs.NewNotFoundError("reminder not found")
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReminders) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return errs.NewNotFoundError("reminder not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeReminders) removeByAccount(accountID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, r := range f.byID {
		if r.AccountID == accountID {
			delete(f.byID, id)
			n++
		}
	}
	return n
}
