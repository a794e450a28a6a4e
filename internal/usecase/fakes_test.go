package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"fitbook/internal/data/entity"
	"fitbook/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore is an in-memory stand-in for the database. Write methods
// replace entries wholesale so a snapshot of the maps is enough to
// roll a transaction back.
type fakeStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
	audits   []*entity.CreditAuditEntry
	classes  map[uuid.UUID]*entity.ClassSession
	bookings map[uuid.UUID]*entity.Booking
	passes   map[uuid.UUID]*entity.TouristPass
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[uuid.UUID]*entity.Account),
		classes:  make(map[uuid.UUID]*entity.ClassSession),
		bookings: make(map[uuid.UUID]*entity.Booking),
		passes:   make(map[uuid.UUID]*entity.TouristPass),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.classes {
		snap.classes[k] = v
	}
	for k, v := range s.bookings {
		snap.bookings[k] = v
	}
	for k, v := range s.passes {
		snap.passes[k] = v
	}
	snap.audits = append([]*entity.CreditAuditEntry(nil), s.audits...)
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.accounts = snap.accounts
	s.classes = snap.classes
	s.bookings = snap.bookings
	s.passes = snap.passes
	s.audits = snap.audits
}

func newFakeRepository(s *fakeStore) *repository.Repository {
	r := &repository.Repository{
		Account: &fakeAccountRepo{s: s},
		Audit:   &fakeAuditRepo{s: s},
		Class:   &fakeClassRepo{s: s},
		Booking: &fakeBookingRepo{s: s},
		Pass:    &fakePassRepo{s: s},
	}
	r.Tx = &fakeTxRunner{s: s, repo: r}
	return r
}

// fakeTxRunner serializes transactions with a mutex, mirroring the row
// locks the real runner relies on, and restores a snapshot on error.
type fakeTxRunner struct {
	s    *fakeStore
	repo *repository.Repository
}

func (t *fakeTxRunner) WithTx(ctx context.Context, fn func(*repository.Repository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snap := t.s.snapshot()
	if err := fn(t.repo); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ---------- account ----------

type fakeAccountRepo struct {
	s *fakeStore
}

func (r *fakeAccountRepo) Ensure(ctx context.Context, account *entity.Account) error {
	if _, exists := r.s.accounts[account.ID]; exists {
		return nil
	}
	cp := *account
	r.s.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *account
	return &cp, nil
}

func (r *fakeAccountRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeAccountRepo) AdjustCredits(ctx context.Context, id uuid.UUID, delta int) (int, bool, error) {
	account, ok := r.s.accounts[id]
	if !ok {
		return 0, false, nil
	}
	if account.Credits+delta < 0 {
		return 0, false, nil
	}
	cp := *account
	cp.Credits += delta
	cp.UpdatedAt = time.Now()
	r.s.accounts[id] = &cp
	return cp.Credits, true, nil
}

func (r *fakeAccountRepo) SetFrozen(ctx context.Context, id uuid.UUID, frozen bool, frozenAt *time.Time, previousTier *entity.SubscriptionTier) error {
	account, ok := r.s.accounts[id]
	if !ok {
		return nil
	}
	cp := *account
	cp.Frozen = frozen
	cp.FrozenAt = frozenAt
	cp.PreviousTier = previousTier
	cp.UpdatedAt = time.Now()
	r.s.accounts[id] = &cp
	return nil
}

// ---------- audit ----------

type fakeAuditRepo struct {
	s *fakeStore
}

func (r *fakeAuditRepo) Append(ctx context.Context, entry *entity.CreditAuditEntry) error {
	cp := *entry
	r.s.audits = append(r.s.audits, &cp)
	return nil
}

func (r *fakeAuditRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.CreditAuditEntry, error) {
	var entries []*entity.CreditAuditEntry
	for _, e := range r.s.audits {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if offset >= len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *fakeAuditRepo) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.s.audits {
		if e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAuditRepo) SumChangesByAccountID(ctx context.Context, accountID uuid.UUID) (int, error) {
	total := 0
	for _, e := range r.s.audits {
		if e.AccountID == accountID {
			total += e.CreditsChanged
		}
	}
	return total, nil
}

func (r *fakeAuditRepo) BreakdownByAccountID(ctx context.Context, accountID uuid.UUID) (*repository.CreditBreakdown, error) {
	breakdown := &repository.CreditBreakdown{}
	for _, e := range r.s.audits {
		if e.AccountID != accountID || e.CreditsChanged <= 0 {
			continue
		}
		if e.Action != entity.AuditActionPurchase && e.Action != entity.AuditActionManualAdjustment {
			continue
		}
		switch e.Metadata["source"] {
		case "bonus":
			breakdown.Bonus += e.CreditsChanged
		case "promotional":
			breakdown.Promotional += e.CreditsChanged
		default:
			breakdown.Purchased += e.CreditsChanged
		}
	}
	return breakdown, nil
}

// ---------- class ----------

type fakeClassRepo struct {
	s *fakeStore
}

func (r *fakeClassRepo) Create(ctx context.Context, class *entity.ClassSession) error {
	cp := *class
	r.s.classes[class.ID] = &cp
	return nil
}

func (r *fakeClassRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error) {
	class, ok := r.s.classes[id]
	if !ok {
		return nil, nil
	}
	cp := *class
	return &cp, nil
}

func (r *fakeClassRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ClassSession, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeClassRepo) List(ctx context.Context, limit, offset int) ([]*entity.ClassSession, error) {
	var classes []*entity.ClassSession
	for _, c := range r.s.classes {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].StartsAt.Before(classes[j].StartsAt)
	})
	if offset >= len(classes) {
		return nil, nil
	}
	classes = classes[offset:]
	if limit < len(classes) {
		classes = classes[:limit]
	}
	return classes, nil
}

func (r *fakeClassRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.s.classes)), nil
}

// ---------- booking ----------

type fakeBookingRepo struct {
	s *fakeStore
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	cp := *booking
	r.s.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookingRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, b := range r.s.bookings {
		if b.AccountID == accountID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	if offset >= len(bookings) {
		return nil, nil
	}
	bookings = bookings[offset:]
	if limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (r *fakeBookingRepo) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.s.bookings {
		if b.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountConfirmedByClassID(ctx context.Context, classID uuid.UUID) (int, error) {
	n := 0
	for _, b := range r.s.bookings {
		if b.ClassID == classID && b.Status == entity.BookingStatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := r.s.bookings[bookingID]
	if !ok {
		return nil
	}
	cp := *booking
	cp.Status = status
	cp.UpdatedAt = time.Now()
	r.s.bookings[bookingID] = &cp
	return nil
}

// ---------- tourist pass ----------

type fakePassRepo struct {
	s *fakeStore
}

func (r *fakePassRepo) Create(ctx context.Context, pass *entity.TouristPass) error {
	cp := *pass
	r.s.passes[pass.ID] = &cp
	return nil
}

func (r *fakePassRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TouristPass, error) {
	pass, ok := r.s.passes[id]
	if !ok {
		return nil, nil
	}
	cp := *pass
	return &cp, nil
}

func (r *fakePassRepo) FindActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.TouristPass, error) {
	var latest *entity.TouristPass
	for _, p := range r.s.passes {
		if p.AccountID != accountID || !p.Active || p.EndsAt.Before(now) {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakePassRepo) FindActiveByAccountIDForUpdate(ctx context.Context, accountID uuid.UUID, now time.Time) (*entity.TouristPass, error) {
	return r.FindActiveByAccountID(ctx, accountID, now)
}

func (r *fakePassRepo) AdjustUsed(ctx context.Context, id uuid.UUID, delta int) (int, bool, error) {
	pass, ok := r.s.passes[id]
	if !ok {
		return 0, false, nil
	}
	next := pass.ClassesUsed + delta
	if next < 0 || next > pass.ClassesTotal {
		return 0, false, nil
	}
	cp := *pass
	cp.ClassesUsed = next
	cp.UpdatedAt = time.Now()
	r.s.passes[id] = &cp
	return next, true, nil
}

// ---------- seed helpers ----------

func seedAccount(s *fakeStore, credits int) *entity.Account {
	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:   "member@example.com",
		Credits: credits,
		Tier:    entity.TierBasic,
	}
	s.accounts[account.ID] = account
	return account
}

func seedClass(s *fakeStore, creditCost, maxCapacity int) *entity.ClassSession {
	now := time.Now()
	class := &entity.ClassSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StudioID:    uuid.New(),
		Title:       "Morning Yoga",
		StartsAt:    now.Add(24 * time.Hour),
		DurationMin: 60,
		MaxCapacity: maxCapacity,
		CreditCost:  creditCost,
		Difficulty:  entity.DifficultyAllLevels,
	}
	s.classes[class.ID] = class
	return class
}

func seedPass(s *fakeStore, accountID uuid.UUID, total, used int) *entity.TouristPass {
	now := time.Now()
	pass := &entity.TouristPass{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AccountID:    accountID,
		StartsAt:     now.Add(-time.Hour),
		EndsAt:       now.Add(7 * 24 * time.Hour),
		ClassesTotal: total,
		ClassesUsed:  used,
		Active:       true,
	}
	s.passes[pass.ID] = pass
	return pass
}

func auditEntries(s *fakeStore, accountID uuid.UUID) []*entity.CreditAuditEntry {
	var entries []*entity.CreditAuditEntry
	for _, e := range s.audits {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
