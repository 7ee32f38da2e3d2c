package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staybook/auth"
	"staybook/money"
)

func newTestService(repo *fakeRepo) (*Service, *fakePool) {
	pool := &fakePool{}
	svc := NewService(pool, repo).WithIDGenerator(func() string { return "fixed-id" })
	return svc, pool
}

func TestCreate_ComputesPriceAndForcesUser(t *testing.T) {
	repo := &fakeRepo{rate: 10000} // 100.00 per night
	svc, pool := newTestService(repo)

	created, err := svc.Create(context.Background(), auth.Principal{ID: "user-1"}, CreateParams{
		ListingID: "l1",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 4),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.UserID != "user-1" {
		t.Fatalf("expected forced user user-1, got %q", created.UserID)
	}
	if created.TotalPrice.String() != "300.00" {
		t.Fatalf("expected total 300.00, got %s", created.TotalPrice)
	}
	if !pool.tx.committed {
		t.Fatal("expected commit")
	}
}

func TestCreate_InvalidDates(t *testing.T) {
	repo := &fakeRepo{rate: 10000}
	svc, pool := newTestService(repo)
	p := auth.Principal{ID: "user-1"}

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"equal", date(2024, 1, 1), date(2024, 1, 1)},
		{"inverted", date(2024, 1, 4), date(2024, 1, 1)},
	}

	for _, tc := range cases {
		_, err := svc.Create(context.Background(), p, CreateParams{ListingID: "l1", StartDate: tc.start, EndDate: tc.end})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("%s: expected ErrInvalidDateRange, got %v", tc.name, err)
		}
	}
	if repo.created {
		t.Fatal("expected nothing persisted on validation failure")
	}
	if pool.tx.committed {
		t.Fatal("expected no commit on validation failure")
	}
}

func TestCreate_UnknownListing(t *testing.T) {
	repo := &fakeRepo{rateErr: ErrListingNotFound}
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), auth.Principal{ID: "user-1"}, CreateParams{
		ListingID: "missing",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 2),
	})
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
	if repo.created {
		t.Fatal("expected nothing persisted")
	}
}

func TestUpdate_RecomputesPriceWhenOneFieldChanges(t *testing.T) {
	repo := &fakeRepo{
		rate: 10000,
		stored: Booking{
			ID: "b1", ListingID: "l1", UserID: "user-1",
			StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 4), TotalPrice: 30000,
		},
	}
	svc, _ := newTestService(repo)

	end := date(2024, 1, 6)
	updated, err := svc.Update(context.Background(), auth.Principal{ID: "user-1"}, "b1", UpdateParams{EndDate: &end})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalPrice.String() != "500.00" {
		t.Fatalf("expected recomputed total 500.00, got %s", updated.TotalPrice)
	}
	if !updated.StartDate.Equal(date(2024, 1, 1)) {
		t.Fatalf("expected start date to survive the merge, got %s", updated.StartDate)
	}
}

func TestUpdate_ForbiddenForOtherUsers(t *testing.T) {
	repo := &fakeRepo{
		rate: 10000,
		stored: Booking{
			ID: "b1", ListingID: "l1", UserID: "user-2",
			StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 4), TotalPrice: 30000,
		},
	}
	svc, pool := newTestService(repo)

	end := date(2024, 2, 1)
	_, err := svc.Update(context.Background(), auth.Principal{ID: "user-1"}, "b1", UpdateParams{EndDate: &end})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updated {
		t.Fatal("expected booking unchanged on denial")
	}
	if pool.tx.committed {
		t.Fatal("expected rollback, not commit")
	}
}

func TestUpdate_AdminMayMutateAnyBooking(t *testing.T) {
	repo := &fakeRepo{
		rate: 10000,
		stored: Booking{
			ID: "b1", ListingID: "l1", UserID: "user-2",
			StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 4),
		},
	}
	svc, _ := newTestService(repo)

	end := date(2024, 1, 5)
	if _, err := svc.Update(context.Background(), auth.Principal{ID: "admin", IsAdmin: true}, "b1", UpdateParams{EndDate: &end}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if !repo.updated {
		t.Fatal("expected update to run for admin")
	}
}

func TestUpdate_MergedInvalidRangeRejected(t *testing.T) {
	repo := &fakeRepo{
		rate: 10000,
		stored: Booking{
			ID: "b1", ListingID: "l1", UserID: "user-1",
			StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 4),
		},
	}
	svc, _ := newTestService(repo)

	// moving the start past the stored end must fail even though the payload
	// alone looks harmless
	start := date(2024, 1, 10)
	_, err := svc.Update(context.Background(), auth.Principal{ID: "user-1"}, "b1", UpdateParams{StartDate: &start})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if repo.updated {
		t.Fatal("expected booking unchanged")
	}
}

func TestList_ScopesNonAdminToUser(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)

	if _, err := svc.List(context.Background(), auth.Principal{ID: "user-1"}, Filters{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listFilters.UserID != "user-1" {
		t.Fatalf("expected user filter user-1, got %q", repo.listFilters.UserID)
	}

	if _, err := svc.List(context.Background(), auth.Principal{ID: "admin", IsAdmin: true}, Filters{UserID: "x"}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if repo.listFilters.UserID != "" {
		t.Fatalf("expected no user filter for admin, got %q", repo.listFilters.UserID)
	}
}

func TestGet_OutsideScopeIsNotFound(t *testing.T) {
	repo := &fakeRepo{stored: Booking{ID: "b1", UserID: "user-2"}}
	svc, _ := newTestService(repo)

	if _, err := svc.Get(context.Background(), auth.Principal{ID: "user-1"}, "b1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_OwnerOrAdminOnly(t *testing.T) {
	repo := &fakeRepo{stored: Booking{ID: "b1", UserID: "user-2"}}
	svc, _ := newTestService(repo)

	if err := svc.Delete(context.Background(), auth.Principal{ID: "user-1"}, "b1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.deleted {
		t.Fatal("expected no delete on denial")
	}

	if err := svc.Delete(context.Background(), auth.Principal{ID: "user-2"}, "b1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if !repo.deleted {
		t.Fatal("expected delete to run for owner")
	}
}

type fakeRepo struct {
	rate        money.Cents
	rateErr     error
	stored      Booking
	getErr      error
	created     bool
	updated     bool
	deleted     bool
	listFilters Filters
}

func (f *fakeRepo) ListingRate(_ context.Context, _ pgx.Tx, _ string) (money.Cents, error) {
	if f.rateErr != nil {
		return 0, f.rateErr
	}
	return f.rate, nil
}

func (f *fakeRepo) Create(_ context.Context, _ pgx.Tx, b Booking) (Booking, error) {
	f.created = true
	f.stored = b
	return b, nil
}

func (f *fakeRepo) List(_ context.Context, filters Filters) ([]Booking, int, error) {
	f.listFilters = filters
	return []Booking{f.stored}, 1, nil
}

func (f *fakeRepo) GetByID(_ context.Context, _ string) (Booking, error) {
	if f.getErr != nil {
		return Booking{}, f.getErr
	}
	return f.stored, nil
}

func (f *fakeRepo) GetForUpdate(_ context.Context, _ pgx.Tx, _ string) (Booking, error) {
	if f.getErr != nil {
		return Booking{}, f.getErr
	}
	return f.stored, nil
}

func (f *fakeRepo) Update(_ context.Context, _ pgx.Tx, b Booking) (Booking, error) {
	f.updated = true
	f.stored = b
	return b, nil
}

func (f *fakeRepo) Delete(_ context.Context, _ pgx.Tx, _ string) error {
	f.deleted = true
	return nil
}

type fakePool struct {
	tx *fakeTx
}

func (f *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}

type fakeTx struct {
	rolled    bool
	committed bool
}

func (f *fakeTx) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("fakeTx does not support nested transactions")
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolled = true
	return nil
}

func (f *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}

func (f *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}

func (f *fakeTx) LargeObjects() pgx.LargeObjects {
	panic("not implemented")
}

func (f *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}

func (f *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}

func (f *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not implemented")
}

func (f *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not implemented")
}

func (f *fakeTx) Conn() *pgx.Conn {
	return nil
}
