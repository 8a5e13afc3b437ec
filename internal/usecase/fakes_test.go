package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"eventmate/internal/data/entity"
	"eventmate/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---------- users ----------

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]*entity.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("create user: %w", repository.ErrDuplicate)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copy := *user
	r.users[user.ID] = &copy
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Update(_ context.Context, id primitive.ObjectID, update repository.UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if update.Username != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Username == *update.Username {
				return repository.ErrDuplicate
			}
		}
		u.Username = *update.Username
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------- events and embedded reviews ----------

type memoryEventRepo struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*entity.Event
	order  []primitive.ObjectID

	lastFilter entity.EventFilter
	lastNear   [3]float64
	statsLimit int
	releases   int
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{events: make(map[primitive.ObjectID]*entity.Event)}
}

func (r *memoryEventRepo) seed(event *entity.Event) primitive.ObjectID {
	if err := r.Create(context.Background(), event); err != nil {
		panic(err)
	}
	return event.ID
}

func (r *memoryEventRepo) seats(id primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[id].AvailableSeats
}

func cloneEvent(e *entity.Event) *entity.Event {
	copy := *e
	copy.Reviews = append([]entity.Review{}, e.Reviews...)
	return &copy
}

func (r *memoryEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Reviews == nil {
		event.Reviews = []entity.Review{}
	}
	r.events[event.ID] = cloneEvent(event)
	r.order = append(r.order, event.ID)
	return nil
}

func (r *memoryEventRepo) FindByID(_ context.Context, id primitive.ObjectID) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	return cloneEvent(e), nil
}

func (r *memoryEventRepo) FindAll(_ context.Context, offset, limit int, sortField string) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.ordered()
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		switch sortField {
		case "name":
			return a.Name < b.Name
		case "price":
			return a.Price < b.Price
		case "available_seats":
			return a.AvailableSeats < b.AvailableSeats
		default:
			return a.Date < b.Date
		}
	})

	out := []*entity.Event{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		out = append(out, all[i])
	}
	return out, nil
}

func (r *memoryEventRepo) ordered() []*entity.Event {
	all := make([]*entity.Event, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.events[id]; ok {
			all = append(all, cloneEvent(e))
		}
	}
	return all
}

func (r *memoryEventRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), nil
}

func (r *memoryEventRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			e.Name = value.(string)
		case "category":
			e.Category = value.(string)
		case "price":
			e.Price = value.(float64)
		case "available_seats":
			e.AvailableSeats = value.(int)
		case "location":
			e.Location = value.(*entity.GeoPoint)
		}
	}
	return nil
}

func (r *memoryEventRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *memoryEventRepo) Search(_ context.Context, filter entity.EventFilter) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter

	contains := func(value, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(value), strings.ToLower(sub))
	}

	out := []*entity.Event{}
	for _, e := range r.ordered() {
		locationName := ""
		if e.Location != nil {
			locationName = e.Location.Name
		}
		if !contains(e.Category, filter.Category) || !contains(e.City, filter.City) || !contains(locationName, filter.Location) {
			continue
		}
		if filter.MaxPrice != nil && e.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memoryEventRepo) Nearby(_ context.Context, lon, lat, radiusKm float64) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastNear = [3]float64{lon, lat, radiusKm}
	return []*entity.Event{}, nil
}

func (r *memoryEventRepo) CategoryStats(_ context.Context, limit int) ([]*entity.CategoryStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statsLimit = limit

	counts := map[string]int{}
	for _, e := range r.events {
		counts[e.Category]++
	}
	stats := []*entity.CategoryStat{}
	for category, n := range counts {
		stats = append(stats, &entity.CategoryStat{Category: category, TotalEvents: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalEvents != stats[j].TotalEvents {
			return stats[i].TotalEvents > stats[j].TotalEvents
		}
		return stats[i].Category < stats[j].Category
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (r *memoryEventRepo) ReserveSeats(_ context.Context, id primitive.ObjectID, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok || e.AvailableSeats < count {
		return repository.ErrInsufficientSeats
	}
	e.AvailableSeats -= count
	return nil
}

func (r *memoryEventRepo) ReleaseSeats(_ context.Context, id primitive.ObjectID, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releases++
	e, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.AvailableSeats += count
	return nil
}

// memoryReviewRepo edits the reviews embedded in a memoryEventRepo
type memoryReviewRepo struct {
	events *memoryEventRepo
}

func (r *memoryReviewRepo) FindByEventID(_ context.Context, eventID primitive.ObjectID) ([]entity.Review, error) {
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	e, ok := r.events.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]entity.Review{}, e.Reviews...), nil
}

func (r *memoryReviewRepo) Append(_ context.Context, eventID primitive.ObjectID, review *entity.Review) error {
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	e, ok := r.events.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	e.Reviews = append(e.Reviews, *review)
	return nil
}

func (r *memoryReviewRepo) Update(_ context.Context, eventID primitive.ObjectID, reviewID string, update entity.ReviewUpdate) error {
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	e, ok := r.events.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range e.Reviews {
		if e.Reviews[i].ID != reviewID {
			continue
		}
		if update.Comment != nil {
			e.Reviews[i].Comment = *update.Comment
		}
		if update.Rating != nil {
			e.Reviews[i].Rating = *update.Rating
		}
		if update.Date != nil {
			e.Reviews[i].Date = *update.Date
		}
		return nil
	}
	return repository.ErrReviewNotFound
}

func (r *memoryReviewRepo) Delete(_ context.Context, eventID primitive.ObjectID, reviewID string) error {
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	e, ok := r.events.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range e.Reviews {
		if e.Reviews[i].ID == reviewID {
			e.Reviews = append(e.Reviews[:i], e.Reviews[i+1:]...)
			return nil
		}
	}
	return repository.ErrReviewNotFound
}

// ---------- bookings ----------

type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*entity.Booking
	nextErr  map[string]error
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{
		bookings: make(map[primitive.ObjectID]*entity.Booking),
		nextErr:  make(map[string]error),
	}
}

func (r *memoryBookingRepo) setErr(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextErr[op] = err
}

func (r *memoryBookingRepo) takeErr(op string) error {
	if err, ok := r.nextErr[op]; ok {
		delete(r.nextErr, op)
		return err
	}
	return nil
}

// confirmedExists mirrors the partial unique index on confirmed bookings
func (r *memoryBookingRepo) confirmedExists(except, userID, eventID primitive.ObjectID) bool {
	for id, b := range r.bookings {
		if id != except && b.UserID == userID && b.EventID == eventID && b.Status == entity.BookingStatusConfirmed {
			return true
		}
	}
	return false
}

func (r *memoryBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr("Create"); err != nil {
		return err
	}
	if booking.Status == entity.BookingStatusConfirmed && r.confirmedExists(booking.ID, booking.UserID, booking.EventID) {
		return repository.ErrDuplicate
	}
	copy := *booking
	r.bookings[booking.ID] = &copy
	return nil
}

func (r *memoryBookingRepo) FindByID(_ context.Context, id, userID primitive.ObjectID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID {
		return nil, nil
	}
	copy := *b
	return &copy, nil
}

func (r *memoryBookingRepo) FindByUser(_ context.Context, userID primitive.ObjectID, status *entity.BookingStatus) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Booking{}
	for _, b := range r.bookings {
		if b.UserID != userID || (status != nil && b.Status != *status) {
			continue
		}
		copy := *b
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryBookingRepo) FindConfirmed(_ context.Context, userID, eventID primitive.ObjectID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID == userID && b.EventID == eventID && b.Status == entity.BookingStatusConfirmed {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepo) UpdateStatus(_ context.Context, id, userID primitive.ObjectID, from, to entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr("UpdateStatus"); err != nil {
		return err
	}
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID || b.Status != from {
		return repository.ErrNotFound
	}
	if to == entity.BookingStatusConfirmed && r.confirmedExists(id, b.UserID, b.EventID) {
		return repository.ErrDuplicate
	}
	b.Status = to
	return nil
}

func (r *memoryBookingRepo) Delete(_ context.Context, id, userID primitive.ObjectID, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID || b.Status != status {
		return repository.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

// ---------- transactions ----------

// passthroughTx runs fn directly, like a deployment without a replica set
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) Enabled() bool { return false }

// rollbackTx snapshots seats and bookings and restores them when fn fails,
// like an aborted replica-set transaction
type rollbackTx struct {
	events   *memoryEventRepo
	bookings *memoryBookingRepo
}

func (tx rollbackTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.events.mu.Lock()
	seats := make(map[primitive.ObjectID]int, len(tx.events.events))
	for id, e := range tx.events.events {
		seats[id] = e.AvailableSeats
	}
	tx.events.mu.Unlock()

	tx.bookings.mu.Lock()
	bookings := make(map[primitive.ObjectID]entity.Booking, len(tx.bookings.bookings))
	for id, b := range tx.bookings.bookings {
		bookings[id] = *b
	}
	tx.bookings.mu.Unlock()

	err := fn(ctx)
	if err == nil {
		return nil
	}

	tx.events.mu.Lock()
	for id, n := range seats {
		if e, ok := tx.events.events[id]; ok {
			e.AvailableSeats = n
		}
	}
	tx.events.mu.Unlock()

	tx.bookings.mu.Lock()
	tx.bookings.bookings = make(map[primitive.ObjectID]*entity.Booking, len(bookings))
	for id, b := range bookings {
		b := b
		tx.bookings.bookings[id] = &b
	}
	tx.bookings.mu.Unlock()

	return err
}

func (rollbackTx) Enabled() bool { return true }

// ---------- fixture ----------

type fixture struct {
	repo     *repository.Repository
	users    *memoryUserRepo
	events   *memoryEventRepo
	bookings *memoryBookingRepo
}

func newFixture() *fixture {
	users := newMemoryUserRepo()
	events := newMemoryEventRepo()
	bookings := newMemoryBookingRepo()

	return &fixture{
		repo: &repository.Repository{
			User:    users,
			Event:   events,
			Review:  &memoryReviewRepo{events: events},
			Booking: bookings,
			Token:   repository.NewMemoryTokenRepository(zap.NewNop()),
			Tx:      passthroughTx{},
		},
		users:    users,
		events:   events,
		bookings: bookings,
	}
}

// newTxFixture is newFixture with transactions enabled
func newTxFixture() *fixture {
	f := newFixture()
	f.repo.Tx = rollbackTx{events: f.events, bookings: f.bookings}
	return f
}
