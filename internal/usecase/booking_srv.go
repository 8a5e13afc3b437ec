package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventmate/internal/data/entity"
	"eventmate/internal/data/repository"
	"eventmate/internal/dto/request"
	"eventmate/internal/dto/response"
	"eventmate/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// bookingTransitions lists the statuses each status may move to
var bookingTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:   {entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	entity.BookingStatusConfirmed: {entity.BookingStatusCancelled},
}

func canTransition(from, to entity.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type BookingService interface {
	List(ctx context.Context, userID string, req *request.ListBookingsRequest) ([]response.BookingResponse, error)
	Get(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	Create(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Update(ctx context.Context, userID, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	Delete(ctx context.Context, userID, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository // event, booking and transactor
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) List(ctx context.Context, userID string, req *request.ListBookingsRequest) ([]response.BookingResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var status *entity.BookingStatus
	if req.Status != "" {
		st := entity.BookingStatus(req.Status)
		status = &st
	}

	bookings, err := s.repo.Booking.FindByUser(ctx, uid, status)
	if err != nil {
		return nil, err
	}

	return response.BookingsToResponse(bookings), nil
}

// Get only returns bookings owned by userID; anyone else's look absent
func (s *bookingService) Get(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	bid, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bid, uid)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %w", ErrNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Create(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	eid, err := parseID(req.EventID, "event")
	if err != nil {
		return nil, err
	}

	ticketCount := 1
	if req.TicketCount != nil {
		ticketCount = *req.TicketCount
	}

	var booking *entity.Booking
	err = s.repo.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		// 1. Event must exist
		event, err := s.repo.Event.FindByID(ctx, eid)
		if err != nil {
			return err
		}
		if event == nil {
			return fmt.Errorf("event %w", ErrNotFound)
		}

		// 2. Fast capacity check against the snapshot
		if ticketCount > event.AvailableSeats {
			return fmt.Errorf("%w: not enough available seats", ErrInsufficientCapacity)
		}

		// 3. One confirmed booking per user and event
		existing, err := s.repo.Booking.FindConfirmed(ctx, uid, eid)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: you already booked this event", ErrConflict)
		}

		// 4. Guarded debit; loses cleanly to a concurrent booking
		if err := s.reserveSeats(ctx, eid, ticketCount); err != nil {
			return err
		}

		// 5. Record the booking
		now := time.Now().UTC()
		booking = &entity.Booking{
			Base: entity.Base{
				ID:        primitive.NewObjectID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:      uid,
			EventID:     eid,
			TicketCount: ticketCount,
			Status:      entity.BookingStatusConfirmed,
		}

		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			s.compensateReserve(ctx, eid, ticketCount, err)
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: you already booked this event", ErrConflict)
			}
			return err
		}

		return nil
	})
	if err != nil {
		metrics.RecordBooking("create", outcome(err))
		return nil, err
	}

	metrics.RecordBooking("create", "ok")
	metrics.RecordSeats(ticketCount)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.Hex()),
		zap.String("user_id", userID),
		zap.String("event_id", req.EventID),
		zap.Int("ticket_count", ticketCount))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Update(ctx context.Context, userID, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	bid, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	var booking *entity.Booking
	err = s.repo.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		found, err := s.repo.Booking.FindByID(ctx, bid, uid)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("booking %w", ErrNotFound)
		}

		booking = found
		return s.transition(ctx, booking, entity.BookingStatus(req.Status))
	})
	if err != nil {
		metrics.RecordBooking("update", outcome(err))
		return nil, err
	}

	metrics.RecordBooking("update", "ok")

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// transition moves booking to status `to`, debiting seats when it enters confirmed
// and crediting them when it leaves. The status write only applies if nobody else
// changed the booking since it was read.
func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, to entity.BookingStatus) error {
	from := booking.Status
	if from == to {
		return nil
	}
	if !canTransition(from, to) {
		return invalid("cannot change booking from %s to %s", from, to)
	}

	switch {
	case to == entity.BookingStatusConfirmed:
		event, err := s.repo.Event.FindByID(ctx, booking.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return fmt.Errorf("event %w", ErrNotFound)
		}

		existing, err := s.repo.Booking.FindConfirmed(ctx, booking.UserID, booking.EventID)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != booking.ID {
			return fmt.Errorf("%w: you already booked this event", ErrConflict)
		}

		if err := s.reserveSeats(ctx, booking.EventID, booking.TicketCount); err != nil {
			return err
		}

		if err := s.writeStatus(ctx, booking, from, to); err != nil {
			s.compensateReserve(ctx, booking.EventID, booking.TicketCount, err)
			return err
		}
		metrics.RecordSeats(booking.TicketCount)

	case from == entity.BookingStatusConfirmed:
		if err := s.writeStatus(ctx, booking, from, to); err != nil {
			return err
		}
		if err := s.releaseSeats(ctx, booking); err != nil {
			return err
		}

	default:
		if err := s.writeStatus(ctx, booking, from, to); err != nil {
			return err
		}
	}

	booking.Status = to
	booking.UpdatedAt = time.Now().UTC()

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.Hex()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return nil
}

func (s *bookingService) writeStatus(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus) error {
	err := s.repo.Booking.UpdateStatus(ctx, booking.ID, booking.UserID, from, to)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: you already booked this event", ErrConflict)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: booking was changed concurrently, retry", ErrConflict)
	}
	return err
}

func (s *bookingService) Delete(ctx context.Context, userID, bookingID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	bid, err := parseID(bookingID, "booking")
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		booking, err := s.repo.Booking.FindByID(ctx, bid, uid)
		if err != nil {
			return err
		}
		if booking == nil {
			return fmt.Errorf("booking %w", ErrNotFound)
		}

		if err := s.repo.Booking.Delete(ctx, bid, uid, booking.Status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: booking was changed concurrently, retry", ErrConflict)
			}
			return err
		}

		// only confirmed bookings hold seats
		if booking.Status == entity.BookingStatusConfirmed {
			return s.releaseSeats(ctx, booking)
		}
		return nil
	})
	if err != nil {
		metrics.RecordBooking("delete", outcome(err))
		return err
	}

	metrics.RecordBooking("delete", "ok")
	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID))
	return nil
}

func (s *bookingService) reserveSeats(ctx context.Context, eventID primitive.ObjectID, count int) error {
	err := s.repo.Event.ReserveSeats(ctx, eventID, count)
	if errors.Is(err, repository.ErrInsufficientSeats) {
		return fmt.Errorf("%w: not enough available seats", ErrInsufficientCapacity)
	}
	return err
}

// releaseSeats credits the booking's seats back. A deleted event has nothing to credit.
func (s *bookingService) releaseSeats(ctx context.Context, booking *entity.Booking) error {
	err := s.repo.Event.ReleaseSeats(ctx, booking.EventID, booking.TicketCount)
	switch {
	case err == nil:
		metrics.RecordSeats(-booking.TicketCount)
		return nil
	case errors.Is(err, repository.ErrNotFound):
		s.log.Warn("Event gone, seats not credited",
			zap.String("booking_id", booking.ID.Hex()),
			zap.String("event_id", booking.EventID.Hex()))
		return nil
	}

	if !s.repo.Tx.Enabled() {
		s.log.Error("Booking changed but seats not credited, reconcile manually",
			zap.Error(err),
			zap.String("booking_id", booking.ID.Hex()),
			zap.String("event_id", booking.EventID.Hex()),
			zap.Int("ticket_count", booking.TicketCount))
	}
	return err
}

// compensateReserve undoes a seat debit after a later write failed. Inside a
// transaction the abort already does that.
func (s *bookingService) compensateReserve(ctx context.Context, eventID primitive.ObjectID, count int, cause error) {
	if s.repo.Tx.Enabled() {
		return
	}

	if err := s.repo.Event.ReleaseSeats(ctx, eventID, count); err != nil {
		s.log.Error("Seat compensation failed, reconcile manually",
			zap.Error(err),
			zap.NamedError("cause", cause),
			zap.String("event_id", eventID.Hex()),
			zap.Int("ticket_count", count))
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInsufficientCapacity):
		return "sold_out"
	}
	return "error"
}
