package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"eventmate/internal/data/entity"
	"eventmate/internal/data/repository"
	"eventmate/internal/dto/request"
	"eventmate/internal/dto/response"
	"eventmate/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	defaultEventSort      = "date"
	defaultEventCategory  = "General"
	defaultAvailableSeats = 100
	defaultNearbyRadiusKm = 10.0
	topCategoriesLimit    = 3
)

type EventService interface {
	// Public endpoints
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	Get(ctx context.Context, eventID string) (*response.EventResponse, error)
	Search(ctx context.Context, req *request.SearchEventRequest) ([]response.EventResponse, error)
	Nearby(ctx context.Context, req *request.NearbyEventRequest) ([]response.EventResponse, error)
	CategoryStats(ctx context.Context) ([]response.CategoryStatResponse, error)

	// Admin endpoints
	Create(ctx context.Context, req *request.CreateEventRequest) (*response.EventCreatedResponse, error)
	Update(ctx context.Context, eventID string, req *request.UpdateEventRequest) error
	Delete(ctx context.Context, eventID string) error
}

type eventService struct {
	eventRepo  repository.EventRepository
	pagination utils.PaginationConfig
	log        *zap.Logger
}

func NewEventService(eventRepo repository.EventRepository, pagination utils.PaginationConfig, log *zap.Logger) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		pagination: pagination,
		log:        log.With(zap.String("service", "event")),
	}
}

func (s *eventService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	defaultLimit := s.pagination.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	req.Limit = utils.ClampLimit(req.Limit, defaultLimit, s.pagination.MaxLimit)
	if req.Sort == "" {
		req.Sort = defaultEventSort
	}

	if !repository.IsSortableEventField(req.Sort) {
		return nil, invalid("cannot sort by %q", req.Sort)
	}

	// the offset must fit in an int
	if req.Page-1 > math.MaxInt/req.Limit {
		return nil, invalid("page %d is out of range", req.Page)
	}

	events, err := s.eventRepo.FindAll(ctx, req.Offset(), req.Limit, req.Sort)
	if err != nil {
		return nil, err
	}

	total, err := s.eventRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Events retrieved",
		zap.Int("count", len(events)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
	)

	return response.NewPaginatedResponse(response.EventsToResponse(events), req.Page, req.Limit, total), nil
}

func (s *eventService) Get(ctx context.Context, eventID string) (*response.EventResponse, error) {
	id, err := parseID(eventID, "event")
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event %w", ErrNotFound)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) Create(ctx context.Context, req *request.CreateEventRequest) (*response.EventCreatedResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	location, err := toGeoPoint(req.Location)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		City:           req.City,
		Date:           req.Date,
		AvailableSeats: defaultAvailableSeats,
		Location:       location,
		Tags:           req.Tags,
		Reviews:        []entity.Review{},
		CreatedAt:      time.Now().UTC(),
	}
	if event.Category == "" {
		event.Category = defaultEventCategory
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.AvailableSeats != nil {
		event.AvailableSeats = *req.AvailableSeats
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.Hex()),
		zap.String("name", event.Name))

	return &response.EventCreatedResponse{EventID: event.ID.Hex()}, nil
}

func (s *eventService) Update(ctx context.Context, eventID string, req *request.UpdateEventRequest) error {
	id, err := parseID(eventID, "event")
	if err != nil {
		return err
	}
	if err := validate(req); err != nil {
		return err
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.AvailableSeats != nil {
		fields["available_seats"] = *req.AvailableSeats
	}
	if req.Location != nil {
		location, err := toGeoPoint(req.Location)
		if err != nil {
			return err
		}
		fields["location"] = location
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}

	if len(fields) == 0 {
		return invalid("no valid fields to update")
	}

	if err := s.eventRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("event %w", ErrNotFound)
		}
		return err
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))
	return nil
}

func (s *eventService) Delete(ctx context.Context, eventID string) error {
	id, err := parseID(eventID, "event")
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("event %w", ErrNotFound)
		}
		return err
	}

	s.log.Info("Event deleted", zap.String("event_id", eventID))
	return nil
}

func (s *eventService) Search(ctx context.Context, req *request.SearchEventRequest) ([]response.EventResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := entity.EventFilter{
		Category: req.Category,
		City:     req.City,
		Location: req.Location,
	}
	if req.MaxPrice != "" {
		maxPrice, ok := utils.ParseFloat(req.MaxPrice)
		if !ok {
			return nil, invalid("max_price must be a number")
		}
		filter.MaxPrice = &maxPrice
	}

	events, err := s.eventRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.EventsToResponse(events), nil
}

func (s *eventService) Nearby(ctx context.Context, req *request.NearbyEventRequest) ([]response.EventResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	lat, okLat := utils.ParseFloat(req.Lat)
	lon, okLon := utils.ParseFloat(req.Lon)
	if !okLat || !okLon {
		return nil, invalid("latitude and longitude required")
	}

	radius := defaultNearbyRadiusKm
	if req.Radius != "" {
		r, ok := utils.ParseFloat(req.Radius)
		if !ok || r <= 0 {
			return nil, invalid("radius must be a positive number of kilometers")
		}
		radius = r
	}

	events, err := s.eventRepo.Nearby(ctx, lon, lat, radius)
	if err != nil {
		return nil, err
	}

	return response.EventsToResponse(events), nil
}

func (s *eventService) CategoryStats(ctx context.Context) ([]response.CategoryStatResponse, error) {
	stats, err := s.eventRepo.CategoryStats(ctx, topCategoriesLimit)
	if err != nil {
		return nil, err
	}
	return response.CategoryStatsToResponse(stats), nil
}

func toGeoPoint(req *request.GeoPointRequest) (*entity.GeoPoint, error) {
	if req == nil {
		return nil, nil
	}

	if len(req.Coordinates) != 2 {
		return nil, invalid("location coordinates must be [longitude, latitude]")
	}
	lon, lat := req.Coordinates[0], req.Coordinates[1]
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, invalid("location coordinates out of range")
	}

	return &entity.GeoPoint{
		Type:        "Point",
		Coordinates: []float64{lon, lat},
		Name:        req.Name,
	}, nil
}
