package repository

import (
	"regexp"

	"eventmate/internal/data/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// sortable event fields accepted by EventRepository.FindAll
var sortableEventFields = map[string]bool{
	"name":            true,
	"date":            true,
	"price":           true,
	"category":        true,
	"city":            true,
	"available_seats": true,
	"created_at":      true,
}

func IsSortableEventField(field string) bool {
	return sortableEventFields[field]
}

// containsInsensitive matches value as a literal, case-insensitive substring
func containsInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// BuildSearchFilter ANDs together every filter that is set
func BuildSearchFilter(f entity.EventFilter) bson.M {
	filter := bson.M{}

	if f.Category != "" {
		filter["category"] = bson.M{"$regex": containsInsensitive(f.Category)}
	}
	if f.City != "" {
		filter["city"] = bson.M{"$regex": containsInsensitive(f.City)}
	}
	if f.Location != "" {
		filter["location.name"] = bson.M{"$regex": containsInsensitive(f.Location)}
	}
	if f.MaxPrice != nil {
		filter["price"] = bson.M{"$lte": *f.MaxPrice}
	}

	return filter
}

// BuildNearFilter selects events within radiusKm of (lon, lat), nearest first
func BuildNearFilter(lon, lat, radiusKm float64) bson.M {
	return bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": bson.A{lon, lat},
				},
				"$maxDistance": radiusKm * 1000,
			},
		},
	}
}

// CategoryStatsPipeline counts events per category and keeps the top `limit`
func CategoryStatsPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "total_events", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_events", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}
