package repository

import (
	"testing"

	"eventmate/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildSearchFilterEmpty(t *testing.T) {
	assert.Empty(t, BuildSearchFilter(entity.EventFilter{}))
}

func TestBuildSearchFilterCombinesCriteria(t *testing.T) {
	maxPrice := 50.0
	filter := BuildSearchFilter(entity.EventFilter{
		Category: "Music",
		City:     "New York",
		Location: "Hall",
		MaxPrice: &maxPrice,
	})

	require.Len(t, filter, 4)
	assert.Equal(t, bson.M{"$regex": primitive.Regex{Pattern: "Music", Options: "i"}}, filter["category"])
	assert.Equal(t, bson.M{"$regex": primitive.Regex{Pattern: "New York", Options: "i"}}, filter["city"])
	assert.Equal(t, bson.M{"$regex": primitive.Regex{Pattern: "Hall", Options: "i"}}, filter["location.name"])
	assert.Equal(t, bson.M{"$lte": 50.0}, filter["price"])
}

func TestBuildSearchFilterEscapesPatterns(t *testing.T) {
	filter := BuildSearchFilter(entity.EventFilter{City: "St. Louis (MO)"})

	regex := filter["city"].(bson.M)["$regex"].(primitive.Regex)
	assert.Equal(t, `St\. Louis \(MO\)`, regex.Pattern)
}

func TestBuildNearFilterUsesMeters(t *testing.T) {
	filter := BuildNearFilter(13.4, 52.5, 2.5)

	near := filter["location"].(bson.M)["$near"].(bson.M)
	assert.Equal(t, 2500.0, near["$maxDistance"])
	assert.Equal(t, bson.M{"type": "Point", "coordinates": bson.A{13.4, 52.5}}, near["$geometry"])
}

func TestCategoryStatsPipeline(t *testing.T) {
	pipeline := CategoryStatsPipeline(3)

	require.Len(t, pipeline, 3)
	assert.Equal(t, "$group", pipeline[0][0].Key)
	assert.Equal(t, "$sort", pipeline[1][0].Key)
	assert.Equal(t, bson.D{{Key: "$limit", Value: 3}}, pipeline[2])
}

func TestIsSortableEventField(t *testing.T) {
	for _, field := range []string{"name", "date", "price", "available_seats"} {
		assert.True(t, IsSortableEventField(field), field)
	}
	for _, field := range []string{"", "reviews", "password", "$where"} {
		assert.False(t, IsSortableEventField(field), field)
	}
}
