package entity

// Review is embedded in Event.Reviews and has no collection of its own.
// ID is a hex ObjectID string generated when the review is added.
type Review struct {
	ID      string `bson:"_id"`
	UserID  string `bson:"user_id,omitempty"`
	Comment string `bson:"comment"`
	Rating  int    `bson:"rating"`
	Date    string `bson:"date"`
}

// ReviewUpdate holds the fields to overwrite; nil fields keep their value
type ReviewUpdate struct {
	Comment *string
	Rating  *int
	Date    *string
}
