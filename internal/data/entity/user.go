package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base         `bson:",inline"`
	Username     string   `bson:"username"`
	PasswordHash string   `bson:"password"`
	Role         UserRole `bson:"role"`
}
