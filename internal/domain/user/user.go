package user

import "time"

type User struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Username     string        `json:"username" bson:"username"`
	Email        string        `json:"email" bson:"email"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	Rating       int           `json:"rating" bson:"rating"`
	Statistic    UserStatistic `json:"statistic" bson:"statistic"`
	PasswordHash string        `json:"-" bson:"password_hash"`
	PasswordSalt string        `json:"-" bson:"password_salt"`
}

type UserStatistic struct {
	Wins   int `json:"wins" bson:"wins"`
	Losses int `json:"losses" bson:"losses"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileResponse struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Rating    int           `json:"rating"`
	Statistic UserStatistic `json:"statistic"`
}
