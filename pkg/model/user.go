package model

type User struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string `json:"email" bson:"email" validate:"required,email"`
	Firstname string `json:"firstname" bson:"firstname" validate:"required,min=1,max=100"`
	Lastname  string `json:"lastname" bson:"lastname" validate:"required,min=1,max=100"`
}
