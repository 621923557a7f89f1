package model

// Room is a bookable hotel room. Available is a derived cache meaning "no
// active booking exists for this room"; conflict checks never consult it and
// the booking workflow recomputes it after every mutation.
type Room struct {
	ID            string   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Number        int      `json:"number" bson:"number" validate:"required,min=1"`
	Name          string   `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Capacity      int      `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	PricePerNight int      `json:"price_per_night" bson:"price_per_night" validate:"required,min=0"`
	Description   string   `json:"description,omitempty" bson:"description,omitempty"`
	Available     bool     `json:"available" bson:"available"`
	ServiceIDs    []string `json:"service_ids,omitempty" bson:"service_ids,omitempty" validate:"omitempty,dive,mongodb"`
}
