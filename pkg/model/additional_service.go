package model

// AdditionalService is a flat-priced add-on (breakfast, parking, late
// checkout) charged once per booking regardless of stay length.
type AdditionalService struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name  string `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Price int    `json:"price" bson:"price" validate:"min=0"`
}
