package request

type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Slug        string  `json:"slug" validate:"required,min=2,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	InStock     bool    `json:"in_stock"`
}
