package entity

type Product struct {
	Base
	Name        string  `db:"name"`
	Slug        string  `db:"slug"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Currency    string  `db:"currency"`
	ImageURL    *string `db:"image_url"`
	InStock     bool    `db:"in_stock"`
}
