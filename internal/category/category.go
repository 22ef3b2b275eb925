package category

import (
	categoryDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
)

var descriptions = map[categoryDatamodel.Category]string{
	categoryDatamodel.Food:      "Groceries, restaurants and takeaway",
	categoryDatamodel.Transport: "Fuel, fares, parking and ride hailing",
	categoryDatamodel.Bills:     "Rent, utilities, phone and subscriptions",
	categoryDatamodel.Shopping:  "Clothes, electronics and household goods",
	categoryDatamodel.Other:     "Anything that fits nowhere else",
}

type Category struct {
	Name        categoryDatamodel.Category
	Description string
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		Name:        string(c.Name),
		Description: c.Description,
	}
}

func FromDataModel(c categoryDatamodel.Category) *Category {
	return &Category{
		Name:        c,
		Description: descriptions[c],
	}
}
