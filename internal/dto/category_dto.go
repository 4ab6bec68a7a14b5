package dto

// CategoryResponse is the public shape of a category.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryForm is bound from the inline create form on /admin/categories.
type CategoryForm struct {
	Name string `form:"name" validate:"required,min=1,max=255"`
}
