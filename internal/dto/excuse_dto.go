package dto

// ExcuseResponse is the public shape of a stored excuse.
type ExcuseResponse struct {
	ID         uint   `json:"id"`
	Content    string `json:"content"`
	CategoryID uint   `json:"category_id"`
}

// LegacyExcuseResponse is served by the pre-database /api/excuse/:id endpoint.
type LegacyExcuseResponse struct {
	Text string `json:"text"`
	Type int    `json:"type"`
}

// ExcuseForm is bound from the admin new/edit forms.
type ExcuseForm struct {
	Content    string `form:"content"     validate:"required,min=1"`
	CategoryID uint   `form:"category_id" validate:"required,gt=0"`
}
