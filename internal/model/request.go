package model

// GetByIDPayload binds the :id path parameter of the lookup routes.
type GetByIDPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
}

// Validate checks that the path parameter is present.
func (p *GetByIDPayload) Validate() error {
	return validate.Struct(p)
}

// EmptyPayload is used by routes that take no input.
type EmptyPayload struct{}

// Validate always succeeds.
func (p *EmptyPayload) Validate() error {
	return nil
}
