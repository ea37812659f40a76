package equipment

import "errors"

var (
	ErrNotFound  = errors.New("equipment not found")
	ErrForbidden = errors.New("not the operator of this equipment")
)
