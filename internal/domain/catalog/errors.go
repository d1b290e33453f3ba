package catalog

import "errors"

// Domain errors for catalog items

var (
	ErrItemNameRequired = errors.New("catalog item name is required")
	ErrNegativeYield    = errors.New("catalog item yields cannot be negative")
	ErrUnknownCategory  = errors.New("catalog item category is not recognized")
	ErrDuplicateItem    = errors.New("catalog item with this name already exists")
	ErrItemNotFound     = errors.New("catalog item not found")
)
