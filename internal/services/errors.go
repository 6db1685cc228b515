package services

import "errors"

// ErrValidation marks caller mistakes (bad quantities, missing fields)
// so handlers can answer 400 instead of 500.
var ErrValidation = errors.New("validation failed")
