// Package validation validates request payloads and turns failures into
// INVALID_INPUT application errors.
//
// Struct tag validation uses go-playground/validator. A field may carry a
// msg tag with the message reported when any of its rules fail:
//
//	type MovieInfo struct {
//	    Name string `json:"name" validate:"required" msg:"movieInfo.name must be present"`
//	}
//
// Messages are de-duplicated, sorted and joined with commas.
//
// Programmatic checks collect the same way:
//
//	err := validation.New().Required("id", id).Min("year", year, 1).Validate()
package validation
