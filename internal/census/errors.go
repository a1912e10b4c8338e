package census

import "fmt"

// DataError reports a structurally broken raw row: a missing required field
// or an unusable value. Row is the zero-based index into the raw input.
type DataError struct {
	Row   int
	Field string
	Msg   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error at row %d, field %s: %s", e.Row, e.Field, e.Msg)
}

// ValidationError reports a row that parsed but violates the dataset
// contract, such as a negative population count.
type ValidationError struct {
	Row   int
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error at row %d, field %s: %s", e.Row, e.Field, e.Msg)
}
