// Package errors defines the typed application errors shared by every
// procedure.
//
// A fatal condition (schema mismatch, unparseable date, absent input file)
// is returned as an *AppError and aborts the run before any output file is
// written. Coercion failures use the same type but are row-scoped: the
// procedure records them as rejections and keeps going.
//
//	if errors.IsType(err, errors.ErrTypeSchema) {
//	    // input did not carry the expected columns
//	}
package errors
