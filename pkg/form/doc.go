// Package form coordinates validation of a single HTML form.
//
// A Form is built from a Schema, usually extracted from page markup with
// ParseMarkup, and keeps the current field values, the per-field status
// (untouched, valid, invalid) and an ordered map of error messages.
// Events from the page drive it:
//
//	f, err := form.New(schema)
//	res, _ := f.Blur(ctx, "email")  // validate one field
//	res, _ = f.Input(ctx, "email", v) // clear its error while typing
//	sub := f.Submit(ctx)            // validate all, Allowed reports the outcome
//
// A field has an error message exactly when its name appears in Errors,
// and IsValid is always equivalent to an empty error map. Rendering is
// left to package present.
package form
