// Package validator provides composable, side-effect-free validation rules.
//
// Rules are plain values combining a check with the error reported when the
// check fails. Apply evaluates every rule and collects every failure, so a
// caller receives the complete error set in rule order rather than the first
// failure only:
//
//	err := validator.Apply(
//		validator.RequiredString("name", name),
//		validator.MaxLenString("name", name, 100),
//		validator.ValidEmail("email", email),
//	)
//	if errs := validator.ExtractValidationErrors(err); !errs.IsEmpty() {
//		// errs.Messages() in rule order
//	}
//
// WithMessage overrides the default message when the caller needs specific
// user-facing wording.
package validator
