// Package sanitizer provides string transformations for cleaning user input
// before it reaches HTML output, mail headers, or log files.
//
// Transforms are plain func(string) string values composable with Apply:
//
//	clean := sanitizer.Apply(raw,
//		sanitizer.Trim,
//		sanitizer.RemoveControlChars,
//		sanitizer.EscapeHTML,
//	)
//
// Compose builds a reusable pipeline from the same transforms.
package sanitizer
