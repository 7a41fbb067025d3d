// Package transform turns a loaded school table into display entries:
// project the required columns, keep high schools, normalize casing and
// format label/value pairs, then encode them as a JSON array.
package transform
