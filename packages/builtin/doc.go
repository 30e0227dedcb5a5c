// Package builtin provides the functions available in plan commands.
//
// Available functions:
//   - uuid(): random UUID v4
//   - now(): current UTC time in RFC 3339
//   - timestamp(): current Unix timestamp
//   - date(layout): current UTC date, "2006-01-02" by default
//   - random(min, max): random integer in range
//   - randomString(length): random alphanumeric string
//   - randomEmail(): random e-mail address
//   - env(name, default): process environment variable
//
// Functions are invoked using the {{name(args)}} syntax.
package builtin
