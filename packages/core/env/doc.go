// Package env handles plan variables and their interpolation.
//
// It provides functionality for:
//   - Loading .env files (.env, then .env.local)
//   - Selecting a named environment from a plan
//   - Interpolating {{name}}, {{$ENV_VAR}} and {{func(args)}} in commands
package env
