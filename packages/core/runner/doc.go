// Package runner dispatches lifecycle hooks and drives test suites.
//
// It provides functionality for:
//   - Collecting the hooks of a kind for a class, instance and runner context
//   - Dispatching each hook under the skip policy, driver substitution and
//     the retry policy
//   - Running a whole suite lifecycle, sequentially or with parallel classes
//   - Shell command and wait-for hook bodies
//
// Every worker carries its own Session; a Session is never shared between
// goroutines.
package runner
