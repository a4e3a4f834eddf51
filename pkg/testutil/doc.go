// Package testutil provides utilities for testing morsk components.
//
// Key components:
//   - TestEnvironment: points every morsk directory at a temp dir and
//     clears the MORSK_ settings so the developer's own configuration never
//     leaks into a test
//   - WriteFile: writes fixture files (tables, config files) inline
//
// All test data should be defined inline, not in external files.
package testutil
