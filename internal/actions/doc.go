// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a copybara command (migrate, validate, describe,
// history) and orchestrates the config, transform and git packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the Config and Splog
//   - Actions write their results through Splog so commands can redirect them
package actions
