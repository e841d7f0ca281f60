// Package runtime provides the execution context for copybara commands.
//
// It encapsulates shared dependencies needed by actions, such as the loaded
// configuration and the logger.
package runtime
