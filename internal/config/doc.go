// Package config loads copybara configuration files and builds transformation
// chains from them.
//
// Configuration is read from a YAML file and overridden by COPYBARA_ prefixed
// environment variables, where a double underscore separates nested keys
// (COPYBARA_LOG__DEBUG=true sets log.debug).
package config
