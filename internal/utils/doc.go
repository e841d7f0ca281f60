// Package utils provides small helpers shared by commands.
package utils
