// Package utils provides shared configuration loading and logging helpers
// used by the changelog-gen command hierarchy.
package utils
