// Package constraints assembles the unique-constraint commands: generate,
// which emits the rename changelog for a branch, and list, which prints the
// master chain's surviving constraint additions.
package constraints
