// Package rename computes the drop/add operation pairs needed to migrate
// unique-constraint names between two changelog generations: it filters out
// constraints already dropped in the applied chain, matches surviving master
// constraints against the branch's replacements by table and column set, and
// assembles the resulting rename changelog document.
package rename
