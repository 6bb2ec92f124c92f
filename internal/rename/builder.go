package rename

import (
	"github.com/jlleitschuh/hibernate-changelog-gen/internal/changelog"
)

const (
	generatedCommentConstant = "Constraint naming convention was changed between Hibernate 3 and 4. " +
		"This change-set was generated by hibernate-changelog-gen."
	replacementDbmsConstant   = "postgresql"
	replacementSearchConstant = "WITH"
	replacementResultConstant = "WITHOUT"
)

// BuildRenameChangelog assembles the output document: the branch changelog's
// properties passed through verbatim in input order, followed by a single
// change-set holding every rename pair in order and a trailing PostgreSQL
// text substitution rewriting the WITH token to WITHOUT.
func BuildRenameChangelog(renames []changelog.ConstraintRename, properties []changelog.Property, changeIdentifier string, author string) changelog.Document {
	changeSet := changelog.ChangeSet{
		Author:     author,
		Identifier: changeIdentifier,
		Comment:    generatedCommentConstant,
		Renames:    renames,
		SQLReplacement: &changelog.SQLReplacement{
			Dbms:    replacementDbmsConstant,
			Search:  replacementSearchConstant,
			Replace: replacementResultConstant,
		},
	}

	return changelog.Document{
		Properties: properties,
		ChangeSets: []changelog.ChangeSet{changeSet},
	}
}
