package rename

import (
	"fmt"

	"github.com/jlleitschuh/hibernate-changelog-gen/internal/changelog"
)

const (
	falseAttributeValueConstant           = "false"
	tableNameAttributeLabelConstant       = "tableName"
	columnNamesAttributeLabelConstant     = "columnNames"
	mismatchedPairMessageTemplateConstant = "matched constraint pair disagrees on %s: %q vs %q"
)

// MismatchedPairError signals that a supposedly matched constraint pair
// disagrees on an attribute the matcher guarantees to be equal. It indicates
// an input-consistency bug and is not recoverable.
type MismatchedPairError struct {
	AttributeName string
	MasterValue   string
	BranchValue   string
}

// Error names the disagreeing attribute and both values.
func (pairError MismatchedPairError) Error() string {
	return fmt.Sprintf(mismatchedPairMessageTemplateConstant, pairError.AttributeName, pairError.MasterValue, pairError.BranchValue)
}

// AdditionPair couples a master constraint addition with the branch addition
// replacing it under a new name.
type AdditionPair struct {
	Master changelog.UniqueConstraintAddition
	Branch changelog.UniqueConstraintAddition
}

// FilterSupersededAdditions removes every addition whose table and constraint
// name match a drop in the applied chain. Input order is preserved; applying
// the same drop set twice yields the same result as once.
func FilterSupersededAdditions(additions []changelog.UniqueConstraintAddition, drops []changelog.UniqueConstraintDrop) []changelog.UniqueConstraintAddition {
	droppedIdentities := make(map[changelog.ConstraintIdentity]struct{}, len(drops))
	for _, drop := range drops {
		droppedIdentities[drop.Identity()] = struct{}{}
	}

	surviving := make([]changelog.UniqueConstraintAddition, 0, len(additions))
	for _, addition := range additions {
		if _, dropped := droppedIdentities[addition.Identity()]; dropped {
			continue
		}
		surviving = append(surviving, addition)
	}
	return surviving
}

// MatchAdditionsByTableAndColumns pairs every master addition with every
// branch addition sharing the same table name and the same columnNames string
// but carrying a different constraint name. Column strings are compared
// byte-for-byte with no normalization. All combinations are yielded; a master
// addition may match zero, one, or many branch additions.
func MatchAdditionsByTableAndColumns(masterAdditions []changelog.UniqueConstraintAddition, branchAdditions []changelog.UniqueConstraintAddition) []AdditionPair {
	var pairs []AdditionPair
	for _, masterAddition := range masterAdditions {
		for _, branchAddition := range branchAdditions {
			if masterAddition.TableName != branchAddition.TableName {
				continue
			}
			if masterAddition.ColumnNames != branchAddition.ColumnNames {
				continue
			}
			if masterAddition.ConstraintName == branchAddition.ConstraintName {
				continue
			}
			pairs = append(pairs, AdditionPair{Master: masterAddition, Branch: branchAddition})
		}
	}
	return pairs
}

// ComputeRename turns a matched pair into its drop/add operation pair. The
// drop is keyed on the master's constraint name, the add carries the branch's
// constraint name with the master's table and columns, and the deferrable,
// disabled, and initiallyDeferred attributes are always reset to "false"
// regardless of their input values.
func ComputeRename(pair AdditionPair) (changelog.ConstraintRename, error) {
	if pair.Master.TableName != pair.Branch.TableName {
		return changelog.ConstraintRename{}, MismatchedPairError{
			AttributeName: tableNameAttributeLabelConstant,
			MasterValue:   pair.Master.TableName,
			BranchValue:   pair.Branch.TableName,
		}
	}
	if pair.Master.ColumnNames != pair.Branch.ColumnNames {
		return changelog.ConstraintRename{}, MismatchedPairError{
			AttributeName: columnNamesAttributeLabelConstant,
			MasterValue:   pair.Master.ColumnNames,
			BranchValue:   pair.Branch.ColumnNames,
		}
	}

	return changelog.ConstraintRename{
		Drop: changelog.UniqueConstraintDrop{
			ConstraintName: pair.Master.ConstraintName,
			TableName:      pair.Master.TableName,
		},
		Add: changelog.UniqueConstraintAddition{
			ColumnNames:       pair.Master.ColumnNames,
			ConstraintName:    pair.Branch.ConstraintName,
			Deferrable:        falseAttributeValueConstant,
			Disabled:          falseAttributeValueConstant,
			InitiallyDeferred: falseAttributeValueConstant,
			TableName:         pair.Master.TableName,
		},
	}, nil
}
