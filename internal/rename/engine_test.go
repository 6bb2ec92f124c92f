package rename_test

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/jlleitschuh/hibernate-changelog-gen/internal/changelog"
	"github.com/jlleitschuh/hibernate-changelog-gen/internal/rename"
)

const (
	exampleTableNameConstant            = "attachednetworkdevicejpa"
	exampleColumnNamesConstant          = "uuid, macaddress, vlan"
	exampleMasterConstraintNameConstant = "attachednetworkdevicejpa_uuid_macaddress_vlan_key"
	exampleBranchConstraintNameConstant = "uk_2o0nn8nq8eoo40bpyyq5k9anh"
	falseAttributeValueConstant         = "false"
	trueAttributeValueConstant          = "true"
	randomRecordCountConstant           = 25
	randomSeedConstant                  = 1337
)

func exampleMasterAddition() changelog.UniqueConstraintAddition {
	return changelog.UniqueConstraintAddition{
		ColumnNames:       exampleColumnNamesConstant,
		ConstraintName:    exampleMasterConstraintNameConstant,
		Deferrable:        falseAttributeValueConstant,
		Disabled:          falseAttributeValueConstant,
		InitiallyDeferred: falseAttributeValueConstant,
		TableName:         exampleTableNameConstant,
	}
}

func exampleBranchAddition() changelog.UniqueConstraintAddition {
	return changelog.UniqueConstraintAddition{
		ColumnNames:    exampleColumnNamesConstant,
		ConstraintName: exampleBranchConstraintNameConstant,
		TableName:      exampleTableNameConstant,
	}
}

func TestFilterSupersededAdditions(testInstance *testing.T) {
	testInstance.Parallel()

	retainedAddition := changelog.UniqueConstraintAddition{
		ColumnNames:    "foreignuuid",
		ConstraintName: "ethertypeinternalaffinityelementjpa_foreignuuid_key",
		TableName:      "ethertypeinternalaffinityelementjpa",
	}
	supersededAddition := changelog.UniqueConstraintAddition{
		ColumnNames:    "uuid",
		ConstraintName: "ethertypeinternalaffinityelementjpa_uuid_key",
		TableName:      "ethertypeinternalaffinityelementjpa",
	}
	matchingDrop := changelog.UniqueConstraintDrop{
		ConstraintName: "ethertypeinternalaffinityelementjpa_uuid_key",
		TableName:      "ethertypeinternalaffinityelementjpa",
	}

	testCases := []struct {
		name          string
		additions     []changelog.UniqueConstraintAddition
		drops         []changelog.UniqueConstraintDrop
		expectedNames []string
	}{
		{
			name:          "MatchingDropExcludesAddition",
			additions:     []changelog.UniqueConstraintAddition{retainedAddition, supersededAddition},
			drops:         []changelog.UniqueConstraintDrop{matchingDrop},
			expectedNames: []string{retainedAddition.ConstraintName},
		},
		{
			name:          "NoDropsRetainsEveryAddition",
			additions:     []changelog.UniqueConstraintAddition{retainedAddition, supersededAddition},
			drops:         nil,
			expectedNames: []string{retainedAddition.ConstraintName, supersededAddition.ConstraintName},
		},
		{
			name: "SameNameDifferentTableIsRetained",
			additions: []changelog.UniqueConstraintAddition{
				{ColumnNames: "uuid", ConstraintName: "shared_key", TableName: "first_table"},
			},
			drops: []changelog.UniqueConstraintDrop{
				{ConstraintName: "shared_key", TableName: "second_table"},
			},
			expectedNames: []string{"shared_key"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			filtered := rename.FilterSupersededAdditions(testCase.additions, testCase.drops)

			filteredNames := make([]string, 0, len(filtered))
			for _, addition := range filtered {
				filteredNames = append(filteredNames, addition.ConstraintName)
			}
			require.Equal(subtest, testCase.expectedNames, filteredNames)
		})
	}
}

func TestFilterSupersededAdditionsIsIdempotent(testInstance *testing.T) {
	testInstance.Parallel()

	gofakeit.Seed(randomSeedConstant)

	additions := make([]changelog.UniqueConstraintAddition, 0, randomRecordCountConstant)
	drops := make([]changelog.UniqueConstraintDrop, 0, randomRecordCountConstant/2)
	for additionIndex := 0; additionIndex < randomRecordCountConstant; additionIndex++ {
		tableName := fmt.Sprintf("%sjpa", gofakeit.LetterN(12))
		columnName := gofakeit.LetterN(8)
		addition := changelog.UniqueConstraintAddition{
			ColumnNames:    columnName,
			ConstraintName: fmt.Sprintf("%s_%s_key", tableName, columnName),
			TableName:      tableName,
		}
		additions = append(additions, addition)
		if additionIndex%2 == 0 {
			drops = append(drops, changelog.UniqueConstraintDrop{
				ConstraintName: addition.ConstraintName,
				TableName:      addition.TableName,
			})
		}
	}

	filteredOnce := rename.FilterSupersededAdditions(additions, drops)
	filteredTwice := rename.FilterSupersededAdditions(filteredOnce, drops)

	require.Equal(testInstance, filteredOnce, filteredTwice)
}

func TestMatchAdditionsByTableAndColumns(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name              string
		masterAdditions   []changelog.UniqueConstraintAddition
		branchAdditions   []changelog.UniqueConstraintAddition
		expectedPairCount int
	}{
		{
			name:              "SameTableAndColumnsDifferingNamesYieldsOnePair",
			masterAdditions:   []changelog.UniqueConstraintAddition{exampleMasterAddition()},
			branchAdditions:   []changelog.UniqueConstraintAddition{exampleBranchAddition()},
			expectedPairCount: 1,
		},
		{
			name:            "DifferingTableYieldsNoPair",
			masterAdditions: []changelog.UniqueConstraintAddition{exampleMasterAddition()},
			branchAdditions: []changelog.UniqueConstraintAddition{
				{ColumnNames: exampleColumnNamesConstant, ConstraintName: exampleBranchConstraintNameConstant, TableName: "othertablejpa"},
			},
			expectedPairCount: 0,
		},
		{
			name:            "DifferingColumnStringYieldsNoPair",
			masterAdditions: []changelog.UniqueConstraintAddition{exampleMasterAddition()},
			branchAdditions: []changelog.UniqueConstraintAddition{
				{ColumnNames: "uuid,macaddress,vlan", ConstraintName: exampleBranchConstraintNameConstant, TableName: exampleTableNameConstant},
			},
			expectedPairCount: 0,
		},
		{
			name:              "EqualConstraintNamesYieldNoPair",
			masterAdditions:   []changelog.UniqueConstraintAddition{exampleMasterAddition()},
			branchAdditions:   []changelog.UniqueConstraintAddition{exampleMasterAddition()},
			expectedPairCount: 0,
		},
		{
			name:            "MasterMatchingTwoBranchAdditionsYieldsTwoPairs",
			masterAdditions: []changelog.UniqueConstraintAddition{exampleMasterAddition()},
			branchAdditions: []changelog.UniqueConstraintAddition{
				exampleBranchAddition(),
				{ColumnNames: exampleColumnNamesConstant, ConstraintName: "uk_other_generated_name", TableName: exampleTableNameConstant},
			},
			expectedPairCount: 2,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			pairs := rename.MatchAdditionsByTableAndColumns(testCase.masterAdditions, testCase.branchAdditions)
			require.Len(subtest, pairs, testCase.expectedPairCount)

			for _, pair := range pairs {
				require.Equal(subtest, pair.Master.TableName, pair.Branch.TableName)
				require.Equal(subtest, pair.Master.ColumnNames, pair.Branch.ColumnNames)
				require.NotEqual(subtest, pair.Master.ConstraintName, pair.Branch.ConstraintName)
			}
		})
	}
}

func TestComputeRename(testInstance *testing.T) {
	testInstance.Parallel()

	pair := rename.AdditionPair{Master: exampleMasterAddition(), Branch: exampleBranchAddition()}

	renameOperation, renameError := rename.ComputeRename(pair)
	require.NoError(testInstance, renameError)

	require.Equal(testInstance, changelog.UniqueConstraintDrop{
		ConstraintName: exampleMasterConstraintNameConstant,
		TableName:      exampleTableNameConstant,
	}, renameOperation.Drop)

	require.Equal(testInstance, changelog.UniqueConstraintAddition{
		ColumnNames:       exampleColumnNamesConstant,
		ConstraintName:    exampleBranchConstraintNameConstant,
		Deferrable:        falseAttributeValueConstant,
		Disabled:          falseAttributeValueConstant,
		InitiallyDeferred: falseAttributeValueConstant,
		TableName:         exampleTableNameConstant,
	}, renameOperation.Add)
}

func TestComputeRenameResetsFlagAttributes(testInstance *testing.T) {
	testInstance.Parallel()

	masterAddition := exampleMasterAddition()
	masterAddition.Deferrable = trueAttributeValueConstant
	masterAddition.Disabled = trueAttributeValueConstant
	masterAddition.InitiallyDeferred = trueAttributeValueConstant

	branchAddition := exampleBranchAddition()
	branchAddition.Deferrable = trueAttributeValueConstant

	renameOperation, renameError := rename.ComputeRename(rename.AdditionPair{Master: masterAddition, Branch: branchAddition})
	require.NoError(testInstance, renameError)

	require.Equal(testInstance, falseAttributeValueConstant, renameOperation.Add.Deferrable)
	require.Equal(testInstance, falseAttributeValueConstant, renameOperation.Add.Disabled)
	require.Equal(testInstance, falseAttributeValueConstant, renameOperation.Add.InitiallyDeferred)
}

func TestComputeRenameRejectsMismatchedPairs(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name              string
		mutateBranch      func(addition *changelog.UniqueConstraintAddition)
		expectedAttribute string
	}{
		{
			name: "TableNameMismatch",
			mutateBranch: func(addition *changelog.UniqueConstraintAddition) {
				addition.TableName = "othertablejpa"
			},
			expectedAttribute: "tableName",
		},
		{
			name: "ColumnNamesMismatch",
			mutateBranch: func(addition *changelog.UniqueConstraintAddition) {
				addition.ColumnNames = "uuid"
			},
			expectedAttribute: "columnNames",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			branchAddition := exampleBranchAddition()
			testCase.mutateBranch(&branchAddition)

			_, renameError := rename.ComputeRename(rename.AdditionPair{Master: exampleMasterAddition(), Branch: branchAddition})
			require.Error(subtest, renameError)

			var mismatchedPairError rename.MismatchedPairError
			require.ErrorAs(subtest, renameError, &mismatchedPairError)
			require.Equal(subtest, testCase.expectedAttribute, mismatchedPairError.AttributeName)
		})
	}
}
