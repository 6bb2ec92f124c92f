package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jlleitschuh/hibernate-changelog-gen/internal/changelog"
)

const (
	masterChangelogFieldNameConstant  = "master_changelog"
	branchChangelogFieldNameConstant  = "branch_changelog"
	outputPathFieldNameConstant       = "output_path"
	changeIdentifierFieldNameConstant = "change_id"
	authorFieldNameConstant           = "author"
	additionCountFieldNameConstant    = "addition_count"
	dropCountFieldNameConstant        = "drop_count"
	renameCountFieldNameConstant      = "rename_count"
	propertyCountFieldNameConstant    = "property_count"
	tableNameFieldNameConstant        = "table_name"
	columnNamesFieldNameConstant      = "column_names"
	matchCountFieldNameConstant       = "match_count"
	requiredValueMessageConstant      = "value must be provided"
	masterParsedMessageConstant       = "parsed master changelog chain"
	branchParsedMessageConstant       = "parsed branch changelog"
	renamesComputedMessageConstant    = "computed constraint renames"
	changelogWrittenMessageConstant   = "wrote rename changelog"
	fanOutWarningMessageConstant      = "master constraint matched multiple branch constraints"
	outputWriteErrorTemplateConstant  = "unable to write changelog %s: %w"
	outputFilePermissionsConstant     = 0o644
)

// InvalidInputError describes generation option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// ServiceDependencies describes collaborators for the rename service.
type ServiceDependencies struct {
	Logger *zap.Logger
}

// GenerationOptions configures one rename changelog generation run.
type GenerationOptions struct {
	MasterChangelogPath string
	BranchChangelogPath string
	OutputPath          string
	ChangeIdentifier    string
	Author              string
}

// GenerationResult captures the observable outcome of a generation run.
type GenerationResult struct {
	OutputPath    string
	RenameCount   int
	PropertyCount int
}

// Service orchestrates changelog parsing, the rename computation, and output
// serialization. All inputs are read to completion before any computation.
type Service struct {
	logger *zap.Logger
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) *Service {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Execute performs a full generation run: it loads the master changelog chain
// and the branch changelog, computes the rename pairs, and writes the
// resulting document to the configured output path. Nothing is written when
// any step fails.
func (service *Service) Execute(executionContext context.Context, options GenerationOptions) (GenerationResult, error) {
	if validationError := validateGenerationOptions(options); validationError != nil {
		return GenerationResult{}, validationError
	}

	masterAdditions, loadError := service.loadSurvivingMasterAdditions(options.MasterChangelogPath)
	if loadError != nil {
		return GenerationResult{}, loadError
	}

	branchChangelog, branchParseError := changelog.ParseChangelogFile(options.BranchChangelogPath)
	if branchParseError != nil {
		return GenerationResult{}, branchParseError
	}

	service.logger.Info(
		branchParsedMessageConstant,
		zap.String(branchChangelogFieldNameConstant, options.BranchChangelogPath),
		zap.Int(additionCountFieldNameConstant, len(branchChangelog.ConstraintAdditions)),
		zap.Int(propertyCountFieldNameConstant, len(branchChangelog.Properties)),
	)

	pairs := MatchAdditionsByTableAndColumns(masterAdditions, branchChangelog.ConstraintAdditions)
	service.warnOnFanOut(pairs)

	renames := make([]changelog.ConstraintRename, 0, len(pairs))
	for _, pair := range pairs {
		renameOperation, renameError := ComputeRename(pair)
		if renameError != nil {
			return GenerationResult{}, renameError
		}
		renames = append(renames, renameOperation)
	}

	service.logger.Info(
		renamesComputedMessageConstant,
		zap.Int(renameCountFieldNameConstant, len(renames)),
	)

	document := BuildRenameChangelog(renames, branchChangelog.Properties, options.ChangeIdentifier, options.Author)
	documentBytes, serializeError := changelog.SerializeDocument(document)
	if serializeError != nil {
		return GenerationResult{}, serializeError
	}

	if writeError := os.WriteFile(options.OutputPath, documentBytes, outputFilePermissionsConstant); writeError != nil {
		return GenerationResult{}, fmt.Errorf(outputWriteErrorTemplateConstant, options.OutputPath, writeError)
	}

	service.logger.Info(
		changelogWrittenMessageConstant,
		zap.String(outputPathFieldNameConstant, options.OutputPath),
		zap.String(changeIdentifierFieldNameConstant, options.ChangeIdentifier),
		zap.String(authorFieldNameConstant, options.Author),
		zap.Int(renameCountFieldNameConstant, len(renames)),
	)

	return GenerationResult{
		OutputPath:    options.OutputPath,
		RenameCount:   len(renames),
		PropertyCount: len(branchChangelog.Properties),
	}, nil
}

// ListSurvivingConstraints returns the master chain's constraint additions
// that have not been superseded by a later drop, in declaration order.
func (service *Service) ListSurvivingConstraints(executionContext context.Context, masterChangelogPath string) ([]changelog.UniqueConstraintAddition, error) {
	if len(masterChangelogPath) == 0 {
		return nil, InvalidInputError{FieldName: masterChangelogFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return service.loadSurvivingMasterAdditions(masterChangelogPath)
}

func (service *Service) loadSurvivingMasterAdditions(masterChangelogPath string) ([]changelog.UniqueConstraintAddition, error) {
	masterChangelog, masterParseError := changelog.ParseChangelogFile(masterChangelogPath)
	if masterParseError != nil {
		return nil, masterParseError
	}

	masterDirectory := filepath.Dir(masterChangelogPath)

	var additions []changelog.UniqueConstraintAddition
	var drops []changelog.UniqueConstraintDrop
	for _, includedFile := range masterChangelog.IncludedFiles {
		includedPath := filepath.Join(masterDirectory, includedFile)
		includedChangelog, includeParseError := changelog.ParseChangelogFile(includedPath)
		if includeParseError != nil {
			return nil, includeParseError
		}
		additions = append(additions, includedChangelog.ConstraintAdditions...)
		drops = append(drops, includedChangelog.ConstraintDrops...)
	}

	service.logger.Info(
		masterParsedMessageConstant,
		zap.String(masterChangelogFieldNameConstant, masterChangelogPath),
		zap.Int(additionCountFieldNameConstant, len(additions)),
		zap.Int(dropCountFieldNameConstant, len(drops)),
	)

	return FilterSupersededAdditions(additions, drops), nil
}

// warnOnFanOut surfaces master constraints matched by more than one branch
// constraint; the match is deliberately unguarded, so users must decide
// whether the fan-out is intended.
func (service *Service) warnOnFanOut(pairs []AdditionPair) {
	matchCounts := make(map[changelog.ConstraintIdentity]int, len(pairs))
	for _, pair := range pairs {
		matchCounts[pair.Master.Identity()]++
	}
	for _, pair := range pairs {
		identity := pair.Master.Identity()
		if matchCounts[identity] > 1 {
			service.logger.Warn(
				fanOutWarningMessageConstant,
				zap.String(tableNameFieldNameConstant, pair.Master.TableName),
				zap.String(columnNamesFieldNameConstant, pair.Master.ColumnNames),
				zap.Int(matchCountFieldNameConstant, matchCounts[identity]),
			)
			matchCounts[identity] = 0
		}
	}
}

func validateGenerationOptions(options GenerationOptions) error {
	requiredFields := []struct {
		fieldName string
		value     string
	}{
		{fieldName: masterChangelogFieldNameConstant, value: options.MasterChangelogPath},
		{fieldName: branchChangelogFieldNameConstant, value: options.BranchChangelogPath},
		{fieldName: outputPathFieldNameConstant, value: options.OutputPath},
		{fieldName: changeIdentifierFieldNameConstant, value: options.ChangeIdentifier},
		{fieldName: authorFieldNameConstant, value: options.Author},
	}
	for _, requiredField := range requiredFields {
		if len(requiredField.value) == 0 {
			return InvalidInputError{FieldName: requiredField.fieldName, Message: requiredValueMessageConstant}
		}
	}
	return nil
}
