package constraints

import (
	"github.com/spf13/cobra"

	"github.com/jlleitschuh/hibernate-changelog-gen/internal/rename"
)

const (
	generateUseConstant   = "generate <changelog> <output> <change-id>"
	generateShortConstant = "Generate a changelog renaming unique constraints to the branch's names"
	generateLongConstant  = "generate diffs the master changelog chain against the branch changelog and " +
		"emits a change-set that drops each superseded unique-constraint name and re-adds it under the branch's name."
	generateArgumentCountConstant    = 3
	changelogArgumentIndexConstant   = 0
	outputArgumentIndexConstant      = 1
	changeIDArgumentIndexConstant    = 2
	masterFlagNameConstant           = "master"
	masterFlagDescriptionConstant    = "Path to the master changelog aggregating the applied changelog fragments"
	authorFlagNameConstant           = "author"
	authorFlagDescriptionConstant    = "Change-set author (defaults to the invoking user)"
	generateCompletedMessageConstant = "generated %d constraint rename(s) in %s\n"
)

// GenerateCommandBuilder assembles the generate command.
type GenerateCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Service               RenameService
}

// Build constructs the generate command.
func (builder *GenerateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   generateUseConstant,
		Short: generateShortConstant,
		Long:  generateLongConstant,
		Args:  cobra.ExactArgs(generateArgumentCountConstant),
		RunE:  builder.run,
	}

	command.Flags().String(masterFlagNameConstant, "", masterFlagDescriptionConstant)
	command.Flags().String(authorFlagNameConstant, "", authorFlagDescriptionConstant)

	return command, nil
}

func (builder *GenerateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	masterPath, _ := command.Flags().GetString(masterFlagNameConstant)
	if len(masterPath) == 0 {
		masterPath = configuration.MasterChangelogPath
	}

	authorFlagValue, _ := command.Flags().GetString(authorFlagNameConstant)
	if len(authorFlagValue) == 0 {
		authorFlagValue = configuration.Author
	}
	author, authorError := resolveAuthor(authorFlagValue)
	if authorError != nil {
		return authorError
	}

	service := builder.resolveService()

	result, executionError := service.Execute(command.Context(), rename.GenerationOptions{
		MasterChangelogPath: masterPath,
		BranchChangelogPath: arguments[changelogArgumentIndexConstant],
		OutputPath:          arguments[outputArgumentIndexConstant],
		ChangeIdentifier:    arguments[changeIDArgumentIndexConstant],
		Author:              author,
	})
	if executionError != nil {
		return executionError
	}

	command.Printf(generateCompletedMessageConstant, result.RenameCount, result.OutputPath)
	return nil
}

func (builder *GenerateCommandBuilder) resolveService() RenameService {
	if builder.Service != nil {
		return builder.Service
	}
	return rename.NewService(rename.ServiceDependencies{Logger: resolveLogger(builder.LoggerProvider)})
}
