package constraints

import (
	"github.com/spf13/cobra"

	"github.com/jlleitschuh/hibernate-changelog-gen/internal/rename"
)

const (
	listUseConstant   = "list"
	listShortConstant = "List the master chain's surviving unique-constraint additions"
	listLongConstant  = "list parses every changelog included by the master changelog and prints the " +
		"unique-constraint additions that have not been superseded by a later drop."
	listRowTemplateConstant   = "%s\t%s\t%s\n"
	listEmptyMessageConstant  = "no surviving unique constraints found\n"
	listHeaderTableConstant   = "TABLE"
	listHeaderColumnsConstant = "COLUMNS"
	listHeaderNameConstant    = "CONSTRAINT"
)

// ListCommandBuilder assembles the list command.
type ListCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Service               RenameService
}

// Build constructs the list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortConstant,
		Long:  listLongConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(masterFlagNameConstant, "", masterFlagDescriptionConstant)

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	masterPath, _ := command.Flags().GetString(masterFlagNameConstant)
	if len(masterPath) == 0 {
		masterPath = configuration.MasterChangelogPath
	}

	service := builder.resolveService()

	additions, listError := service.ListSurvivingConstraints(command.Context(), masterPath)
	if listError != nil {
		return listError
	}

	if len(additions) == 0 {
		command.Print(listEmptyMessageConstant)
		return nil
	}

	command.Printf(listRowTemplateConstant, listHeaderTableConstant, listHeaderColumnsConstant, listHeaderNameConstant)
	for _, addition := range additions {
		command.Printf(listRowTemplateConstant, addition.TableName, addition.ColumnNames, addition.ConstraintName)
	}
	return nil
}

func (builder *ListCommandBuilder) resolveService() RenameService {
	if builder.Service != nil {
		return builder.Service
	}
	return rename.NewService(rename.ServiceDependencies{Logger: resolveLogger(builder.LoggerProvider)})
}
