package changelog

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

const (
	changelogReadErrorTemplateConstant     = "unable to read changelog %s: %w"
	changelogDecodeErrorTemplateConstant   = "unable to parse changelog %s: %w"
	malformedRecordMessageTemplateConstant = "%s: <%s> record missing required attribute %q"
	fileAttributeNameConstant              = "file"
	includeElementNameConstant             = "include"
	tableNameAttributeNameConstant         = "tableName"
	columnNamesAttributeNameConstant       = "columnNames"
	constraintNameAttributeNameConstant    = "constraintName"
)

// MalformedRecordError reports a changelog record missing a required attribute.
type MalformedRecordError struct {
	FilePath      string
	ElementName   string
	AttributeName string
}

// Error names the file, element, and missing attribute.
func (recordError MalformedRecordError) Error() string {
	return fmt.Sprintf(malformedRecordMessageTemplateConstant, recordError.FilePath, recordError.ElementName, recordError.AttributeName)
}

// Changelog holds the validated records parsed from a single changelog file.
type Changelog struct {
	FilePath            string
	IncludedFiles       []string
	Properties          []Property
	ConstraintAdditions []UniqueConstraintAddition
	ConstraintDrops     []UniqueConstraintDrop
}

type parsedDocument struct {
	XMLName    xml.Name          `xml:"databaseChangeLog"`
	Includes   []parsedInclude   `xml:"include"`
	Properties []Property        `xml:"property"`
	ChangeSets []parsedChangeSet `xml:"changeSet"`
}

type parsedInclude struct {
	File string `xml:"file,attr"`
}

type parsedChangeSet struct {
	Additions []UniqueConstraintAddition `xml:"addUniqueConstraint"`
	Drops     []UniqueConstraintDrop     `xml:"dropUniqueConstraint"`
}

// ParseChangelogFile reads and validates one changelog file. Include
// references are reduced to their base file names; every constraint record is
// checked for its required attributes before the changelog is returned.
func ParseChangelogFile(filePath string) (Changelog, error) {
	contentBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return Changelog{}, fmt.Errorf(changelogReadErrorTemplateConstant, filePath, readError)
	}

	var document parsedDocument
	if decodeError := xml.Unmarshal(contentBytes, &document); decodeError != nil {
		return Changelog{}, fmt.Errorf(changelogDecodeErrorTemplateConstant, filePath, decodeError)
	}

	parsedChangelog := Changelog{FilePath: filePath, Properties: document.Properties}

	for _, include := range document.Includes {
		if len(include.File) == 0 {
			return Changelog{}, MalformedRecordError{FilePath: filePath, ElementName: includeElementNameConstant, AttributeName: fileAttributeNameConstant}
		}
		parsedChangelog.IncludedFiles = append(parsedChangelog.IncludedFiles, filepath.Base(include.File))
	}

	for _, changeSet := range document.ChangeSets {
		for _, addition := range changeSet.Additions {
			if validationError := validateAddition(filePath, addition); validationError != nil {
				return Changelog{}, validationError
			}
			parsedChangelog.ConstraintAdditions = append(parsedChangelog.ConstraintAdditions, addition)
		}
		for _, drop := range changeSet.Drops {
			if validationError := validateDrop(filePath, drop); validationError != nil {
				return Changelog{}, validationError
			}
			parsedChangelog.ConstraintDrops = append(parsedChangelog.ConstraintDrops, drop)
		}
	}

	return parsedChangelog, nil
}

func validateAddition(filePath string, addition UniqueConstraintAddition) error {
	requiredAttributes := []struct {
		name  string
		value string
	}{
		{name: tableNameAttributeNameConstant, value: addition.TableName},
		{name: columnNamesAttributeNameConstant, value: addition.ColumnNames},
		{name: constraintNameAttributeNameConstant, value: addition.ConstraintName},
	}
	for _, attribute := range requiredAttributes {
		if len(attribute.value) == 0 {
			return MalformedRecordError{FilePath: filePath, ElementName: addUniqueConstraintElementNameConstant, AttributeName: attribute.name}
		}
	}
	return nil
}

func validateDrop(filePath string, drop UniqueConstraintDrop) error {
	requiredAttributes := []struct {
		name  string
		value string
	}{
		{name: tableNameAttributeNameConstant, value: drop.TableName},
		{name: constraintNameAttributeNameConstant, value: drop.ConstraintName},
	}
	for _, attribute := range requiredAttributes {
		if len(attribute.value) == 0 {
			return MalformedRecordError{FilePath: filePath, ElementName: dropUniqueConstraintElementNameConstant, AttributeName: attribute.name}
		}
	}
	return nil
}
