package changelog

import (
	"encoding/xml"
)

const (
	// ChangelogNamespace is the Liquibase changelog XML namespace.
	ChangelogNamespace = "http://www.liquibase.org/xml/ns/dbchangelog"
	// ChangelogExtensionNamespace is the Liquibase extension XML namespace.
	ChangelogExtensionNamespace = "http://www.liquibase.org/xml/ns/dbchangelog-ext"
	// SchemaInstanceNamespace is the W3C XML schema-instance namespace.
	SchemaInstanceNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	// ChangelogSchemaLocation pins the generated documents to the Liquibase 3.4 schema.
	ChangelogSchemaLocation = ChangelogExtensionNamespace +
		" http://www.liquibase.org/xml/ns/dbchangelog/dbchangelog-ext.xsd " +
		ChangelogNamespace +
		" http://www.liquibase.org/xml/ns/dbchangelog/dbchangelog-3.4.xsd"
)

const (
	databaseChangeLogElementNameConstant    = "databaseChangeLog"
	propertyElementNameConstant             = "property"
	changeSetElementNameConstant            = "changeSet"
	commentElementNameConstant              = "comment"
	addUniqueConstraintElementNameConstant  = "addUniqueConstraint"
	dropUniqueConstraintElementNameConstant = "dropUniqueConstraint"
	modifySQLElementNameConstant            = "modifySql"
	replaceElementNameConstant              = "replace"
	authorAttributeNameConstant             = "author"
	identifierAttributeNameConstant         = "id"
	dbmsAttributeNameConstant               = "dbms"
	replaceAttributeNameConstant            = "replace"
	withAttributeNameConstant               = "with"
)

// Property carries a changelog property record verbatim, preserving every attribute.
type Property struct {
	Attributes []xml.Attr `xml:",any,attr"`
}

// UniqueConstraintAddition describes an addUniqueConstraint record. The
// columnNames value is an opaque comma-separated string and is never parsed.
type UniqueConstraintAddition struct {
	ColumnNames       string `xml:"columnNames,attr"`
	ConstraintName    string `xml:"constraintName,attr"`
	Deferrable        string `xml:"deferrable,attr,omitempty"`
	Disabled          string `xml:"disabled,attr,omitempty"`
	InitiallyDeferred string `xml:"initiallyDeferred,attr,omitempty"`
	TableName         string `xml:"tableName,attr"`
}

// UniqueConstraintDrop describes a dropUniqueConstraint record.
type UniqueConstraintDrop struct {
	ConstraintName string `xml:"constraintName,attr"`
	TableName      string `xml:"tableName,attr"`
}

// ConstraintIdentity identifies a unique constraint by table and name.
type ConstraintIdentity struct {
	TableName      string
	ConstraintName string
}

// Identity returns the addition's table/name identity.
func (addition UniqueConstraintAddition) Identity() ConstraintIdentity {
	return ConstraintIdentity{TableName: addition.TableName, ConstraintName: addition.ConstraintName}
}

// Identity returns the drop's table/name identity.
func (drop UniqueConstraintDrop) Identity() ConstraintIdentity {
	return ConstraintIdentity{TableName: drop.TableName, ConstraintName: drop.ConstraintName}
}

// ConstraintRename pairs the drop of an old constraint name with the addition
// re-creating it under the new name. The drop is always emitted before the add.
type ConstraintRename struct {
	Drop UniqueConstraintDrop
	Add  UniqueConstraintAddition
}

// SQLReplacement is a literal token substitution applied by Liquibase to the
// generated SQL for a specific database dialect.
type SQLReplacement struct {
	Dbms    string
	Search  string
	Replace string
}

// ChangeSet is a generated change-set: a provenance comment, ordered
// drop-then-add rename pairs, and an optional trailing SQL replacement.
type ChangeSet struct {
	Author         string
	Identifier     string
	Comment        string
	Renames        []ConstraintRename
	SQLReplacement *SQLReplacement
}

// Document is a generated databaseChangeLog document.
type Document struct {
	Properties []Property
	ChangeSets []ChangeSet
}

// MarshalXML emits the change-set with its comment first, each rename as a
// dropUniqueConstraint immediately followed by its addUniqueConstraint, and
// the SQL replacement directive last.
func (changeSet ChangeSet) MarshalXML(encoder *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: changeSetElementNameConstant}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: authorAttributeNameConstant}, Value: changeSet.Author},
		{Name: xml.Name{Local: identifierAttributeNameConstant}, Value: changeSet.Identifier},
	}
	if startError := encoder.EncodeToken(start); startError != nil {
		return startError
	}

	commentElement := xml.StartElement{Name: xml.Name{Local: commentElementNameConstant}}
	if commentError := encoder.EncodeElement(changeSet.Comment, commentElement); commentError != nil {
		return commentError
	}

	for _, rename := range changeSet.Renames {
		dropElement := xml.StartElement{Name: xml.Name{Local: dropUniqueConstraintElementNameConstant}}
		if dropError := encoder.EncodeElement(rename.Drop, dropElement); dropError != nil {
			return dropError
		}
		addElement := xml.StartElement{Name: xml.Name{Local: addUniqueConstraintElementNameConstant}}
		if addError := encoder.EncodeElement(rename.Add, addElement); addError != nil {
			return addError
		}
	}

	if changeSet.SQLReplacement != nil {
		if replacementError := changeSet.SQLReplacement.encode(encoder); replacementError != nil {
			return replacementError
		}
	}

	return encoder.EncodeToken(start.End())
}

func (replacement SQLReplacement) encode(encoder *xml.Encoder) error {
	modifySQLStart := xml.StartElement{
		Name: xml.Name{Local: modifySQLElementNameConstant},
		Attr: []xml.Attr{{Name: xml.Name{Local: dbmsAttributeNameConstant}, Value: replacement.Dbms}},
	}
	if startError := encoder.EncodeToken(modifySQLStart); startError != nil {
		return startError
	}

	replaceStart := xml.StartElement{
		Name: xml.Name{Local: replaceElementNameConstant},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: replaceAttributeNameConstant}, Value: replacement.Search},
			{Name: xml.Name{Local: withAttributeNameConstant}, Value: replacement.Replace},
		},
	}
	if replaceError := encoder.EncodeToken(replaceStart); replaceError != nil {
		return replaceError
	}
	if replaceEndError := encoder.EncodeToken(replaceStart.End()); replaceEndError != nil {
		return replaceEndError
	}

	return encoder.EncodeToken(modifySQLStart.End())
}

// MarshalXML emits the databaseChangeLog root with the fixed namespace and
// schema-location declarations, properties first, then change-sets.
func (document Document) MarshalXML(encoder *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: databaseChangeLogElementNameConstant}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns"}, Value: ChangelogNamespace},
		{Name: xml.Name{Local: "xmlns:ext"}, Value: ChangelogExtensionNamespace},
		{Name: xml.Name{Local: "xmlns:xsi"}, Value: SchemaInstanceNamespace},
		{Name: xml.Name{Local: "xsi:schemaLocation"}, Value: ChangelogSchemaLocation},
	}
	if startError := encoder.EncodeToken(start); startError != nil {
		return startError
	}

	for _, property := range document.Properties {
		propertyElement := xml.StartElement{Name: xml.Name{Local: propertyElementNameConstant}}
		if propertyError := encoder.EncodeElement(property, propertyElement); propertyError != nil {
			return propertyError
		}
	}

	for _, changeSet := range document.ChangeSets {
		changeSetElement := xml.StartElement{Name: xml.Name{Local: changeSetElementNameConstant}}
		if changeSetError := encoder.EncodeElement(changeSet, changeSetElement); changeSetError != nil {
			return changeSetError
		}
	}

	return encoder.EncodeToken(start.End())
}
