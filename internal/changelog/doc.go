// Package changelog models Liquibase changelog documents: parsing the
// unique-constraint records and include references consumed by the rename
// engine, and serializing generated changelog documents with the fixed
// Liquibase namespace declarations.
package changelog
