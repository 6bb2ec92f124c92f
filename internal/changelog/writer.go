package changelog

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	documentIndentConstant              = "    "
	documentEncodeErrorTemplateConstant = "unable to serialize changelog document: %w"
	trailingNewlineConstant             = "\n"
)

// SerializeDocument renders the document as an indented XML byte slice with
// the standard XML declaration. The whole document is materialized in memory
// so callers can write it out atomically or not at all.
func SerializeDocument(document Document) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	encoder := xml.NewEncoder(&buffer)
	encoder.Indent("", documentIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return nil, fmt.Errorf(documentEncodeErrorTemplateConstant, encodeError)
	}
	if flushError := encoder.Close(); flushError != nil {
		return nil, fmt.Errorf(documentEncodeErrorTemplateConstant, flushError)
	}

	buffer.WriteString(trailingNewlineConstant)
	return buffer.Bytes(), nil
}
