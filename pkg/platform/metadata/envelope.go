package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.orgdiff.io/orgdiff/pkg/models"
)

const metadataNS = "http://soap.sforce.com/2006/04/metadata"

// callOptionsClient identifies this tool to the metadata service.
const callOptionsClient = "orgdiff-layout-compare"

// xmlEscape escapes a value for interpolation into an envelope.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never fails.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// buildRetrieveEnvelope builds the soap body for the batched retrieve call.
// Every requested layout is named individually: the metadata api does not
// support wildcard layout retrieval, so one batched manifest is the only
// way to avoid a round trip per layout.
func buildRetrieveEnvelope(token, apiVersion string, layoutNames []string) []byte {
	var members strings.Builder
	for _, name := range layoutNames {
		members.WriteString("<met:members>" + xmlEscape(name) + "</met:members>")
	}

	soap := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:met="%s">
  <soapenv:Header>
    <met:CallOptions><met:client>%s</met:client></met:CallOptions>
    <met:SessionHeader><met:sessionId>%s</met:sessionId></met:SessionHeader>
  </soapenv:Header>
  <soapenv:Body>
    <met:retrieve>
      <met:retrieveRequest>
        <met:apiVersion>%s</met:apiVersion>
        <met:unpackaged>
          <met:types>%s<met:name>%s</met:name></met:types>
          <met:version>%s</met:version>
        </met:unpackaged>
      </met:retrieveRequest>
    </met:retrieve>
  </soapenv:Body>
</soapenv:Envelope>`,
		metadataNS, callOptionsClient, xmlEscape(token),
		xmlEscape(apiVersion), members.String(), models.LayoutMetadataType, xmlEscape(apiVersion))
	return []byte(soap)
}

// buildStatusEnvelope builds the soap body for one checkRetrieveStatus
// poll, requesting the zip inline on completion.
func buildStatusEnvelope(token, retrieveID string) []byte {
	soap := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:met="%s">
  <soapenv:Header>
    <met:SessionHeader><met:sessionId>%s</met:sessionId></met:SessionHeader>
  </soapenv:Header>
  <soapenv:Body>
    <met:checkRetrieveStatus>
      <met:asyncProcessId>%s</met:asyncProcessId>
      <met:includeZip>true</met:includeZip>
    </met:checkRetrieveStatus>
  </soapenv:Body>
</soapenv:Envelope>`,
		metadataNS, xmlEscape(token), xmlEscape(retrieveID))
	return []byte(soap)
}

// scanElements walks the response document and captures the character data
// of the first element matching each wanted local name, anywhere in the
// tree and regardless of namespace prefix. Returns an error only on
// malformed xml.
func scanElements(data []byte, want map[string]*string) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var current *string
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			current = nil
			if dst, ok := want[t.Name.Local]; ok && *dst == "" {
				current = dst
			}
		case xml.CharData:
			if current != nil {
				*current += string(t)
			}
		case xml.EndElement:
			current = nil
		}
	}
}
