package format

import (
	"encoding/xml"
	"fmt"

	"github.com/ismailtasdelen/hackertarget/pkg/models"
)

type xmlFormatter struct{}

type xmlMetadata struct {
	Tool   string `xml:"tool"`
	Target string `xml:"target"`
}

type xmlDocument struct {
	XMLName  xml.Name     `xml:"hackertarget"`
	Metadata *xmlMetadata `xml:"metadata,omitempty"`
	Data     string       `xml:"data,omitempty"`
	Results  []xmlItem    `xml:"results>item,omitempty"`
}

type xmlItem struct {
	Target  string `xml:"target"`
	Success bool   `xml:"success"`
	Data    string `xml:"data,omitempty"`
	Error   string `xml:"error,omitempty"`
}

func (f *xmlFormatter) Format(res *models.QueryResult) (string, error) {
	doc := xmlDocument{
		Metadata: &xmlMetadata{Tool: res.Tool, Target: res.Target},
		Data:     res.Data,
	}
	return marshalXML(doc)
}

func (f *xmlFormatter) FormatBatch(results []models.BatchResult) (string, error) {
	doc := xmlDocument{}
	for _, r := range results {
		doc.Results = append(doc.Results, xmlItem{
			Target:  r.Target,
			Success: r.Success,
			Data:    r.Data,
			Error:   r.Error,
		})
	}
	return marshalXML(doc)
}

func marshalXML(doc xmlDocument) (string, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal xml: %w", err)
	}
	return xml.Header + string(out), nil
}
