package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Rule is a formatting constraint attached to a column, interpreted by the
// Knowledge Table service when it generates answers.
type Rule struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Column describes one classification question over the table's rows.
type Column struct {
	ID         string `json:"id"`
	Hidden     bool   `json:"hidden"`
	EntityType string `json:"entityType"`
	Type       string `json:"type"`
	Generate   bool   `json:"generate"`
	Query      string `json:"query"`
	Rules      []Rule `json:"rules"`
}

// Row holds one company name extracted from the document. Cells starts
// empty and is only ever filled from the service's response.
type Row struct {
	ID         string            `json:"id"`
	SourceData string            `json:"sourceData"`
	Hidden     bool              `json:"hidden"`
	Cells      map[string]string `json:"cells"`
}

// Chunk is a server-defined unit of extracted document content.
type Chunk struct {
	Content string `json:"content"`
}

// Cell is a single (row, column) answer produced by the service.
type Cell struct {
	RowID    string `json:"rowId"`
	ColumnID string `json:"columnId"`
	Answer   Answer `json:"answer"`
}

// Answer is a cell value as returned by the service. The columns declare a
// boolean type but carry a "Y/N" format rule, and the service has been seen
// returning strings, booleans and nulls, so decoding is tolerant.
type Answer string

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer(s)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*a = "Y"
		} else {
			*a = "N"
		}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Answer(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}

	if string(data) == "null" {
		*a = ""
		return nil
	}

	return fmt.Errorf("unsupported answer value: %s", data)
}

// Result is one reported classification, keyed the way the output file
// presents it.
type Result struct {
	Company   string `json:"Company"`
	IsIndian  string `json:"Is Indian"`
	IsStartup string `json:"Is Startup"`
	IsTech    string `json:"Is Tech"`
}
