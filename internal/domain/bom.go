package domain

// BOMItem is a single Bom node of an exploded bill of materials.
type BOMItem struct {
	Level          string
	Description    string
	ProductionFlag string
	MaterialNumber string
}

const (
	MessageOK           = "OK"
	MessageParseError   = "Error when parsing for oxygen and wire material number from the BOM from SAP."
	MessageBothMissing  = "Oxygen sensor and wire harness material number was not found."
	MessageOxygenAbsent = "Oxygen material number was not found."
	MessageWireAbsent   = "Wire material number was not found."
)

// Outcome classifies a lookup for metrics and the lookup history.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeOxygenMissing Outcome = "oxygen_missing"
	OutcomeWireMissing   Outcome = "wire_missing"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeParseError    Outcome = "parse_error"
	OutcomeUpstreamError Outcome = "upstream_error"
)

// ExtractionResult holds the part numbers found in a BOM document. A nil
// identifier is encoded as JSON null.
type ExtractionResult struct {
	OxygenSensor *string `json:"Oxygen Sensor"`
	WireHarness  *string `json:"Wire Harness"`
	Message      string  `json:"Message"`
}

// NewExtractionResult derives the message from which identifiers are present.
func NewExtractionResult(oxygen, wire *string) ExtractionResult {
	result := ExtractionResult{OxygenSensor: oxygen, WireHarness: wire}

	switch {
	case oxygen == nil && wire == nil:
		result.Message = MessageBothMissing
	case oxygen == nil:
		result.Message = MessageOxygenAbsent
	case wire == nil:
		result.Message = MessageWireAbsent
	default:
		result.Message = MessageOK
	}

	return result
}

// ParseErrorResult is the result for a document that could not be parsed.
// Both identifiers are nil.
func ParseErrorResult() ExtractionResult {
	return ExtractionResult{Message: MessageParseError}
}

// Outcome reports which identifiers r carries, or OutcomeParseError when the
// document was not parsed.
func (r ExtractionResult) Outcome() Outcome {
	switch {
	case r.Message == MessageParseError:
		return OutcomeParseError
	case r.OxygenSensor == nil && r.WireHarness == nil:
		return OutcomeNotFound
	case r.OxygenSensor == nil:
		return OutcomeOxygenMissing
	case r.WireHarness == nil:
		return OutcomeWireMissing
	default:
		return OutcomeOK
	}
}
