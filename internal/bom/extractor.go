// Package bom extracts the oxygen sensor and wiring harness part numbers from
// a BOM explosion returned by the UBK transaction interface.
package bom

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/joao-fontenele/procon-bom/internal/domain"
)

const (
	itemTag           = "Bom"
	levelTag          = "DepthOfProdStructure"
	descriptionTag    = "MaterialDescription"
	productionFlagTag = "IndicatorItemRelevantToProduction"
	materialNumberTag = "MaterialNumber"

	levelOne       = ".1"
	levelTwo       = "..2"
	productionFlag = "X"
)

var (
	errNoRoot          = errors.New("document has no root element")
	errTextOutsideRoot = errors.New("document has text outside the root element")
)

// Extract parses raw and returns the last qualifying oxygen sensor and wiring
// harness material numbers in document order. Any parse failure collapses to
// domain.ParseErrorResult.
func Extract(raw string) domain.ExtractionResult {
	doc, err := parse(raw)
	if err != nil {
		return domain.ParseErrorResult()
	}

	var oxygen, wire *string
	for _, item := range Items(doc) {
		if !qualifies(item) {
			continue
		}

		number := item.MaterialNumber
		desc := strings.ToLower(item.Description)
		if isOxygenSensor(desc) {
			oxygen = &number
		}
		if isWiringHarness(desc) {
			wire = &number
		}
	}

	return domain.NewExtractionResult(oxygen, wire)
}

func parse(raw string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.ValidateInput = true
	if err := doc.ReadFromString(raw); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errNoRoot
	}
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return nil, errTextOutsideRoot
		}
	}
	return doc, nil
}

// Items returns every Bom element of doc in document order, at any depth and
// outside any namespace, that carries all four fields. Elements missing a
// field are skipped.
func Items(doc *etree.Document) []domain.BOMItem {
	var items []domain.BOMItem
	for _, el := range bomElements(doc.Root(), nil) {
		level := el.SelectElement(levelTag)
		desc := el.SelectElement(descriptionTag)
		flag := el.SelectElement(productionFlagTag)
		number := el.SelectElement(materialNumberTag)
		if level == nil || desc == nil || flag == nil || number == nil {
			continue
		}

		items = append(items, domain.BOMItem{
			Level:          level.Text(),
			Description:    desc.Text(),
			ProductionFlag: flag.Text(),
			MaterialNumber: number.Text(),
		})
	}
	return items
}

// bomElements appends el and its descendants named Bom in document order.
func bomElements(el *etree.Element, acc []*etree.Element) []*etree.Element {
	if el == nil {
		return acc
	}
	if el.Tag == itemTag && el.NamespaceURI() == "" {
		acc = append(acc, el)
	}
	for _, child := range el.ChildElements() {
		acc = bomElements(child, acc)
	}
	return acc
}

func qualifies(item domain.BOMItem) bool {
	if item.Level != levelOne && item.Level != levelTwo {
		return false
	}
	if item.ProductionFlag != productionFlag {
		return false
	}
	desc := strings.ToLower(item.Description)
	return isOxygenSensor(desc) || isWiringHarness(desc)
}

func isOxygenSensor(desc string) bool {
	return strings.Contains(desc, "oxygen sensor") && strings.Contains(desc, "vorm")
}

func isWiringHarness(desc string) bool {
	return strings.Contains(desc, "wiring harness")
}
