package ubkstub

import "github.com/beevik/etree"

type generatedItem struct {
	level, description, flag, suffix string
}

var generatedItems = []generatedItem{
	{".1", "Housing assembly", "X", "-HSG"},
	{".1", "Oxygen sensor VORM (upstream)", "X", "-O2"},
	{"..2", "Connector seal", "", "-SEAL"},
	{"..2", "Wiring harness, sensor", "X", "-WH"},
}

// GenerateBOM renders a BOM explosion response in the UBK shape: the echoed
// request first, then Result/Items holding one Bom element per item.
func GenerateBOM(materialNumber string, request *etree.Element) string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("BomExplosionResponse")
	echo := root.CreateElement("Request")
	if request != nil {
		for _, child := range request.ChildElements() {
			echo.AddChild(child.Copy())
		}
	}

	items := root.CreateElement("Result").CreateElement("Items")
	for _, it := range generatedItems {
		bom := items.CreateElement("Bom")
		bom.CreateElement("DepthOfProdStructure").SetText(it.level)
		bom.CreateElement("MaterialDescription").SetText(it.description)
		bom.CreateElement("IndicatorItemRelevantToProduction").SetText(it.flag)
		bom.CreateElement("MaterialNumber").SetText(materialNumber + it.suffix)
	}

	doc.Indent(2)
	out, _ := doc.WriteToString()
	return out
}
