package lookup

import "github.com/joao-fontenele/procon-bom/internal/transaction"

const (
	fieldMaterialNumber = "MaterialNumber"
	fieldExplosionDate  = "ExplosionDate"
	explosionDateLayout = "2006-01-02"
)

// NewBOMConfig returns the BOM explosion transaction. Default param values
// are the plant-wide UBK defaults; the material number and explosion date
// come from each request.
func NewBOMConfig(appID, targetSystem, templateID, countPoint int) transaction.Config {
	return transaction.Config{
		Description:  "BOM explosion for oxygen sensor and wire harness lookup",
		AppID:        appID,
		CountPoint:   countPoint,
		TargetSystem: targetSystem,
		TemplateID:   templateID,
		DefaultParams: []transaction.Param{
			{Path: "//BomAlternative", Value: "1"},
			{Path: "//Plant", Value: "1"},
			{Path: "//BomStatus", Value: "1"},
			{Path: "//BomUsage", Value: "1"},
			{Path: "//BomStlIndicator", Value: "1"},
			{Path: "//Application", Value: "1"},
			{Path: "//IndicatorBomExplosionLevel", Value: "1"},
		},
		VariableParams: []transaction.Param{
			{Path: "//MaterialNumber", Field: fieldMaterialNumber},
			{Path: "//ExplosionDate", Field: fieldExplosionDate},
		},
		ReturnPacket: true,
	}
}
