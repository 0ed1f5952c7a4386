// Package transaction builds UBK transaction requests from XML templates and
// sends them to the UBK interface.
package transaction

// Param binds an etree path in the request template to a value. Default
// params carry a literal Value; variable params name a Field of the Part.
type Param struct {
	Path  string
	Value string
	Field string
}

type Config struct {
	Description    string
	AppID          int
	CountPoint     int
	TargetSystem   int
	TemplateID     int
	DefaultParams  []Param
	VariableParams []Param
	ReturnPacket   bool
}

// Part is the part-like record variable params are resolved against.
type Part map[string]string
