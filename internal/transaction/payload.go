package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

var (
	ErrParamNotFound = errors.New("template has no element at param path")
	ErrMissingField  = errors.New("part is missing a variable param field")
)

type Builder struct {
	cfg       Config
	templates TemplateSource
}

func NewBuilder(cfg Config, templates TemplateSource) *Builder {
	return &Builder{
		cfg:       cfg,
		templates: templates,
	}
}

// CreatePayload renders the configured template for part. Default params are
// applied first, then variable params, then overrides in slice order. Only the
// Path and Value of an override are used.
func (b *Builder) CreatePayload(ctx context.Context, part Part, overrides []Param) (string, error) {
	body, err := b.templates.Template(ctx, b.cfg.TemplateID)
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return "", fmt.Errorf("parse template %d: %w", b.cfg.TemplateID, err)
	}

	for _, p := range b.cfg.DefaultParams {
		if err := setPath(doc, p.Path, p.Value); err != nil {
			return "", err
		}
	}

	for _, p := range b.cfg.VariableParams {
		value, ok := part[p.Field]
		if !ok {
			return "", fmt.Errorf("%s: %w", p.Field, ErrMissingField)
		}
		if err := setPath(doc, p.Path, value); err != nil {
			return "", err
		}
	}

	for _, p := range overrides {
		if err := setPath(doc, p.Path, p.Value); err != nil {
			return "", err
		}
	}

	doc.Indent(2)
	return doc.WriteToString()
}

func setPath(doc *etree.Document, path, value string) error {
	compiled, err := etree.CompilePath(path)
	if err != nil {
		return fmt.Errorf("compile param path %q: %w", path, err)
	}

	elements := doc.FindElementsPath(compiled)
	if len(elements) == 0 {
		return fmt.Errorf("%s: %w", path, ErrParamNotFound)
	}
	for _, el := range elements {
		el.SetText(value)
	}
	return nil
}
