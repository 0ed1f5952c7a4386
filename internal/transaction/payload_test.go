package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Description:  "bom explosion",
		AppID:        7,
		CountPoint:   3,
		TargetSystem: 2,
		TemplateID:   BOMExplosionTemplateID,
		DefaultParams: []Param{
			{Path: "//Plant", Value: "0001"},
			{Path: "//BomUsage", Value: "1"},
		},
		VariableParams: []Param{
			{Path: "//MaterialNumber", Field: "MaterialNumber"},
			{Path: "//ExplosionDate", Field: "ExplosionDate"},
		},
		ReturnPacket: true,
	}
}

func textAt(t *testing.T, payload, path string) string {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(payload))
	el := doc.FindElement(path)
	require.NotNil(t, el, "no element at %s", path)
	return el.Text()
}

func TestBuilder_CreatePayload(t *testing.T) {
	ctx := context.Background()
	part := Part{"MaterialNumber": "A-100", "ExplosionDate": "2026-10-17"}

	t.Run("fills default and variable params", func(t *testing.T) {
		payload, err := NewBuilder(testConfig(), DefaultTemplates()).CreatePayload(ctx, part, nil)
		require.NoError(t, err)

		assert.Equal(t, "A-100", textAt(t, payload, "//MaterialNumber"))
		assert.Equal(t, "2026-10-17", textAt(t, payload, "//ExplosionDate"))
		assert.Equal(t, "0001", textAt(t, payload, "//Plant"))
		assert.Equal(t, "1", textAt(t, payload, "//BomUsage"))
		assert.Empty(t, textAt(t, payload, "//BomStatus"))
	})

	t.Run("overrides win over defaults", func(t *testing.T) {
		payload, err := NewBuilder(testConfig(), DefaultTemplates()).CreatePayload(ctx, part, []Param{{Path: "//Plant", Value: "0099"}})
		require.NoError(t, err)

		assert.Equal(t, "0099", textAt(t, payload, "//Plant"))
	})

	t.Run("later override of the same element wins", func(t *testing.T) {
		overrides := []Param{
			{Path: "/BomExplosionRequest/Plant", Value: "0050"},
			{Path: "//Plant", Value: "0099"},
		}

		payload, err := NewBuilder(testConfig(), DefaultTemplates()).CreatePayload(ctx, part, overrides)
		require.NoError(t, err)

		assert.Equal(t, "0099", textAt(t, payload, "//Plant"))
	})

	t.Run("missing part field", func(t *testing.T) {
		_, err := NewBuilder(testConfig(), DefaultTemplates()).CreatePayload(ctx, Part{"MaterialNumber": "A-100"}, nil)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("path not in template", func(t *testing.T) {
		cfg := testConfig()
		cfg.DefaultParams = append(cfg.DefaultParams, Param{Path: "//Unknown", Value: "1"})

		_, err := NewBuilder(cfg, DefaultTemplates()).CreatePayload(ctx, part, nil)
		assert.ErrorIs(t, err, ErrParamNotFound)
	})

	t.Run("unknown template", func(t *testing.T) {
		cfg := testConfig()
		cfg.TemplateID = 42

		_, err := NewBuilder(cfg, DefaultTemplates()).CreatePayload(ctx, part, nil)
		assert.True(t, errors.Is(err, ErrTemplateNotFound))
	})

	t.Run("malformed template", func(t *testing.T) {
		_, err := NewBuilder(testConfig(), StaticTemplates{BOMExplosionTemplateID: "<Broken>"}).CreatePayload(ctx, part, nil)
		assert.Error(t, err)
	})
}

type recordingTransport struct {
	got  Request
	resp *Response
	err  error
}

func (r *recordingTransport) Send(_ context.Context, req Request) (*Response, error) {
	r.got = req
	return r.resp, r.err
}

func TestTransaction_Execute(t *testing.T) {
	ctx := context.Background()
	part := Part{"MaterialNumber": "A-100", "ExplosionDate": "2026-10-17"}

	t.Run("returns response packet", func(t *testing.T) {
		transport := &recordingTransport{resp: &Response{Status: "OK", ResponsePkt: "<Root/>"}}

		raw, err := New(testConfig(), DefaultTemplates(), transport).Execute(ctx, part)
		require.NoError(t, err)

		assert.Equal(t, "<Root/>", raw)
		assert.Equal(t, 7, transport.got.AppID)
		assert.Equal(t, 3, transport.got.CountPoint)
		assert.Equal(t, 2, transport.got.TargetSystem)
		assert.Equal(t, BOMExplosionTemplateID, transport.got.TemplateID)
		assert.True(t, transport.got.ReturnPacket)
		assert.Equal(t, "A-100", textAt(t, transport.got.RequestPkt, "//MaterialNumber"))
	})

	t.Run("propagates transport errors", func(t *testing.T) {
		transport := &recordingTransport{err: errors.New("connection refused")}

		_, err := New(testConfig(), DefaultTemplates(), transport).Execute(ctx, part)
		assert.EqualError(t, err, "connection refused")
	})

	t.Run("does not send when payload fails", func(t *testing.T) {
		transport := &recordingTransport{}

		_, err := New(testConfig(), DefaultTemplates(), transport).Execute(ctx, Part{})
		assert.ErrorIs(t, err, ErrMissingField)
		assert.Empty(t, transport.got.RequestPkt)
	})
}
