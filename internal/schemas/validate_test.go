package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OutlineAcceptsWellFormed(t *testing.T) {
	doc := []byte(`{"title":"Episode","sections":[{"heading":"Opening","points":["Welcome"]}]}`)
	assert.NoError(t, Validate(Outline, doc))
}

func TestValidate_OutlineRejectsMissingSections(t *testing.T) {
	err := Validate(Outline, []byte(`{"title":"Episode"}`))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, Outline, verr.Schema)
	assert.NotEmpty(t, verr.Errors)
}

func TestValidate_ScriptRejectsSectionWithoutText(t *testing.T) {
	err := Validate(Script, []byte(`{"sections":[{"heading":"Opening"}]}`))
	assert.Error(t, err)
}

func TestValidate_QAReport(t *testing.T) {
	assert.NoError(t, Validate(QAReport, []byte(`{"approved":true,"issues":[]}`)))
	assert.NoError(t, Validate(QAReport, []byte(`{"approved":false,"issues":[{"severity":"error","message":"bad claim"}]}`)))

	assert.Error(t, Validate(QAReport, []byte(`{"issues":[]}`)), "approved is required")
	assert.Error(t, Validate(QAReport, []byte(`{"approved":true,"issues":[{"severity":"catastrophic","message":"x"}]}`)),
		"severity values are a closed set")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nonexistent", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}
