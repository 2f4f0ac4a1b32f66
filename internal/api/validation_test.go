package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorInstance_Registrations(t *testing.T) {
	require.NotPanics(t, func() { validatorInstance() })
	assert.Same(t, validatorInstance(), validatorInstance())
}

func TestValidateStruct_NoHTML(t *testing.T) {
	err := validateStruct(attemptRequest{Text: "<script>x</script>"})
	require.Error(t, err)
	fields := translateErrors(validatorInstance().Struct(attemptRequest{Text: "<i>a</i>"}))
	assert.Equal(t, "text must not contain HTML tags", fields["text"])

	assert.NoError(t, validateStruct(attemptRequest{Text: "gaw gai"}))
}

func TestValidateStruct_DefaultTranslations(t *testing.T) {
	fields := translateErrors(validatorInstance().Struct(settingsRequest{Mode: "zigzag"}))
	assert.Contains(t, fields["mode"], "must be one of")
}
