package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDigits(t *testing.T) {
	assert.Equal(t, "12345678900", CleanDigits("123.456.789-00"))
	assert.Equal(t, "11987654321", CleanDigits("(11) 98765-4321"))
	assert.Equal(t, "", CleanDigits("abc"))
}

func TestValidateCPF(t *testing.T) {
	assert.True(t, ValidateCPF("529.982.247-25"))
	assert.True(t, ValidateCPF("52998224725"))

	assert.False(t, ValidateCPF("529.982.247-26"), "wrong check digit")
	assert.False(t, ValidateCPF("111.111.111-11"), "repeated digit sequence")
	assert.False(t, ValidateCPF("5299822472"), "too short")
	assert.False(t, ValidateCPF(""))
}

func TestValidateCNPJ(t *testing.T) {
	assert.True(t, ValidateCNPJ("11.222.333/0001-81"))
	assert.True(t, ValidateCNPJ("11222333000181"))

	assert.False(t, ValidateCNPJ("11.222.333/0001-82"), "wrong check digit")
	assert.False(t, ValidateCNPJ("11.111.111/1111-11"), "repeated digit sequence")
	assert.False(t, ValidateCNPJ("1122233300018"), "too short")
	assert.False(t, ValidateCNPJ(""))
}

func TestValidateCEP(t *testing.T) {
	assert.True(t, ValidateCEP("01310-100"))
	assert.True(t, ValidateCEP("01310100"))
	assert.False(t, ValidateCEP("0131010"))
	assert.False(t, ValidateCEP("013101000"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("(11) 98765-4321"), "11-digit mobile")
	assert.True(t, ValidatePhone("(11) 3456-7890"), "10-digit landline")
	assert.False(t, ValidatePhone("98765-4321"))
	assert.False(t, ValidatePhone(""))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "529.982.247-25", FormatCPF("52998224725"))
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))
	assert.Equal(t, "01310-100", FormatCEP("01310100"))

	// Inputs that do not clean to the expected length pass through.
	assert.Equal(t, "123", FormatCPF("123"))
	assert.Equal(t, "123", FormatCNPJ("123"))
	assert.Equal(t, "123", FormatCEP("123"))
}
