package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsHTMLAllowsPlainText(t *testing.T) {
	assert.False(t, ContainsHTML("Clean Code"))
	assert.False(t, ContainsHTML("Dune: Messiah & Children of Dune"))
	assert.False(t, ContainsHTML("1 < 2 and 3 > 2"))
	assert.False(t, ContainsHTML(""))
}

func TestContainsHTMLRejectsTags(t *testing.T) {
	assert.True(t, ContainsHTML("<b>bold</b>"))
	assert.True(t, ContainsHTML("<script>alert(1)</script>"))
	assert.True(t, ContainsHTML("before <img src=x> after"))
}

func TestContainsHTMLRejectsScriptVectors(t *testing.T) {
	assert.True(t, ContainsHTML("javascript:alert(1)"))
	assert.True(t, ContainsHTML("JaVaScRiPt:alert(1)"))
	assert.True(t, ContainsHTML(`x" onload=alert(1)`))
	assert.True(t, ContainsHTML("< script >alert(1)"))
}
