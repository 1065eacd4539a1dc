package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarcangeli/spedman/internal/models"
)

func TestAskSelection(t *testing.T) {
	// Garbage first, then a valid number.
	p := NewPrompter(strings.NewReader("abc\n\n3\n"))
	assert.Equal(t, 3, p.AskSelection(5))

	// Zero goes back to the menu.
	p = NewPrompter(strings.NewReader("0\n"))
	assert.Equal(t, 0, p.AskSelection(5))

	// EOF counts as "go back".
	p = NewPrompter(strings.NewReader(""))
	assert.Equal(t, 0, p.AskSelection(5))
}

func TestAskWeight(t *testing.T) {
	// Decimal comma is accepted and the value is rounded up.
	p := NewPrompter(strings.NewReader("1,2\n"))
	assert.Equal(t, 1.5, p.AskWeight())

	// Invalid and non-positive inputs re-prompt.
	p = NewPrompter(strings.NewReader("pesante\n-1\n0.5\n"))
	assert.Equal(t, 0.5, p.AskWeight())
}

func TestAskRecipientNormalizesPhone(t *testing.T) {
	p := NewPrompter(strings.NewReader("Mario Rossi\nVia Roma 1\nTorino\n10121\n0039 333 123456\n"))

	recipient := p.AskRecipient()
	assert.Equal(t, "Mario Rossi", recipient.Name)
	assert.Equal(t, "10121", recipient.PostalCode)
	assert.Equal(t, "333123456", recipient.Phone)
}

func TestConfirm(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"s\n", true},
		{"S\n", true},
		{"si\n", true},
		{"SI\n", true},
		{"n\n", false},
		{"\n", false},
		{"yes\n", false},
	}

	for _, tc := range testCases {
		p := NewPrompter(strings.NewReader(tc.input))
		assert.Equal(t, tc.expected, p.Confirm("Confermi? "), "input %q", tc.input)
	}
}

func TestEditRequest(t *testing.T) {
	p := NewPrompter(strings.NewReader("1\n2\n"))

	req := models.LabelRequest{Weight: 1.0}
	p.EditRequest(&req)
	assert.Equal(t, 2.0, req.Weight)

	// Choice 0 leaves everything untouched.
	p = NewPrompter(strings.NewReader("0\n"))
	before := req
	p.EditRequest(&req)
	assert.Equal(t, before, req)
}
