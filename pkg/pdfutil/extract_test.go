package pdfutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageTextsRejectsGarbage(t *testing.T) {
	_, err := PageTexts([]byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestPageTextsRejectsEmptyInput(t *testing.T) {
	_, err := PageTexts(nil)
	assert.Error(t, err)
}
