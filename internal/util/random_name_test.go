package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	a := assert.New(t)
	for i := 0; i < 10; i++ {
		a.Regexp(regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`), GetRandomName())
	}
}
