package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	a := assert.New(t)

	a.Equal("fallback", Getenv("test_getenv", "fallback"))

	restore := SetEnv("test_getenv", "set")
	defer restore()
	a.Equal("set", Getenv("test_getenv", "fallback"))
}

func TestSetEnv(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("test_foo")
	a.False(found)

	restore1 := SetEnv("test_foo", "bar")
	a.Equal("bar", os.Getenv("test_foo"))

	restore2 := SetEnv("test_foo", "bar2")
	a.Equal("bar2", os.Getenv("test_foo"))

	restore2()
	a.Equal("bar", os.Getenv("test_foo"))

	restore1()
	_, found = os.LookupEnv("test_foo")
	a.False(found)
}
