package asserts_test

import (
	"fmt"
	"testing"
)

// failCapture records assertion failures instead of failing the enclosing
// test, so the failure paths of the helpers can themselves be tested.
type failCapture struct {
	testing.TB
	messages []string
}

func capture(t *testing.T) *failCapture {
	return &failCapture{TB: t}
}

func (c *failCapture) Errorf(format string, args ...any) {
	c.messages = append(c.messages, fmt.Sprintf(format, args...))
}

func (c *failCapture) Helper() {}

func (c *failCapture) failed() bool { return len(c.messages) > 0 }
