package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"calcd/domain/app"
)

// Tag will be set via ldflags by CI release workflow
var Tag = "version not set"

// Current returns the trimmed build tag.
func Current() string {
	return strings.TrimSpace(Tag)
}

type Runner struct {
	out io.Writer
}

func NewRunner(out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{out: out}
}

func (r *Runner) Run(_ context.Context) error {
	_, err := fmt.Fprintf(r.out, "%s %s\n", app.Name, Current())
	return err
}
