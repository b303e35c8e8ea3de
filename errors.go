package expressgen

import (
	"errors"
	"fmt"
)

// GenerateError reports the template and destination of a failed render or
// write.
type GenerateError struct {
	TemplateID string
	Path       string
	Err        error
}

func (e *GenerateError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("generate %s: %v", e.TemplateID, e.Err)
	}
	return fmt.Sprintf("generate %s (%s): %v", e.TemplateID, e.Path, e.Err)
}

func (e *GenerateError) Unwrap() error { return e.Err }

func wrapJob(job *Job, err error) error {
	var ge *GenerateError
	if errors.As(err, &ge) {
		return err
	}
	return &GenerateError{TemplateID: job.TemplateID, Path: job.Path, Err: err}
}
