package recognition

import (
	"errors"
	"fmt"
)

var (
	ErrRecognitionFailed   = errors.New("recognition failed")
	ErrDuplicateRecognizer = errors.New("duplicate recognizer")
	ErrMissingGroup        = errors.New("extractor pattern lacks named group")
)

// RecognitionFailedError reports that a recognizer's selector matched but its
// extractor pattern did not.
type RecognitionFailedError struct {
	Name string
}

func (e *RecognitionFailedError) Error() string {
	return fmt.Sprintf("recognition failed: extractor of %q did not match", e.Name)
}

func (e *RecognitionFailedError) Is(target error) bool {
	return target == ErrRecognitionFailed
}
