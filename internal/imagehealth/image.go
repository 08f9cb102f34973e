// Package imagehealth reports whether an image on the page actually rendered.
package imagehealth

import (
	"encoding/json"
	"fmt"
)

const (
	ErrorNotFound     = "element not found"
	ErrorDecodeFailed = "decode failed (naturalWidth is 0)"
	ErrorIncomplete   = "loading incomplete"
)

// Evaluator runs a script in the page. playwright.Page satisfies it.
type Evaluator interface {
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
}

// Dimensions holds the intrinsic and rendered size of an image.
type Dimensions struct {
	NaturalWidth  int
	NaturalHeight int
	Width         int
	Height        int
}

// Diagnostic is the result of probing one image. Dimensions is nil when the
// element does not exist.
type Diagnostic struct {
	Loaded     bool
	Exists     bool
	Dimensions *Dimensions
	ErrorInfo  string
}

// imageStateScript reads the raw image state; classification happens in Go.
const imageStateScript = `(selector) => {
  const img = document.querySelector(selector);
  if (!img) {
    return { exists: false };
  }
  return {
    exists: true,
    complete: !!img.complete,
    naturalWidth: img.naturalWidth || 0,
    naturalHeight: img.naturalHeight || 0,
    width: img.width || 0,
    height: img.height || 0,
  };
}`

type imageState struct {
	Exists        bool    `json:"exists"`
	Complete      bool    `json:"complete"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
}

func (s imageState) dimensions() Dimensions {
	return Dimensions{
		NaturalWidth:  int(s.NaturalWidth),
		NaturalHeight: int(s.NaturalHeight),
		Width:         int(s.Width),
		Height:        int(s.Height),
	}
}

// CheckImageLoaded inspects the first element matching selector. Failures of the
// inspection itself are reported in the Diagnostic, never as an error.
func CheckImageLoaded(ev Evaluator, selector string) Diagnostic {
	state, err := readState(ev, selector)
	if err != nil {
		return Diagnostic{ErrorInfo: "inspection failed: " + err.Error()}
	}
	return classify(state)
}

// classify turns a raw image state into a Diagnostic.
func classify(s imageState) Diagnostic {
	if !s.Exists {
		return Diagnostic{ErrorInfo: ErrorNotFound}
	}

	dims := s.dimensions()
	d := Diagnostic{
		Exists:     true,
		Loaded:     s.Complete && dims.NaturalWidth > 0,
		Dimensions: &dims,
	}
	switch {
	case d.Loaded:
	case s.Complete:
		d.ErrorInfo = ErrorDecodeFailed
	default:
		d.ErrorInfo = ErrorIncomplete
	}
	return d
}

// GetImageDimensions returns the sizes of the first element matching selector,
// or zero dimensions when there is no such element.
func GetImageDimensions(ev Evaluator, selector string) (Dimensions, error) {
	state, err := readState(ev, selector)
	if err != nil {
		return Dimensions{}, err
	}
	if !state.Exists {
		return Dimensions{}, nil
	}
	return state.dimensions(), nil
}

func readState(ev Evaluator, selector string) (imageState, error) {
	raw, err := ev.Evaluate(imageStateScript, selector)
	if err != nil {
		return imageState{}, fmt.Errorf("evaluate %q: %w", selector, err)
	}
	if raw == nil {
		return imageState{}, fmt.Errorf("evaluate %q: empty result", selector)
	}

	// The driver hands back numbers as int or float64 depending on the value.
	data, err := json.Marshal(raw)
	if err != nil {
		return imageState{}, fmt.Errorf("encode result for %q: %w", selector, err)
	}
	var state imageState
	if err := json.Unmarshal(data, &state); err != nil {
		return imageState{}, fmt.Errorf("decode result for %q: %w", selector, err)
	}
	return state, nil
}
