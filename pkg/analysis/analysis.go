package analysis

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"

	"imageprompt/pkg/inference"
	"imageprompt/pkg/prompt"
	"imageprompt/pkg/schema"
	"imageprompt/pkg/utils"
)

// DescribeErrorPrefix starts the description of an image whose vision call
// failed while failures are being swallowed.
const DescribeErrorPrefix = "Error analyzing image: "

// ErrEmptyImage is returned for a missing or zero-length upload.
var ErrEmptyImage = errors.New("empty image upload")

// ProcessingError wraps any failure after the upload passed validation.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string { return e.Err.Error() }
func (e *ProcessingError) Unwrap() error { return e.Err }

// Service runs encode, describe and derive for one image.
type Service struct {
	describer inference.Describer
	strict    bool
}

type Option func(*Service)

// WithStrictDescribe makes vision failures fail the analysis instead of being
// turned into an "Error analyzing image: ..." description.
func WithStrictDescribe(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

func NewService(d inference.Describer, opts ...Option) *Service {
	s := &Service{describer: d}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze describes the image and derives every prompt from the description.
//
// By default a failed vision call does not fail the analysis: its message
// becomes the description and the prompts are derived from that text. The
// result is still a success. WithStrictDescribe turns this off.
func (s *Service) Analyze(ctx context.Context, image []byte) (*schema.AnalysisResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	if log.GetLevel() <= log.DebugLevel {
		if format, w, h, err := utils.ImageInfo(image); err == nil {
			log.Debug("received image", "bytes", len(image), "format", format, "width", w, "height", h)
		} else {
			log.Debug("received image", "bytes", len(image), "format", "unknown")
		}
	}

	description, err := s.describer.Describe(ctx, image)
	if err != nil {
		logDescribeError(err)
		if s.strict {
			return nil, &ProcessingError{Err: err}
		}
		description = DescribeErrorPrefix + err.Error()
	}

	if log.GetLevel() <= log.DebugLevel {
		if n, err := utils.NumTokens(description); err == nil {
			log.Debug("description received", "chars", len(description), "tokens", n, "preview", utils.LimitStr(description, 80))
		} else {
			log.Debug("description received", "chars", len(description), "preview", utils.LimitStr(description, 80))
		}
	}

	result := prompt.Derive(description)
	return &result, nil
}

func logDescribeError(err error) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		log.Error("vision request rejected", "status", apiErr.StatusCode, "status_text", http.StatusText(apiErr.StatusCode), "error", err)
		return
	}
	if isTimeout(err) {
		log.Error("vision request timed out", "error", err)
		return
	}
	log.Error("vision request failed", "error", err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}
