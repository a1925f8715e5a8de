package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"imageprompt/pkg/analysis"
	"imageprompt/pkg/schema"
)

const (
	msgInvalidUpload   = "Please upload a valid image file"
	msgProcessingError = "Error processing image: "
)

// POST /api/v1/analyze/image
func (s *Server) handlePostAnalyzeImage(c echo.Context) error {
	id := c.Response().Header().Get(echo.HeaderXRequestID)

	fh, err := c.FormFile("image")
	if err != nil {
		// BodyLimit reports an oversized streamed body through the multipart reader.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		log.Warn("rejected upload", "request_id", id, "error", err)
		return c.JSON(http.StatusBadRequest, schema.Failure(msgInvalidUpload))
	}
	if fh.Size == 0 {
		log.Warn("rejected upload", "request_id", id, "reason", "empty file")
		return c.JSON(http.StatusBadRequest, schema.Failure(msgInvalidUpload))
	}

	image, err := readUpload(fh)
	if err != nil {
		return err
	}

	log.Info("analyzing image", "request_id", id, "filename", fh.Filename, "bytes", len(image))
	result, err := s.Analyzer.Analyze(c.Request().Context(), image)
	if err != nil {
		return err
	}

	log.Info("analysis complete", "request_id", id, "description_chars", len(result.Description))
	return c.JSON(http.StatusOK, result)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, &analysis.ProcessingError{Err: fmt.Errorf("failed to open upload: %w", err)}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &analysis.ProcessingError{Err: fmt.Errorf("failed to read upload: %w", err)}
	}
	return data, nil
}

// handleError renders every error as an AnalysisResult carrying only the
// error message. Panics arrive here through the Recover middleware.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgProcessingError + err.Error()

	var he *echo.HTTPError
	switch {
	case errors.Is(err, analysis.ErrEmptyImage):
		code = http.StatusBadRequest
		msg = msgInvalidUpload
	case errors.As(err, &he):
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if code >= http.StatusInternalServerError {
			msg = msgProcessingError + msg
		}
	}

	if code >= http.StatusInternalServerError {
		log.Error("request failed", "request_id", c.Response().Header().Get(echo.HeaderXRequestID), "path", c.Path(), "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, schema.Failure(msg))
	}
	if werr != nil {
		log.Error("failed writing error response", "error", werr)
	}
}
