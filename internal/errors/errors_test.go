package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sagaforge/progression-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func (s *ErrorsTestSuite) TestNew() {
	err := errors.New(errors.CodeNotFound, "character not found")

	s.Equal(errors.CodeNotFound, err.Code)
	s.Equal("character not found", err.Message)
	s.Equal("NOT_FOUND: character not found", err.Error())
}

func (s *ErrorsTestSuite) TestNewf() {
	err := errors.Newf(errors.CodeInvalidArgument, "unknown feature %q", "Force Slam")

	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.Equal(`unknown feature "Force Slam"`, err.Message)
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	inner := errors.NotFound("character not found")
	wrapped := errors.Wrap(inner, "failed to build snapshot")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to build snapshot", wrapped.Message)
	s.True(stderrors.Is(wrapped, inner))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	inner := stderrors.New("connection refused")
	wrapped := errors.Wrap(inner, "redis unavailable")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.ErrorIs(wrapped, inner)
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.InvalidArgument("bad input").
		WithMeta("field", "character_id").
		WithMeta("value", "")

	s.Equal("character_id", err.Meta["field"])
	s.Equal("", err.Meta["value"])
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("missing")))
	s.Equal(errors.CodeInternal, errors.GetCode(stderrors.New("boom")))
}

func (s *ErrorsTestSuite) TestGetCodeWrapped() {
	inner := errors.NotFound("missing")
	wrapped := errors.Wrap(inner, "lookup failed")

	s.Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestPredicates() {
	s.True(errors.IsNotFound(errors.NotFound("missing")))
	s.False(errors.IsNotFound(errors.Internal("boom")))
	s.True(errors.IsInvalidArgument(errors.InvalidArgument("bad")))
	s.True(errors.IsInternal(errors.Internal("boom")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	s.Equal(http.StatusOK, errors.CodeOK.HTTPStatus())
	s.Equal(http.StatusBadRequest, errors.CodeInvalidArgument.HTTPStatus())
	s.Equal(http.StatusNotFound, errors.CodeNotFound.HTTPStatus())
	s.Equal(http.StatusPreconditionFailed, errors.CodeFailedPrecondition.HTTPStatus())
	s.Equal(http.StatusServiceUnavailable, errors.CodeUnavailable.HTTPStatus())
	s.Equal(http.StatusInternalServerError, errors.CodeInternal.HTTPStatus())
}

func (s *ErrorsTestSuite) TestIsMatchesByCode() {
	a := errors.NotFound("first")
	b := errors.NotFound("second")

	s.True(stderrors.Is(a, b))
	s.False(stderrors.Is(a, errors.Internal("other")))
}

func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}
