package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/welldanyogia/recipe-api-backend/internal/api/serializers"
	"github.com/welldanyogia/recipe-api-backend/internal/models"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"github.com/welldanyogia/recipe-api-backend/tests/fixtures"
	"github.com/welldanyogia/recipe-api-backend/tests/mocks"
)

// TagHandlerTestSuite is the test suite for TagHandler
type TagHandlerTestSuite struct {
	suite.Suite
	echo     *echo.Echo
	handler  *TagHandler
	mockRepo *mocks.MockTagRepository
	user     *models.User
}

// SetupTest runs before each test
func (s *TagHandlerTestSuite) SetupTest() {
	s.echo = newTestEcho()
	s.mockRepo = new(mocks.MockTagRepository)
	s.handler = NewTagHandler(s.mockRepo)
	s.user = fixtures.NewUserBuilder().WithID(1).Build()
}

// TearDownTest runs after each test
func (s *TagHandlerTestSuite) TearDownTest() {
	s.mockRepo.AssertExpectations(s.T())
}

// TestTagHandlerTestSuite runs the test suite
func TestTagHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TagHandlerTestSuite))
}

// ==================== List Tests ====================

func (s *TagHandlerTestSuite) TestList_ScopedToCaller() {
	c, rec := newContext(s.echo, http.MethodGet, "/api/tags", "", s.user)

	tags := []models.Tag{
		fixtures.NewTagBuilder().WithID(2).WithName("Vegan").BuildValue(),
		fixtures.NewTagBuilder().WithID(1).WithName("Dessert").BuildValue(),
	}
	s.mockRepo.On("ListForUser", mock.Anything, uint(1), false).Return(tags, nil)

	err := s.handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var got []serializers.TagResponse
	s.Require().NoError(decodeData(rec, &got))
	s.Equal([]serializers.TagResponse{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}}, got)
}

func (s *TagHandlerTestSuite) TestList_AssignedOnly() {
	for _, value := range []string{"1", "true"} {
		s.Run(value, func() {
			c, rec := newContext(s.echo, http.MethodGet, "/api/tags?assigned_only="+value, "", s.user)

			s.mockRepo.On("ListForUser", mock.Anything, uint(1), true).Return([]models.Tag{}, nil).Once()

			err := s.handler.List(c)

			s.NoError(err)
			s.Equal(http.StatusOK, rec.Code)
		})
	}
}

func (s *TagHandlerTestSuite) TestList_AssignedOnlyZero() {
	c, rec := newContext(s.echo, http.MethodGet, "/api/tags?assigned_only=0", "", s.user)

	s.mockRepo.On("ListForUser", mock.Anything, uint(1), false).Return([]models.Tag{}, nil)

	err := s.handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TagHandlerTestSuite) TestList_InvalidAssignedOnly() {
	c, rec := newContext(s.echo, http.MethodGet, "/api/tags?assigned_only=maybe", "", s.user)

	err := s.handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TagHandlerTestSuite) TestList_Unauthenticated() {
	c, rec := newContext(s.echo, http.MethodGet, "/api/tags", "", nil)

	err := s.handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TagHandlerTestSuite) TestList_InternalError() {
	c, rec := newContext(s.echo, http.MethodGet, "/api/tags", "", s.user)

	s.mockRepo.On("ListForUser", mock.Anything, uint(1), false).Return(nil, errors.New("database error"))

	err := s.handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

// ==================== Create Tests ====================

func (s *TagHandlerTestSuite) TestCreate_Success() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/tags", `{"name": "Test tag"}`, s.user)

	s.mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(t *models.Tag) bool {
		return t.Name == "Test tag" && t.UserID == 1
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Tag).ID = 5
		}).
		Return(nil)

	err := s.handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var got serializers.TagResponse
	s.Require().NoError(decodeData(rec, &got))
	s.Equal(serializers.TagResponse{ID: 5, Name: "Test tag"}, got)
}

func (s *TagHandlerTestSuite) TestCreate_EmptyName() {
	for _, body := range []string{`{"name": ""}`, `{"name": "   "}`, `{}`} {
		s.Run(body, func() {
			c, rec := newContext(s.echo, http.MethodPost, "/api/tags", body, s.user)

			err := s.handler.Create(c)

			s.NoError(err)
			s.Equal(http.StatusBadRequest, rec.Code)

			resp, err := parseErrorResponse(rec)
			s.NoError(err)
			s.False(resp.Success)
			s.Contains(resp.Error, "name is required")
		})
	}
	s.mockRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TagHandlerTestSuite) TestCreate_FormEncoded() {
	c, rec := newFormContext(s.echo, http.MethodPost, "/api/tags", url.Values{"name": {"Vegan"}}, s.user)

	s.mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(t *models.Tag) bool {
		return t.Name == "Vegan" && t.UserID == 1
	})).Return(nil)

	err := s.handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *TagHandlerTestSuite) TestCreate_UnsupportedContentType() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/tags", "name: Vegan", s.user)
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMETextPlain)

	err := s.handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	resp, err := parseErrorResponse(rec)
	s.NoError(err)
	s.Contains(resp.Error, "unsupported content type")
	s.mockRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TagHandlerTestSuite) TestCreate_InternalError() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/tags", `{"name": "Vegan"}`, s.user)

	s.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Tag")).Return(errors.New("database error"))

	err := s.handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

// ==================== Update Tests ====================

func (s *TagHandlerTestSuite) TestUpdate_Success() {
	c, rec := newContext(s.echo, http.MethodPatch, "/api/tags/3", `{"name": "Dinner"}`, s.user)
	withID(c, "3")

	tag := fixtures.NewTagBuilder().WithID(3).WithName("Lunch").Build()
	s.mockRepo.On("GetForUser", mock.Anything, uint(1), uint(3)).Return(tag, nil)
	s.mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(t *models.Tag) bool {
		return t.ID == 3 && t.Name == "Dinner"
	})).Return(nil)

	err := s.handler.Update(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TagHandlerTestSuite) TestUpdate_NotFound() {
	c, rec := newContext(s.echo, http.MethodPatch, "/api/tags/3", `{"name": "Dinner"}`, s.user)
	withID(c, "3")

	s.mockRepo.On("GetForUser", mock.Anything, uint(1), uint(3)).Return(nil, repository.ErrNotFound)

	err := s.handler.Update(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TagHandlerTestSuite) TestUpdate_InvalidID() {
	c, rec := newContext(s.echo, http.MethodPatch, "/api/tags/abc", `{"name": "Dinner"}`, s.user)
	withID(c, "abc")

	err := s.handler.Update(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// ==================== Delete Tests ====================

func (s *TagHandlerTestSuite) TestDelete_Success() {
	c, rec := newContext(s.echo, http.MethodDelete, "/api/tags/3", "", s.user)
	withID(c, "3")

	s.mockRepo.On("DeleteForUser", mock.Anything, uint(1), uint(3)).Return(nil)

	err := s.handler.Delete(c)

	s.NoError(err)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *TagHandlerTestSuite) TestDelete_NotFound() {
	c, rec := newContext(s.echo, http.MethodDelete, "/api/tags/3", "", s.user)
	withID(c, "3")

	s.mockRepo.On("DeleteForUser", mock.Anything, uint(1), uint(3)).Return(repository.ErrNotFound)

	err := s.handler.Delete(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
}
